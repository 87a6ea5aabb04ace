package view

import (
	"reflect"
	"strings"
	"testing"

	"github.com/glabrego/todo-cli/internal/todos"
)

func sampleItems() []todos.Item {
	return []todos.Item{
		{ID: 1, Title: "buy Milk"},
		{ID: 2, Title: "Écrire une lettre"},
		{ID: 3, Title: "call mom"},
		{ID: 4, Title: "MILKSHAKE"},
		{ID: 5, Title: "apples"},
	}
}

func ids(items []todos.Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestFilter_CaseInsensitiveSubstring(t *testing.T) {
	items := sampleItems()
	for _, term := range []string{"", "milk", "MILK", "l", "zzz", "écrire"} {
		got := Filter(items, term)
		want := make([]int64, 0)
		for _, item := range items {
			if strings.Contains(strings.ToLower(item.Title), strings.ToLower(term)) {
				want = append(want, item.ID)
			}
		}
		if !reflect.DeepEqual(ids(got), want) {
			t.Fatalf("Filter(%q) = %v, want %v", term, ids(got), want)
		}
	}
	if got := ids(Filter(items, "milk")); !reflect.DeepEqual(got, []int64{1, 4}) {
		t.Fatalf("unexpected milk matches: %v", got)
	}
}

func TestSort_LocaleAware(t *testing.T) {
	got := ids(Sort(sampleItems(), true))
	want := []int64{5, 1, 3, 2, 4}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected sorted order: %v, want %v", got, want)
	}
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	before := append([]todos.Item(nil), items...)

	sorted := Sort(items, true)
	sorted[0].Title = "changed"

	if !reflect.DeepEqual(items, before) {
		t.Fatalf("input was mutated: %+v", items)
	}
}

func TestVisible_ToggleRoundTrip(t *testing.T) {
	items := sampleItems()
	plain := Visible(items, "m", false)
	_ = Visible(items, "m", true)
	again := Visible(items, "m", false)

	if !reflect.DeepEqual(plain, again) {
		t.Fatalf("toggling sort twice changed order: %v vs %v", ids(plain), ids(again))
	}
	if !reflect.DeepEqual(ids(plain), []int64{1, 3, 4}) {
		t.Fatalf("unexpected filter order: %v", ids(plain))
	}
}
