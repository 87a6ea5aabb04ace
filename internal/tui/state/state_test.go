package state

import (
	"errors"
	"reflect"
	"testing"

	"github.com/glabrego/todo-cli/internal/todos"
)

func loaded(items ...todos.Item) State {
	return ApplyLoad(New(), Success(items))
}

func TestNew_StartsLoading(t *testing.T) {
	s := New()
	if Current(s) != ScreenLoading {
		t.Fatalf("expected loading screen, got %s", Current(s))
	}
}

func TestApplyLoad_SuccessKeepsServerOrder(t *testing.T) {
	s := loaded(todos.Item{ID: 1, Title: "A"}, todos.Item{ID: 2, Title: "B"})

	if s.Loading || s.Err != nil || Current(s) != ScreenList {
		t.Fatalf("unexpected lifecycle state: %+v", s)
	}
	want := []todos.Item{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	if !reflect.DeepEqual(s.Items, want) {
		t.Fatalf("unexpected items: %+v", s.Items)
	}
}

func TestApplyLoad_FailureShowsErrorAndClearsLoading(t *testing.T) {
	prev := loaded(todos.Item{ID: 1, Title: "A"})
	s := ApplyLoad(BeginLoad(prev), Failure[[]todos.Item](&todos.HTTPError{Op: "list todos", Status: 500}))

	if s.Loading {
		t.Fatal("expected loading to be cleared")
	}
	if Current(s) != ScreenError {
		t.Fatalf("expected error screen, got %s", Current(s))
	}
	if len(s.Items) != 1 {
		t.Fatalf("expected collection untouched, got %+v", s.Items)
	}
}

func TestApplyLoad_SuccessLeavesErrorScreen(t *testing.T) {
	s := ApplyLoad(New(), Failure[[]todos.Item](errors.New("offline")))
	s = ApplyLoad(BeginLoad(s), Success([]todos.Item{{ID: 1, Title: "A"}}))
	if Current(s) != ScreenList || s.Err != nil {
		t.Fatalf("expected list screen after successful reload: %+v", s)
	}
}

func TestValidateTitle(t *testing.T) {
	if _, ok := ValidateTitle("  "); ok {
		t.Fatal("expected whitespace-only title to be rejected")
	}
	if _, ok := ValidateTitle(""); ok {
		t.Fatal("expected empty title to be rejected")
	}
	title, ok := ValidateTitle("  milk ")
	if !ok || title != "milk" {
		t.Fatalf("unexpected validation: %q %v", title, ok)
	}
}

func TestApplyCreate_AppendsAndClearsInput(t *testing.T) {
	s := SetInput(loaded(todos.Item{ID: 1, Title: "A"}, todos.Item{ID: 2, Title: "B"}), "C")
	before := s.Items

	s = ApplyCreate(s, Success(todos.Item{ID: 3, Title: "C"}))
	want := []todos.Item{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"}}
	if !reflect.DeepEqual(s.Items, want) {
		t.Fatalf("unexpected items: %+v", s.Items)
	}
	if s.Input != "" {
		t.Fatalf("expected input to reset, got %q", s.Input)
	}
	if len(before) != 2 {
		t.Fatalf("previous collection was mutated: %+v", before)
	}
}

func TestApplyCreate_FailureKeepsInput(t *testing.T) {
	s := SetInput(loaded(todos.Item{ID: 1, Title: "A"}), "C")
	s = ApplyCreate(s, Failure[todos.Item](errors.New("boom")))

	if s.Input != "C" || len(s.Items) != 1 || s.Err == nil {
		t.Fatalf("unexpected state after failed create: %+v", s)
	}
	if Current(s) != ScreenList {
		t.Fatalf("create failure must not hide the list, got %s", Current(s))
	}
}

func TestApplyUpdate_ReplacesInPlace(t *testing.T) {
	s := loaded(todos.Item{ID: 1, Title: "A"}, todos.Item{ID: 2, Title: "B"}, todos.Item{ID: 3, Title: "C"})
	s = ApplyUpdate(s, 2, "B2", Success(struct{}{}))

	want := []todos.Item{{ID: 1, Title: "A"}, {ID: 2, Title: "B2"}, {ID: 3, Title: "C"}}
	if !reflect.DeepEqual(s.Items, want) {
		t.Fatalf("unexpected items: %+v", s.Items)
	}
}

func TestApplyUpdate_FailureAndMissingID(t *testing.T) {
	s := loaded(todos.Item{ID: 1, Title: "A"})

	failed := ApplyUpdate(s, 1, "A2", Failure[struct{}](errors.New("boom")))
	if failed.Items[0].Title != "A" || failed.Err == nil {
		t.Fatalf("unexpected state after failed update: %+v", failed)
	}

	gone := ApplyUpdate(s, 9, "ghost", Success(struct{}{}))
	if !reflect.DeepEqual(gone.Items, s.Items) {
		t.Fatalf("update of absent id must not insert: %+v", gone.Items)
	}
}

func TestApplyDelete(t *testing.T) {
	s := loaded(todos.Item{ID: 1, Title: "A"}, todos.Item{ID: 2, Title: "B"}, todos.Item{ID: 3, Title: "C"})

	deleted := ApplyDelete(s, 1, Success(struct{}{}))
	want := []todos.Item{{ID: 2, Title: "B"}, {ID: 3, Title: "C"}}
	if !reflect.DeepEqual(deleted.Items, want) {
		t.Fatalf("unexpected items: %+v", deleted.Items)
	}
	if len(s.Items) != 3 {
		t.Fatalf("previous collection was mutated: %+v", s.Items)
	}

	failed := ApplyDelete(s, 1, Failure[struct{}](errors.New("boom")))
	if len(failed.Items) != 3 || failed.Err == nil {
		t.Fatalf("unexpected state after failed delete: %+v", failed)
	}
}

func TestLastResolvedWins_UpdateAfterDelete(t *testing.T) {
	s := loaded(todos.Item{ID: 1, Title: "A"}, todos.Item{ID: 2, Title: "B"})
	s = ApplyDelete(s, 2, Success(struct{}{}))
	s = ApplyUpdate(s, 2, "B2", Success(struct{}{}))

	if IndexByID(s.Items, 2) != -1 {
		t.Fatalf("deleted item resurrected: %+v", s.Items)
	}
}

func TestToggleSortAndSearch(t *testing.T) {
	s := loaded(todos.Item{ID: 1, Title: "A"})
	s = ToggleSort(SetSearchTerm(s, "a"))
	if !s.SortByAlphabet || s.SearchTerm != "a" {
		t.Fatalf("unexpected filters: %+v", s)
	}
	if ToggleSort(s).SortByAlphabet {
		t.Fatal("expected second toggle to turn sorting off")
	}
}

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 0); got != 0 {
		t.Fatalf("expected 0 for empty list, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0, false); got != 10 {
		t.Fatalf("expected default step 10, got %d", got)
	}
	if got := PageStep(20, false); got != 12 {
		t.Fatalf("expected step 12, got %d", got)
	}
	if got := PageStep(20, true); got != 10 {
		t.Fatalf("expected step 10 with status, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	start, end := CenteredWindow(10, 9, 4)
	if start != 6 || end != 10 {
		t.Fatalf("unexpected window: start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(3, 1, 10)
	if start != 0 || end != 3 {
		t.Fatalf("unexpected short window: start=%d end=%d", start, end)
	}
}
