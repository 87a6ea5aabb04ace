package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/glabrego/todo-cli/internal/todos"
)

// Visible is the list the screen shows for the given filters. It never
// modifies items.
func Visible(items []todos.Item, searchTerm string, byAlphabet bool) []todos.Item {
	return Sort(Filter(items, searchTerm), byAlphabet)
}

// Filter keeps items whose title contains term, ignoring case.
func Filter(items []todos.Item, term string) []todos.Item {
	needle := strings.ToLower(term)
	out := make([]todos.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Title), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Sort returns a copy of items, ordered by title with the root Unicode
// collation when byAlphabet is set.
func Sort(items []todos.Item, byAlphabet bool) []todos.Item {
	out := append([]todos.Item(nil), items...)
	if !byAlphabet {
		return out
	}
	col := collate.New(language.Und)
	sort.SliceStable(out, func(i, j int) bool {
		return col.CompareString(out[i].Title, out[j].Title) < 0
	})
	return out
}
