// Package state holds the screen state and the pure transitions that fold
// network results into it.
package state

import (
	"strings"

	"github.com/glabrego/todo-cli/internal/todos"
)

// Result is the outcome of one network call: a value or an error.
type Result[T any] struct {
	Value T
	Err   error
}

func (r Result[T]) Ok() bool { return r.Err == nil }

func Success[T any](v T) Result[T] { return Result[T]{Value: v} }

func Failure[T any](err error) Result[T] { return Result[T]{Err: err} }

type Screen int

const (
	ScreenLoading Screen = iota
	ScreenError
	ScreenList
)

func (s Screen) String() string {
	switch s {
	case ScreenLoading:
		return "loading"
	case ScreenError:
		return "error"
	default:
		return "list"
	}
}

// State is everything the todo screen renders from. Items is only replaced
// or edited by successful results.
type State struct {
	Items          []todos.Item
	Loading        bool
	Err            error
	LoadFailed     bool
	SearchTerm     string
	SortByAlphabet bool
	Input          string
}

// New returns the state used on mount: loading, nothing fetched yet.
func New() State {
	return State{Loading: true}
}

func Current(s State) Screen {
	switch {
	case s.Loading:
		return ScreenLoading
	case s.LoadFailed:
		return ScreenError
	default:
		return ScreenList
	}
}

func BeginLoad(s State) State {
	s.Loading = true
	return s
}

// ApplyLoad clears Loading on every path.
func ApplyLoad(s State, r Result[[]todos.Item]) State {
	s.Loading = false
	if !r.Ok() {
		s.Err = r.Err
		s.LoadFailed = true
		return s
	}
	s.Items = append([]todos.Item(nil), r.Value...)
	s.Err = nil
	s.LoadFailed = false
	return s
}

// ValidateTitle trims raw and reports whether anything is left.
func ValidateTitle(raw string) (string, bool) {
	title := strings.TrimSpace(raw)
	return title, title != ""
}

func ApplyCreate(s State, r Result[todos.Item]) State {
	if !r.Ok() {
		s.Err = r.Err
		return s
	}
	items := make([]todos.Item, 0, len(s.Items)+1)
	items = append(items, s.Items...)
	s.Items = append(items, r.Value)
	s.Input = ""
	return s
}

// ApplyUpdate retitles id in place. An id that is gone by the time the
// result lands is left gone.
func ApplyUpdate(s State, id int64, title string, r Result[struct{}]) State {
	if !r.Ok() {
		s.Err = r.Err
		return s
	}
	idx := IndexByID(s.Items, id)
	if idx < 0 {
		return s
	}
	items := append([]todos.Item(nil), s.Items...)
	items[idx].Title = title
	s.Items = items
	return s
}

func ApplyDelete(s State, id int64, r Result[struct{}]) State {
	if !r.Ok() {
		s.Err = r.Err
		return s
	}
	items := make([]todos.Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	s.Items = items
	return s
}

func SetSearchTerm(s State, term string) State {
	s.SearchTerm = term
	return s
}

func ToggleSort(s State) State {
	s.SortByAlphabet = !s.SortByAlphabet
	return s
}

func SetInput(s State, input string) State {
	s.Input = input
	return s
}

func IndexByID(items []todos.Item, id int64) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 8
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}
