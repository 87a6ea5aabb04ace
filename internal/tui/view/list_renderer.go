package view

import (
	"strings"

	"github.com/glabrego/todo-cli/internal/todos"
)

type ListRenderInput struct {
	Items  []todos.Item
	Start  int
	End    int
	Cursor int

	RenderItemLine func(item todos.Item, visiblePos int, active bool) string
}

// RenderListBody renders items[Start:End], one line each.
func RenderListBody(in ListRenderInput) string {
	if len(in.Items) == 0 || in.Start >= in.End || in.Start < 0 {
		return ""
	}
	end := in.End
	if end > len(in.Items) {
		end = len(in.Items)
	}
	var b strings.Builder
	for i := in.Start; i < end; i++ {
		b.WriteString(in.RenderItemLine(in.Items[i], i, i == in.Cursor))
		b.WriteString("\n")
	}
	return b.String()
}
