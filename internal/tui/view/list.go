package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	tuitheme "github.com/glabrego/todo-cli/internal/tui/theme"

	"github.com/glabrego/todo-cli/internal/todos"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type ItemLineParams struct {
	Item       todos.Item
	ShowIDs    bool
	VisiblePos int
	Active     bool
	Width      int
}

func RenderItemLine(p ItemLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	doneMarker := "[ ]"
	if p.Item.Completed {
		doneMarker = "[x]"
	}

	prefix := fmt.Sprintf("  %s%3d. %s ", cursorMarker, p.VisiblePos+1, doneMarker)
	idLabel := ""
	if p.ShowIDs {
		idLabel = fmt.Sprintf("#%d", p.Item.ID)
	}

	available := p.Width - visibleLen(prefix)
	if idLabel != "" {
		available -= 1 + visibleLen(idLabel)
	}
	if p.Width <= 0 {
		available = utf8.RuneCountInString(p.Item.Title)
	}
	if available < 1 {
		available = 1
	}

	label := strings.TrimSpace(p.Item.Title)
	if label == "" {
		label = "(untitled)"
	}
	label = truncateRunes(label, available)
	line := prefix + th.StyleItemTitle(p.Item, label)
	if idLabel != "" {
		gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(idLabel)
		if gap < 1 {
			gap = 1
		}
		line += strings.Repeat(" ", gap) + th.ItemID.Render(idLabel)
	}
	return th.RenderActiveLine(p.Active, line)
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
