package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/todo-cli/internal/todos"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Prompt     lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style
	ErrorText  lipgloss.Style
	ItemID     lipgloss.Style

	TitleOpen lipgloss.Style
	TitleDone lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext0 := lipgloss.Color("#a6adc8")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:   lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Prompt:     lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
		ErrorText:  lipgloss.NewStyle().Bold(true).Foreground(cpRed),
		ItemID:     lipgloss.NewStyle().Foreground(cpOverlay1),
		TitleOpen:  lipgloss.NewStyle().Foreground(cpText),
		TitleDone:  lipgloss.NewStyle().Strikethrough(true).Foreground(cpSubtext0),
	}
}

func (t Theme) StyleItemTitle(item todos.Item, title string) string {
	if title == "" {
		return title
	}
	if item.Completed {
		return t.TitleDone.Render(title)
	}
	return t.TitleOpen.Render(title)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
