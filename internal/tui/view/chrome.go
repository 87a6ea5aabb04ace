package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/todo-cli/internal/tui/theme"
)

func Toolbar(mode string) string {
	switch mode {
	case "add":
		return "enter: save | esc: cancel"
	case "edit":
		return "enter: save title | esc: cancel"
	case "search":
		return "type to filter | enter: keep | esc: clear"
	}
	return "j/k move | a add | e edit | d delete | / search | s sort | # ids | y copy | r reload | ? help | q quit"
}

func Footer(mode string, total, shown int, searchTerm string, sortByAlphabet bool, th tuitheme.Theme) string {
	order := "server"
	if sortByAlphabet {
		order = "a-z"
	}
	parts := []string{
		th.MetaLabel.Render("mode") + " " + th.MetaValue.Render(mode),
		th.MetaLabel.Render("order") + " " + th.MetaValue.Render(order),
		th.MetaValue.Render(fmt.Sprintf("%d/%d shown", shown, total)),
	}
	if searchTerm != "" {
		parts = append(parts, th.MetaLabel.Render("search")+" "+th.MetaValue.Render(fmt.Sprintf("%q", searchTerm)))
	}
	return strings.Join(parts, " • ")
}

// MessageLine reports the last non-fatal error, else the status, else Ready.
func MessageLine(busy int, status string, err error, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	if busy > 0 {
		state = fmt.Sprintf("syncing %d", busy)
		stateLabel = th.StateLoad.Render("state")
	}
	main := "Ready"
	if status != "" {
		main = status
	}
	if err != nil {
		state = "warning"
		stateLabel = th.StateWarn.Render("state")
		main = err.Error()
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

func ErrorScreen(err error, th tuitheme.Theme) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return th.ErrorText.Render("Could not load todos: "+msg) + "\n\nr: retry | q: quit\n"
}
