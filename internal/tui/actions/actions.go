package actions

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/todo-cli/internal/todos"
	"github.com/glabrego/todo-cli/internal/tui/state"
)

const requestTimeout = 10 * time.Second

type Service interface {
	Load(ctx context.Context) ([]todos.Item, error)
	Create(ctx context.Context, title string) (todos.Item, error)
	Update(ctx context.Context, id int64, title string) error
	Delete(ctx context.Context, id int64) error
}

type LoadedMsg struct {
	Result   state.Result[[]todos.Item]
	Duration time.Duration
}

type CreatedMsg struct {
	Result state.Result[todos.Item]
}

type UpdatedMsg struct {
	ID     int64
	Title  string
	Result state.Result[struct{}]
}

type DeletedMsg struct {
	ID     int64
	Result state.Result[struct{}]
}

type CopySuccessMsg struct {
	Status string
}

type CopyErrorMsg struct {
	Err error
}

type PreferenceSaveErrorMsg struct {
	Err error
}

func LoadCmd(service Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		start := time.Now()

		items, err := service.Load(ctx)
		if err != nil {
			return LoadedMsg{Result: state.Failure[[]todos.Item](err), Duration: time.Since(start)}
		}
		return LoadedMsg{Result: state.Success(items), Duration: time.Since(start)}
	}
}

func CreateCmd(service Service, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		item, err := service.Create(ctx, title)
		if err != nil {
			return CreatedMsg{Result: state.Failure[todos.Item](err)}
		}
		return CreatedMsg{Result: state.Success(item)}
	}
}

func UpdateCmd(service Service, id int64, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return UpdatedMsg{ID: id, Title: title, Result: unitResult(service.Update(ctx, id, title))}
	}
}

func DeleteCmd(service Service, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return DeletedMsg{ID: id, Result: unitResult(service.Delete(ctx, id))}
	}
}

func CopyTitleCmd(title string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(title); err == nil {
				return CopySuccessMsg{Status: "Title copied to clipboard"}
			}
		}
		return CopyErrorMsg{Err: fmt.Errorf("could not copy title to clipboard")}
	}
}

// PersistPreferencesCmd returns nil when there is nothing to save with.
func PersistPreferencesCmd[P any](saveFn func(P) error, prefs P) tea.Cmd {
	if saveFn == nil {
		return nil
	}
	return func() tea.Msg {
		if err := saveFn(prefs); err != nil {
			return PreferenceSaveErrorMsg{Err: err}
		}
		return nil
	}
}

func unitResult(err error) state.Result[struct{}] {
	if err != nil {
		return state.Failure[struct{}](err)
	}
	return state.Success(struct{}{})
}
