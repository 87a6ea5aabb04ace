package main

import (
	"context"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/glabrego/todo-cli/internal/app"
	"github.com/glabrego/todo-cli/internal/config"
	"github.com/glabrego/todo-cli/internal/logging"
	"github.com/glabrego/todo-cli/internal/storage"
	"github.com/glabrego/todo-cli/internal/todos"
	"github.com/glabrego/todo-cli/internal/tui"
)

func main() {
	stderr := log.NewWithOptions(os.Stderr, log.Options{Prefix: "todo"})

	cfg, err := config.Load()
	if err != nil {
		stderr.Fatal("config error", "err", err)
	}

	logger, logCloser, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		stderr.Fatal("log setup error", "err", err, "path", cfg.LogPath)
	}
	defer logCloser.Close()

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		stderr.Fatal("storage init error", "err", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		stderr.Fatal("storage schema error", "err", err)
	}
	if err := repo.CheckWritable(ctx); err != nil {
		stderr.Fatal("storage write check failed, verify TODO_DB_PATH is writable", "err", err, "path", cfg.DBPath)
	}

	client := todos.NewClient(cfg.APIBaseURL, nil)
	service := app.NewService(client, repo, logger)
	logger.Info("starting", "api", cfg.APIBaseURL, "db", cfg.DBPath)

	model := tui.NewModel(service)

	prefCtx, prefCancel := context.WithTimeout(context.Background(), 5*time.Second)
	prefs, err := service.LoadUIPreferences(prefCtx)
	prefCancel()
	if err != nil {
		logger.Warn("could not load UI preferences, using defaults", "err", err)
	} else {
		model.ApplyPreferences(tui.Preferences{
			SortByAlphabet: prefs.SortByAlphabet,
			ShowIDs:        prefs.ShowIDs,
		})
	}

	model.SetPreferencesSaver(func(p tui.Preferences) error {
		saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer saveCancel()
		return service.SaveUIPreferences(saveCtx, app.UIPreferences{
			SortByAlphabet: p.SortByAlphabet,
			ShowIDs:        p.ShowIDs,
		})
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		logger.Error("tui error", "err", err)
		stderr.Fatal("tui error", "err", err)
	}
}
