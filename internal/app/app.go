package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/glabrego/todo-cli/internal/storage"
	"github.com/glabrego/todo-cli/internal/todos"
)

// ErrEmptyTitle is returned when a title is blank after trimming.
var ErrEmptyTitle = errors.New("title must not be empty")

type TodoClient interface {
	List(ctx context.Context) ([]todos.Item, error)
	Create(ctx context.Context, title string) (todos.Item, error)
	Update(ctx context.Context, id int64, title string) error
	Delete(ctx context.Context, id int64) error
}

type Repository interface {
	LoadUIPreferences(ctx context.Context) (storage.UIPreferences, error)
	SaveUIPreferences(ctx context.Context, prefs storage.UIPreferences) error
}

type UIPreferences struct {
	SortByAlphabet bool
	ShowIDs        bool
}

type Service struct {
	client TodoClient
	repo   Repository
	logger *log.Logger
}

// NewService wires the API client and preference store. A nil logger
// discards output.
func NewService(client TodoClient, repo Repository, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{client: client, repo: repo, logger: logger}
}

func (s *Service) Load(ctx context.Context) ([]todos.Item, error) {
	var items []todos.Item
	err := s.track("load", func() error {
		var err error
		items, err = s.client.List(ctx)
		return err
	}, "count", func() any { return len(items) })
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}
	return items, nil
}

func (s *Service) Create(ctx context.Context, title string) (todos.Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return todos.Item{}, ErrEmptyTitle
	}

	var item todos.Item
	err := s.track("create", func() error {
		var err error
		item, err = s.client.Create(ctx, title)
		return err
	}, "id", func() any { return item.ID })
	if err != nil {
		return todos.Item{}, fmt.Errorf("create todo: %w", err)
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, id int64, title string) error {
	err := s.track("update", func() error {
		return s.client.Update(ctx, id, title)
	}, "id", func() any { return id })
	if err != nil {
		return fmt.Errorf("update todo %d: %w", id, err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.track("delete", func() error {
		return s.client.Delete(ctx, id)
	}, "id", func() any { return id })
	if err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

func (s *Service) LoadUIPreferences(ctx context.Context) (UIPreferences, error) {
	if s.repo == nil {
		return UIPreferences{}, nil
	}
	prefs, err := s.repo.LoadUIPreferences(ctx)
	if err != nil {
		return UIPreferences{}, fmt.Errorf("load ui preferences: %w", err)
	}
	return UIPreferences{SortByAlphabet: prefs.SortByAlphabet, ShowIDs: prefs.ShowIDs}, nil
}

func (s *Service) SaveUIPreferences(ctx context.Context, prefs UIPreferences) error {
	if s.repo == nil {
		return nil
	}
	err := s.repo.SaveUIPreferences(ctx, storage.UIPreferences{
		SortByAlphabet: prefs.SortByAlphabet,
		ShowIDs:        prefs.ShowIDs,
	})
	if err != nil {
		return fmt.Errorf("save ui preferences: %w", err)
	}
	return nil
}

// track runs fn and logs its outcome. detail is evaluated after fn so it can
// report values fn produced.
func (s *Service) track(op string, fn func() error, detailKey string, detail func() any) error {
	opID := uuid.NewString()
	start := time.Now()
	s.logger.Debug("request started", "op", op, "op_id", opID)

	err := fn()
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Warn("request failed", "op", op, "op_id", opID, "duration", elapsed, "err", err)
		return err
	}
	s.logger.Info("request completed", "op", op, "op_id", opID, "duration", elapsed, detailKey, detail())
	return nil
}
