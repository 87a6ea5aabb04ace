package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// UIPreferences are the view toggles that survive restarts.
type UIPreferences struct {
	SortByAlphabet bool
	ShowIDs        bool
}

const (
	prefSortByAlphabet = "sort_by_alphabet"
	prefShowIDs        = "show_ids"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS ui_preferences (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable fails early when the database file is read-only.
func (r *Repository) CheckWritable(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO ui_preferences (key, value, updated_at) VALUES ('__write_check', '1', ?)`, now()); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

func (r *Repository) SaveUIPreferences(ctx context.Context, prefs UIPreferences) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO ui_preferences (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at
`)
	if err != nil {
		return fmt.Errorf("prepare preference statement: %w", err)
	}
	defer stmt.Close()

	ts := now()
	values := map[string]bool{
		prefSortByAlphabet: prefs.SortByAlphabet,
		prefShowIDs:        prefs.ShowIDs,
	}
	for key, value := range values {
		if _, err := stmt.ExecContext(ctx, key, strconv.FormatBool(value), ts); err != nil {
			return fmt.Errorf("save preference %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) LoadUIPreferences(ctx context.Context) (UIPreferences, error) {
	var prefs UIPreferences

	sortByAlphabet, err := r.loadBool(ctx, prefSortByAlphabet)
	if err != nil {
		return UIPreferences{}, err
	}
	prefs.SortByAlphabet = sortByAlphabet

	showIDs, err := r.loadBool(ctx, prefShowIDs)
	if err != nil {
		return UIPreferences{}, err
	}
	prefs.ShowIDs = showIDs

	return prefs, nil
}

func (r *Repository) loadBool(ctx context.Context, key string) (bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM ui_preferences WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load preference %s: %w", key, err)
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse preference %s=%q: %w", key, raw, err)
	}
	return value, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
