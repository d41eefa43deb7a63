package runjournal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"aircast/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	post_id TEXT NOT NULL DEFAULT '',
	mode TEXT NOT NULL,
	source TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	strategy TEXT NOT NULL DEFAULT '',
	assets TEXT NOT NULL DEFAULT '[]',
	error_message TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_post_id ON runs(post_id);
`

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Begin records a new run in pending state.
func (s *Store) Begin(ctx context.Context, runID, postID, mode, source string) (*Run, error) {
	now := time.Now().UTC()
	run := &Run{
		RunID:     runID,
		PostID:    postID,
		Mode:      mode,
		Source:    source,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, post_id, mode, source, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.PostID, run.Mode, run.Source, string(run.Status), now, now)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	run.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("run id: %w", err)
	}
	return run, nil
}

// Update persists the run's current status, strategy, assets, and error.
func (s *Store) Update(ctx context.Context, run *Run) error {
	if run == nil {
		return fmt.Errorf("run is required")
	}
	assets, err := json.Marshal(run.Assets)
	if err != nil {
		return fmt.Errorf("encode assets: %w", err)
	}
	run.UpdatedAt = time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, strategy = ?, assets = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		string(run.Status), run.Strategy, string(assets), run.ErrorMessage, run.UpdatedAt, run.ID)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, post_id, mode, source, status, strategy, assets, error_message, created_at, updated_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var status, assets string
		if err := rows.Scan(&run.ID, &run.RunID, &run.PostID, &run.Mode, &run.Source,
			&status, &run.Strategy, &assets, &run.ErrorMessage, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Status = Status(status)
		if trimmed := strings.TrimSpace(assets); trimmed != "" && trimmed != "null" {
			if err := json.Unmarshal([]byte(trimmed), &run.Assets); err != nil {
				run.Assets = nil
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
