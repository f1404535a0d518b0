// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite ledger of extraction runs.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/speaker-notes/pkg/types"
)

const (
	defaultMaxResults = 20

	// timeLayout has fixed-width fractional seconds so started_at sorts
	// lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the run history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the history database at cfg.Path, creating its
// parent directory and schema as needed.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history database path not set")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source TEXT NOT NULL,
			destination TEXT NOT NULL,
			slides INTEGER NOT NULL,
			with_notes INTEGER NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			started_at TEXT NOT NULL,
			duration_ns INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends a run.
func (s *Store) Record(ctx context.Context, run types.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (source, destination, slides, with_notes, status, error, started_at, duration_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Source, run.Destination, run.Slides, run.WithNotes, string(run.Status),
		run.Error, run.StartedAt.UTC().Format(timeLayout), int64(run.Duration),
	)
	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// List returns up to limit runs, newest first. A limit of zero or less
// uses the configured default.
func (s *Store) List(ctx context.Context, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, destination, slides, with_notes, status, error, started_at, duration_ns
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var (
			run       types.Run
			status    string
			errMsg    sql.NullString
			startedAt string
			duration  int64
		)
		if err := rows.Scan(&run.ID, &run.Source, &run.Destination, &run.Slides, &run.WithNotes,
			&status, &errMsg, &startedAt, &duration); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.Status = types.RunStatus(status)
		run.Error = errMsg.String
		run.Duration = time.Duration(duration)
		if t, err := time.Parse(timeLayout, startedAt); err == nil {
			run.StartedAt = t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// ExportYAML writes up to limit runs, newest first, as a YAML sequence.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, limit int) error {
	runs, err := s.List(ctx, limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []types.Run{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(runs); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
