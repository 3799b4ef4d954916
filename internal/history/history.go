// Package history keeps a local record of completed sprints so past
// sessions can be reviewed offline. The backend owns the authoritative
// scoring; this is a client-side cache only.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sprints (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	skill          TEXT NOT NULL,
	topic          TEXT NOT NULL DEFAULT '',
	difficulty     TEXT NOT NULL,
	score_correct  INTEGER NOT NULL,
	score_total    INTEGER NOT NULL,
	timed          INTEGER NOT NULL DEFAULT 0,
	duration_secs  INTEGER NOT NULL DEFAULT 0,
	finished_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sprints_finished_at ON sprints(finished_at);
`

// Entry is one completed sprint.
type Entry struct {
	ID           int64
	Skill        string
	Topic        string
	Difficulty   string
	ScoreCorrect int
	ScoreTotal   int
	Timed        bool
	DurationSecs int
	FinishedAt   time.Time
}

// Store is the local sprint history database.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas, and
// creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records a completed sprint.
func (s *Store) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sprints (skill, topic, difficulty, score_correct, score_total, timed, duration_secs, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Skill, e.Topic, e.Difficulty, e.ScoreCorrect, e.ScoreTotal, e.Timed, e.DurationSecs, e.FinishedAt.UTC())
	if err != nil {
		return fmt.Errorf("append sprint: %w", err)
	}
	return nil
}

// Recent returns the most recent sprints, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, skill, topic, difficulty, score_correct, score_total, timed, duration_secs, finished_at
		 FROM sprints ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sprints: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Skill, &e.Topic, &e.Difficulty,
			&e.ScoreCorrect, &e.ScoreTotal, &e.Timed, &e.DurationSecs, &e.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan sprint: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// applyPragmas configures SQLite for single-user client use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the history database path in priority order:
// SKILLSPRINT_DB env var, then <dataDir>/history.db.
func DefaultDBPath(dataDir string) (string, error) {
	if p := os.Getenv("SKILLSPRINT_DB"); p != "" {
		return p, ensureDir(p)
	}
	p := filepath.Join(dataDir, "history.db")
	return p, ensureDir(p)
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
