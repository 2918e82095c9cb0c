// Package history keeps a local log of cleaning runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath is where the CLI keeps its run history unless configured
// otherwise.
const DefaultPath = ".vcf/history.db"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	destination TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	blocks_parsed INTEGER NOT NULL,
	records_kept INTEGER NOT NULL,
	records_no_phone INTEGER NOT NULL,
	duplicates_removed INTEGER NOT NULL,
	fields_removed INTEGER NOT NULL,
	discarded_lines INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
`

// Run is one recorded cleaning run
type Run struct {
	ID                string
	Source            string
	Destination       string
	StartedAt         time.Time
	Duration          time.Duration
	BlocksParsed      int
	RecordsKept       int
	RecordsNoPhone    int
	DuplicatesRemoved int
	FieldsRemoved     int
	DiscardedLines    int
}

// Store persists runs to a SQLite database
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and
// initializes the schema. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	// WAL mode for concurrent batch writers; busy timeout instead of
	// immediate SQLITE_BUSY failures.
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordRun inserts one run.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		return fmt.Errorf("run id must not be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, source, destination, started_at, duration_ms,
			blocks_parsed, records_kept, records_no_phone,
			duplicates_removed, fields_removed, discarded_lines
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.Source, run.Destination, run.StartedAt, run.Duration.Milliseconds(),
		run.BlocksParsed, run.RecordsKept, run.RecordsNoPhone,
		run.DuplicatesRemoved, run.FieldsRemoved, run.DiscardedLines,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first. A limit of zero or
// less means 20.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, destination, started_at, duration_ms,
		       blocks_parsed, records_kept, records_no_phone,
		       duplicates_removed, fields_removed, discarded_lines
		FROM runs
		ORDER BY started_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var durationMs int64
		if err := rows.Scan(
			&run.ID, &run.Source, &run.Destination, &run.StartedAt, &durationMs,
			&run.BlocksParsed, &run.RecordsKept, &run.RecordsNoPhone,
			&run.DuplicatesRemoved, &run.FieldsRemoved, &run.DiscardedLines,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	return runs, nil
}

// Prune deletes all but the newest keep runs and returns how many were
// deleted.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("keep must not be negative (got %d)", keep)
	}

	res, err := s.db.ExecContext(ctx, `
		DELETE FROM runs
		WHERE id NOT IN (
			SELECT id FROM runs
			ORDER BY started_at DESC, id
			LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned runs: %w", err)
	}
	return int(deleted), nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
