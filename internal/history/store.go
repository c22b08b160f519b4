// Package history records snapshot runs in a SQLite database so past
// generations can be listed and compared. History is an optional convenience:
// failures here never fail a snapshot run.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded snapshot generation.
type Run struct {
	ID          int64
	RunID       string
	Root        string
	Extension   string
	Title       string
	TargetCount int
	InfraCount  int
	OutputFile  string
	Duration    time.Duration
	CreatedAt   time.Time
}

// Store manages the SQLite database holding snapshot run history.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open creates a Store at dbPath, initializing the schema if needed.
// The parent directory is created for file-based databases.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so the remaining setup waits on locks held by a
	// concurrent run instead of failing.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record inserts one snapshot run.
func (s *Store) Record(run Run) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshot_runs
			(run_id, root, extension, title, target_count, infra_count, output_file, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Root, run.Extension, run.Title,
		run.TargetCount, run.InfraCount, run.OutputFile,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first, up to limit.
func (s *Store) Recent(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, root, extension, title, target_count, infra_count,
		       output_file, duration_ms, created_at
		FROM snapshot_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMS int64
		if err := rows.Scan(
			&run.ID, &run.RunID, &run.Root, &run.Extension, &run.Title,
			&run.TargetCount, &run.InfraCount, &run.OutputFile,
			&durationMS, &run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
