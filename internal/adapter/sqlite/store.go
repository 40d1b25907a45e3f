package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vertextoedge/space-reclaimer/internal/port"
)

// Store implements port.RunJournal using SQLite
type Store struct {
	db *sql.DB
}

// Ensure Store implements port.RunJournal
var _ port.RunJournal = (*Store)(nil)

// Open opens a connection to the SQLite database, creating its directory if needed
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dbPath != ":memory:" && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases and pragmas consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", pragma, err)
		}
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// migrate creates or updates the database schema
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			target_path TEXT NOT NULL,
			threshold_bytes INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			directories_deleted INTEGER NOT NULL DEFAULT 0,
			bytes_freed INTEGER NOT NULL DEFAULT 0,
			free_bytes_before INTEGER NOT NULL DEFAULT 0,
			free_bytes_after INTEGER NOT NULL DEFAULT 0,
			started_at_ns INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL DEFAULT 0,
			error TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS deleted_directories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			created_at_ns INTEGER NOT NULL,
			size_bytes INTEGER NOT NULL DEFAULT 0,
			skipped_entries INTEGER NOT NULL DEFAULT 0,
			free_bytes_after INTEGER NOT NULL DEFAULT 0,
			deleted_at_ns INTEGER NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at_ns)`,
		`CREATE INDEX IF NOT EXISTS idx_deleted_directories_run_id ON deleted_directories(run_id, position)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, migration)
		}
	}
	return nil
}
