// Package store implements core.Repository on SQLite.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/machielvdw/clokk/internal/core"
)

const currentVersion = 1

// Store is a SQLite-backed repository.
type Store struct {
	db *sql.DB
}

var _ core.Repository = (*Store)(nil)

// Open opens (or creates) the SQLite database at dbPath and runs
// migrations.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory store for testing.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		client      TEXT,
		color       TEXT,
		rate        REAL,
		currency    TEXT NOT NULL DEFAULT 'USD',
		archived    INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS entries (
		id          TEXT PRIMARY KEY,
		project_id  TEXT REFERENCES projects(id) ON DELETE SET NULL,
		description TEXT NOT NULL DEFAULT '',
		start_time  TEXT NOT NULL,
		end_time    TEXT,
		tags        TEXT NOT NULL DEFAULT '[]',
		billable    INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_start   ON entries(start_time);
	CREATE INDEX IF NOT EXISTS idx_entries_project ON entries(project_id);
	CREATE INDEX IF NOT EXISTS idx_entries_end     ON entries(end_time);

	-- Storage-level backstop for the single-running-entry invariant:
	-- the constant-expression unique index admits at most one row with
	-- a null end_time.
	CREATE UNIQUE INDEX IF NOT EXISTS idx_entries_one_running
		ON entries((1)) WHERE end_time IS NULL;
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns the database path inside the clokk directory
// (~/.clokk, overridable via CLOKK_DIR).
func DefaultDBPath() (string, error) {
	if dir := os.Getenv("CLOKK_DIR"); dir != "" {
		return filepath.Join(dir, "clokk.db"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".clokk", "clokk.db"), nil
}
