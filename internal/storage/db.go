// ABOUTME: SQLite store connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection, the schema migrator, and the
// table-change watcher. One Store instance serves the whole process.
type Store struct {
	db      *sql.DB
	dbPath  string
	watcher *Watcher
}

// Open opens or creates a SQLite database at the given path and brings the
// schema up to date. Any failure here surfaces as a StorageError; callers
// must not proceed with a store that failed to open.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, &StorageError{Op: "open", Err: fmt.Errorf("create data directory: %w", err)}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	s := &Store{db: db, dbPath: dbPath, watcher: NewWatcher()}

	if err := s.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, &StorageError{Op: "open", Err: err}
	}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, &StorageError{Op: "migrate", Err: err}
	}

	return s, nil
}

// OpenDefault opens the database at the default XDG data path.
func OpenDefault() (*Store, error) {
	return Open(DefaultDBPath())
}

// DataDir returns the default data directory following the XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "workout")
}

// DefaultDBPath returns the default database path following the XDG spec.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "workout.db")
}

// Watcher returns the store's table-change notifier.
func (s *Store) Watcher() *Watcher {
	return s.watcher
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// configurePragmas sets up SQLite for a single-writer local store.
func (s *Store) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}
