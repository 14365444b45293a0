// ABOUTME: Versioned SQLite schema with ordered, additive migrations.
// ABOUTME: Each migration step transforms version N-1 to N; applied once at open.
package storage

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the schema version this build expects. It is also the
// version stamped into backup envelopes.
const SchemaVersion = 3

// migrations[i] brings the schema from version i to version i+1. Steps are
// additive only; already-persisted data is never rewritten in place.
var migrations = []string{
	// v1: exercises, workouts, sets, personal_records
	`
	CREATE TABLE exercises (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL CHECK(length(name) > 0),
		type TEXT NOT NULL CHECK(type IN ('weighted', 'bodyweight')),
		is_timed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE TABLE workouts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL UNIQUE,
		notes TEXT
	);

	CREATE TABLE sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		workout_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		set_index INTEGER NOT NULL,
		reps INTEGER,
		weight_kg REAL,
		duration_sec INTEGER
	);

	CREATE TABLE personal_records (
		exercise_id INTEGER PRIMARY KEY,
		best_weight REAL,
		best_reps INTEGER,
		best_duration_sec INTEGER,
		best_1rm REAL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX idx_sets_workout ON sets(workout_id);
	CREATE INDEX idx_sets_exercise ON sets(exercise_id);
	CREATE INDEX idx_workouts_date ON workouts(date);
	`,

	// v2: session metadata on workouts
	`
	ALTER TABLE workouts ADD COLUMN title TEXT;
	ALTER TABLE workouts ADD COLUMN duration_sec INTEGER;
	ALTER TABLE workouts ADD COLUMN mood INTEGER;
	`,

	// v3: templates
	`
	CREATE TABLE templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL CHECK(length(name) > 0),
		created_at TEXT NOT NULL
	);

	CREATE TABLE template_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		template_id INTEGER NOT NULL,
		exercise_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		default_sets INTEGER,
		default_reps INTEGER,
		default_duration_sec INTEGER,
		default_weight_kg REAL,
		UNIQUE(template_id, exercise_id)
	);

	CREATE INDEX idx_template_items_template ON template_items(template_id);
	`,
}

// migrate applies any pending migration steps, each in its own transaction.
// The persisted version lives in the schema_version table; a fresh database
// walks every step so old and new databases share one upgrade path.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(
		`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`,
	); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	version, err := s.schemaVersion()
	if err != nil {
		return err
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	for v := version; v < SchemaVersion; v++ {
		if err := s.applyMigration(v); err != nil {
			return fmt.Errorf("migrate to version %d: %w", v+1, err)
		}
	}
	return nil
}

// schemaVersion reads the highest applied version, 0 for a fresh database.
func (s *Store) schemaVersion() (int, error) {
	var version sql.NullInt64
	if err := s.db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(version.Int64), nil
}

func (s *Store) applyMigration(from int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migrations[from]); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO schema_version (version) VALUES (?)`, from+1); err != nil {
		return err
	}
	return tx.Commit()
}
