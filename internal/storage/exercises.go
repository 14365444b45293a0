// ABOUTME: Exercise CRUD operations for the SQLite store.
// ABOUTME: Enforces the timed-conversion guard and the atomic cascade delete.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

// AddExercise validates and inserts a new exercise, returning its id.
func (s *Store) AddExercise(name string, typ models.ExerciseType, isTimed bool) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if !models.IsValidExerciseType(string(typ)) {
		return 0, &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown exercise type %q", typ)}
	}

	res, err := s.db.Exec(`
		INSERT INTO exercises (name, type, is_timed, created_at)
		VALUES (?, ?, ?, ?)`,
		name, string(typ), isTimed, time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return 0, storageErr("add exercise", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("add exercise", err)
	}

	s.watcher.publish(TableExercises)
	return id, nil
}

// GetExercise retrieves one exercise, or nil when it does not exist.
func (s *Store) GetExercise(id int64) (*models.Exercise, error) {
	row := s.db.QueryRow(`
		SELECT id, name, type, is_timed, created_at
		FROM exercises WHERE id = ?`, id)
	return scanExercise(row)
}

// GetExerciseByName retrieves an exercise by exact name, or nil when missing.
// Names are unique by intent, not by constraint; the first match wins.
func (s *Store) GetExerciseByName(name string) (*models.Exercise, error) {
	row := s.db.QueryRow(`
		SELECT id, name, type, is_timed, created_at
		FROM exercises WHERE name = ? ORDER BY id LIMIT 1`, strings.TrimSpace(name))
	return scanExercise(row)
}

// GetExercises returns all exercises ordered by creation time ascending,
// so list positions stay stable for the UI.
func (s *Store) GetExercises() ([]models.Exercise, error) {
	rows, err := s.db.Query(`
		SELECT id, name, type, is_timed, created_at
		FROM exercises ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, storageErr("list exercises", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var e models.Exercise
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.IsTimed, &createdAt); err != nil {
			return nil, storageErr("scan exercise", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

// UpdateExerciseName renames an exercise in place. Missing ids are a no-op.
func (s *Store) UpdateExerciseName(id int64, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	res, err := s.db.Exec(`UPDATE exercises SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return false, storageErr("rename exercise", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return false, nil
	}

	s.watcher.publish(TableExercises)
	return true, nil
}

// UpdateExerciseTimed flips the measurement mode of an exercise. Blocked with
// a ConflictError once any set references the exercise: converting would
// silently change the meaning of historical data.
func (s *Store) UpdateExerciseTimed(id int64, isTimed bool) (bool, error) {
	count, err := s.CountSetsForExercise(id)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, &ConflictError{Reason: "cannot convert: sets exist", SetCount: count}
	}

	res, err := s.db.Exec(`UPDATE exercises SET is_timed = ? WHERE id = ?`, isTimed, id)
	if err != nil {
		return false, storageErr("update exercise", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return false, nil
	}

	s.watcher.publish(TableExercises)
	return true, nil
}

// DeleteExercise removes an exercise together with its sets, its PR row, and
// any template items referencing it, in one transaction. A partial cascade is
// an invariant violation, so any failure rolls back everything.
func (s *Store) DeleteExercise(id int64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, storageErr("delete exercise", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM sets WHERE exercise_id = ?`,
		`DELETE FROM personal_records WHERE exercise_id = ?`,
		`DELETE FROM template_items WHERE exercise_id = ?`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return false, storageErr("delete exercise", err)
		}
	}

	res, err := tx.Exec(`DELETE FROM exercises WHERE id = ?`, id)
	if err != nil {
		return false, storageErr("delete exercise", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		// Nothing to delete; leave the other tables untouched.
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, storageErr("delete exercise", err)
	}

	s.watcher.publish(TableExercises, TableSets, TablePRs, TableTemplateItems)
	return true, nil
}

// scanExercise scans a single row, mapping sql.ErrNoRows to (nil, nil).
func scanExercise(row *sql.Row) (*models.Exercise, error) {
	var e models.Exercise
	var createdAt string
	err := row.Scan(&e.ID, &e.Name, &e.Type, &e.IsTimed, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("scan exercise", err)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &e, nil
}
