// ABOUTME: Workout CRUD operations for the SQLite store.
// ABOUTME: Idempotent get-or-create by date; partial metadata patches; cascade delete.
package storage

import (
	"database/sql"
	"strings"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

// CreateWorkout returns the id of the workout for the given date, creating
// it first if needed. The date is normalized to its YYYY-MM-DD prefix, and
// the lookup-before-create inside one transaction guarantees a date never
// gains a second row. An existing workout's notes are left untouched.
func (s *Store) CreateWorkout(dateISO, notes string) (int64, error) {
	date, err := models.NormalizeDate(dateISO)
	if err != nil {
		return 0, &ValidationError{Field: "date", Reason: err.Error()}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, storageErr("create workout", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRow(`SELECT id FROM workouts WHERE date = ?`, date).Scan(&id)
	if err == nil {
		return id, tx.Commit()
	}
	if err != sql.ErrNoRows {
		return 0, storageErr("create workout", err)
	}

	res, err := tx.Exec(`INSERT INTO workouts (date, notes) VALUES (?, ?)`,
		date, nullString(notes))
	if err != nil {
		return 0, storageErr("create workout", err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, storageErr("create workout", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, storageErr("create workout", err)
	}

	s.watcher.publish(TableWorkouts)
	return id, nil
}

// GetWorkout retrieves one workout, or nil when it does not exist.
func (s *Store) GetWorkout(id int64) (*models.Workout, error) {
	row := s.db.QueryRow(`
		SELECT id, date, notes, title, duration_sec, mood
		FROM workouts WHERE id = ?`, id)
	return scanWorkout(row)
}

// GetWorkoutsByDate returns the workouts for a date: zero or one element.
func (s *Store) GetWorkoutsByDate(dateISO string) ([]models.Workout, error) {
	date, err := models.NormalizeDate(dateISO)
	if err != nil {
		return nil, &ValidationError{Field: "date", Reason: err.Error()}
	}

	w, err := scanWorkout(s.db.QueryRow(`
		SELECT id, date, notes, title, duration_sec, mood
		FROM workouts WHERE date = ?`, date))
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, nil
	}
	return []models.Workout{*w}, nil
}

// GetWorkouts returns all workouts ordered by date ascending.
func (s *Store) GetWorkouts() ([]models.Workout, error) {
	rows, err := s.db.Query(`
		SELECT id, date, notes, title, duration_sec, mood
		FROM workouts ORDER BY date ASC`)
	if err != nil {
		return nil, storageErr("list workouts", err)
	}
	defer rows.Close()

	var workouts []models.Workout
	for rows.Next() {
		w, err := scanWorkoutRow(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

// UpdateWorkoutMeta merges the non-nil patch fields into the workout.
// Absent fields are left untouched; a missing workout is a no-op.
func (s *Store) UpdateWorkoutMeta(id int64, patch models.WorkoutMetaPatch) (bool, error) {
	var sets []string
	var args []any
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *patch.Notes)
	}
	if patch.DurationSec != nil {
		sets = append(sets, "duration_sec = ?")
		args = append(args, *patch.DurationSec)
	}
	if patch.Mood != nil {
		if *patch.Mood < 1 || *patch.Mood > 5 {
			return false, &ValidationError{Field: "mood", Reason: "must be between 1 and 5"}
		}
		sets = append(sets, "mood = ?")
		args = append(args, *patch.Mood)
	}
	if len(sets) == 0 {
		return false, nil
	}

	args = append(args, id)
	res, err := s.db.Exec(`UPDATE workouts SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return false, storageErr("update workout", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return false, nil
	}

	s.watcher.publish(TableWorkouts)
	return true, nil
}

// DeleteWorkout removes a workout and all of its sets in one transaction.
// It returns the distinct exercise ids that lost sets, so the caller can
// recompute their PRs.
func (s *Store) DeleteWorkout(id int64) ([]int64, bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, false, storageErr("delete workout", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`SELECT DISTINCT exercise_id FROM sets WHERE workout_id = ?`, id)
	if err != nil {
		return nil, false, storageErr("delete workout", err)
	}
	var exerciseIDs []int64
	for rows.Next() {
		var eid int64
		if err := rows.Scan(&eid); err != nil {
			rows.Close()
			return nil, false, storageErr("delete workout", err)
		}
		exerciseIDs = append(exerciseIDs, eid)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, false, storageErr("delete workout", err)
	}
	rows.Close()

	if _, err := tx.Exec(`DELETE FROM sets WHERE workout_id = ?`, id); err != nil {
		return nil, false, storageErr("delete workout", err)
	}
	res, err := tx.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return nil, false, storageErr("delete workout", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return nil, false, nil
	}

	if err := tx.Commit(); err != nil {
		return nil, false, storageErr("delete workout", err)
	}

	s.watcher.publish(TableWorkouts, TableSets)
	return exerciseIDs, true, nil
}

func scanWorkout(row *sql.Row) (*models.Workout, error) {
	var w models.Workout
	var notes, title sql.NullString
	var durationSec, mood sql.NullInt64
	err := row.Scan(&w.ID, &w.Date, &notes, &title, &durationSec, &mood)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("scan workout", err)
	}
	applyWorkoutNulls(&w, notes, title, durationSec, mood)
	return &w, nil
}

func scanWorkoutRow(rows *sql.Rows) (*models.Workout, error) {
	var w models.Workout
	var notes, title sql.NullString
	var durationSec, mood sql.NullInt64
	if err := rows.Scan(&w.ID, &w.Date, &notes, &title, &durationSec, &mood); err != nil {
		return nil, storageErr("scan workout", err)
	}
	applyWorkoutNulls(&w, notes, title, durationSec, mood)
	return &w, nil
}

func applyWorkoutNulls(w *models.Workout, notes, title sql.NullString, durationSec, mood sql.NullInt64) {
	if notes.Valid {
		w.Notes = &notes.String
	}
	if title.Valid {
		w.Title = &title.String
	}
	if durationSec.Valid {
		v := int(durationSec.Int64)
		w.DurationSec = &v
	}
	if mood.Valid {
		v := int(mood.Int64)
		w.Mood = &v
	}
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
