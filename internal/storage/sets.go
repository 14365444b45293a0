// ABOUTME: Set CRUD operations for the SQLite store.
// ABOUTME: Validates measurement mode against the owning exercise at write time.
package storage

import (
	"database/sql"
	"strings"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

// AddSet validates and inserts a set, returning its id. The measure must
// match the owning exercise: timed exercises take duration_sec, rep-based
// exercises take reps, and only weighted exercises may carry weight_kg.
// Mismatched writes are rejected rather than silently corrupting PR data.
func (s *Store) AddSet(set *models.Set) (int64, error) {
	if set.WorkoutID == 0 {
		return 0, &ValidationError{Field: "workout_id", Reason: "required"}
	}
	if set.ExerciseID == 0 {
		return 0, &ValidationError{Field: "exercise_id", Reason: "required"}
	}
	if set.SetIndex <= 0 {
		return 0, &ValidationError{Field: "set_index", Reason: "must be 1 or greater"}
	}

	exercise, err := s.GetExercise(set.ExerciseID)
	if err != nil {
		return 0, err
	}
	if exercise == nil {
		return 0, &ValidationError{Field: "exercise_id", Reason: "unknown exercise"}
	}
	if err := validateMeasure(exercise, set.Reps, set.WeightKg, set.DurationSec); err != nil {
		return 0, err
	}

	res, err := s.db.Exec(`
		INSERT INTO sets (workout_id, exercise_id, set_index, reps, weight_kg, duration_sec)
		VALUES (?, ?, ?, ?, ?, ?)`,
		set.WorkoutID, set.ExerciseID, set.SetIndex,
		set.Reps, set.WeightKg, set.DurationSec,
	)
	if err != nil {
		return 0, storageErr("add set", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("add set", err)
	}
	set.ID = id

	s.watcher.publish(TableSets)
	return id, nil
}

// UpdateSet merges the non-nil patch fields into a set. Only reps, weight,
// duration, and set index can change, and the merged result must still match
// the owning exercise's measurement mode, the same guard AddSet applies. It
// returns the owning exercise id so the caller can recompute that exercise's
// PR; a missing set reports found=false and is otherwise a no-op.
func (s *Store) UpdateSet(id int64, patch models.SetPatch) (int64, bool, error) {
	var exerciseID int64
	var reps, durationSec sql.NullInt64
	var weightKg sql.NullFloat64
	err := s.db.QueryRow(`SELECT exercise_id, reps, weight_kg, duration_sec FROM sets WHERE id = ?`, id).
		Scan(&exerciseID, &reps, &weightKg, &durationSec)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, storageErr("update set", err)
	}

	// Merge the patch over the stored values before validating: a patch that
	// leaves a field alone must not be able to smuggle in a mismatched one.
	mergedReps := patch.Reps
	if mergedReps == nil && reps.Valid {
		v := int(reps.Int64)
		mergedReps = &v
	}
	mergedWeight := patch.WeightKg
	if mergedWeight == nil && weightKg.Valid {
		mergedWeight = &weightKg.Float64
	}
	mergedDuration := patch.DurationSec
	if mergedDuration == nil && durationSec.Valid {
		v := int(durationSec.Int64)
		mergedDuration = &v
	}

	exercise, err := s.GetExercise(exerciseID)
	if err != nil {
		return 0, false, err
	}
	if exercise != nil {
		if err := validateMeasure(exercise, mergedReps, mergedWeight, mergedDuration); err != nil {
			return 0, false, err
		}
	}

	var sets []string
	var args []any
	if patch.Reps != nil {
		sets = append(sets, "reps = ?")
		args = append(args, *patch.Reps)
	}
	if patch.WeightKg != nil {
		sets = append(sets, "weight_kg = ?")
		args = append(args, *patch.WeightKg)
	}
	if patch.DurationSec != nil {
		sets = append(sets, "duration_sec = ?")
		args = append(args, *patch.DurationSec)
	}
	if patch.SetIndex != nil {
		if *patch.SetIndex <= 0 {
			return 0, false, &ValidationError{Field: "set_index", Reason: "must be 1 or greater"}
		}
		sets = append(sets, "set_index = ?")
		args = append(args, *patch.SetIndex)
	}
	if len(sets) == 0 {
		return exerciseID, true, nil
	}

	args = append(args, id)
	if _, err := s.db.Exec(`UPDATE sets SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return 0, false, storageErr("update set", err)
	}

	s.watcher.publish(TableSets)
	return exerciseID, true, nil
}

// DeleteSet removes a set and returns the exercise id it belonged to, the
// same PR-invalidation signal UpdateSet gives. Deleting a missing set is a
// no-op with found=false.
func (s *Store) DeleteSet(id int64) (int64, bool, error) {
	var exerciseID int64
	err := s.db.QueryRow(`SELECT exercise_id FROM sets WHERE id = ?`, id).Scan(&exerciseID)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, storageErr("delete set", err)
	}

	if _, err := s.db.Exec(`DELETE FROM sets WHERE id = ?`, id); err != nil {
		return 0, false, storageErr("delete set", err)
	}

	s.watcher.publish(TableSets)
	return exerciseID, true, nil
}

// GetSetsForWorkout returns a workout's sets ordered by set index ascending.
func (s *Store) GetSetsForWorkout(workoutID int64) ([]models.Set, error) {
	return s.querySets(`
		SELECT id, workout_id, exercise_id, set_index, reps, weight_kg, duration_sec
		FROM sets WHERE workout_id = ? ORDER BY set_index ASC, id ASC`, workoutID)
}

// GetSetsForExercise returns all sets for an exercise, unsorted. Callers
// group and sort as needed, e.g. by the owning workout's date.
func (s *Store) GetSetsForExercise(exerciseID int64) ([]models.Set, error) {
	return s.querySets(`
		SELECT id, workout_id, exercise_id, set_index, reps, weight_kg, duration_sec
		FROM sets WHERE exercise_id = ?`, exerciseID)
}

// CountSetsForExercise returns the number of sets referencing an exercise.
func (s *Store) CountSetsForExercise(exerciseID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sets WHERE exercise_id = ?`, exerciseID).Scan(&count)
	if err != nil {
		return 0, storageErr("count sets", err)
	}
	return count, nil
}

func (s *Store) querySets(query string, args ...any) ([]models.Set, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("list sets", err)
	}
	defer rows.Close()

	var sets []models.Set
	for rows.Next() {
		var set models.Set
		var reps, durationSec sql.NullInt64
		var weightKg sql.NullFloat64
		if err := rows.Scan(&set.ID, &set.WorkoutID, &set.ExerciseID, &set.SetIndex,
			&reps, &weightKg, &durationSec); err != nil {
			return nil, storageErr("scan set", err)
		}
		if reps.Valid {
			v := int(reps.Int64)
			set.Reps = &v
		}
		if weightKg.Valid {
			v := weightKg.Float64
			set.WeightKg = &v
		}
		if durationSec.Valid {
			v := int(durationSec.Int64)
			set.DurationSec = &v
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// validateMeasure checks a set's values against the owning exercise's
// measurement mode and load type.
func validateMeasure(exercise *models.Exercise, reps *int, weightKg *float64, durationSec *int) error {
	if exercise.IsTimed {
		if durationSec == nil {
			return &ValidationError{Field: "duration_sec", Reason: "required for a timed exercise"}
		}
		if reps != nil {
			return &ValidationError{Field: "reps", Reason: "not allowed for a timed exercise"}
		}
	} else {
		if reps == nil {
			return &ValidationError{Field: "reps", Reason: "required for a rep-based exercise"}
		}
		if durationSec != nil {
			return &ValidationError{Field: "duration_sec", Reason: "not allowed for a rep-based exercise"}
		}
	}
	if weightKg != nil && exercise.Type != models.ExerciseWeighted {
		return &ValidationError{Field: "weight_kg", Reason: "not allowed for a bodyweight exercise"}
	}
	return nil
}
