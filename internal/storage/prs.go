// ABOUTME: PR engine: recomputes best-ever records from full set history.
// ABOUTME: Full rebuild per exercise avoids drift from missed incremental updates.
package storage

import (
	"database/sql"
	"time"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

// UpdatePRForExercise recomputes the cached record for one exercise from its
// complete set history, persists the new snapshot, and reports which metrics
// strictly improved. A deleted exercise yields (nil, nil): deletion races
// with reactive updates are expected, not errors.
func (s *Store) UpdatePRForExercise(exerciseID int64) (*models.PRUpdate, error) {
	exercise, err := s.GetExercise(exerciseID)
	if err != nil {
		return nil, err
	}
	if exercise == nil {
		return nil, nil
	}

	sets, err := s.GetSetsForExercise(exerciseID)
	if err != nil {
		return nil, err
	}
	previous, err := s.GetPR(exerciseID)
	if err != nil {
		return nil, err
	}

	current := computePR(exerciseID, sets)
	improvements := diffPR(previous, current)

	if err := s.upsertPR(current); err != nil {
		return nil, err
	}

	s.watcher.publish(TablePRs)
	return &models.PRUpdate{Current: current, Improvements: improvements}, nil
}

// GetPR retrieves the cached record for an exercise, or nil when none exists.
func (s *Store) GetPR(exerciseID int64) (*models.PersonalRecord, error) {
	row := s.db.QueryRow(`
		SELECT exercise_id, best_weight, best_reps, best_duration_sec, best_1rm, updated_at
		FROM personal_records WHERE exercise_id = ?`, exerciseID)

	pr, err := scanPR(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get pr", err)
	}
	return pr, nil
}

// GetPRs returns all cached records, ordered by exercise id.
func (s *Store) GetPRs() ([]models.PersonalRecord, error) {
	rows, err := s.db.Query(`
		SELECT exercise_id, best_weight, best_reps, best_duration_sec, best_1rm, updated_at
		FROM personal_records ORDER BY exercise_id ASC`)
	if err != nil {
		return nil, storageErr("list prs", err)
	}
	defer rows.Close()

	var prs []models.PersonalRecord
	for rows.Next() {
		pr, err := scanPR(rows.Scan)
		if err != nil {
			return nil, storageErr("scan pr", err)
		}
		prs = append(prs, *pr)
	}
	return prs, rows.Err()
}

// RecalcAllPRs rebuilds the record cache for every exercise and returns how
// many were recomputed. Used after an import and by the recalc command so
// the cache is never stale relative to the authoritative set history. This
// is a full O(exercises x sets) pass, fine at personal data volumes.
func (s *Store) RecalcAllPRs() (int, error) {
	exercises, err := s.GetExercises()
	if err != nil {
		return 0, err
	}
	for _, e := range exercises {
		if _, err := s.UpdatePRForExercise(e.ID); err != nil {
			return 0, err
		}
	}
	return len(exercises), nil
}

// computePR derives the four maxima from a set collection. Each metric is
// nil unless some set contributes a value greater than zero.
func computePR(exerciseID int64, sets []models.Set) *models.PersonalRecord {
	pr := &models.PersonalRecord{ExerciseID: exerciseID, UpdatedAt: time.Now()}

	for _, set := range sets {
		if set.WeightKg != nil && *set.WeightKg > 0 {
			if pr.BestWeight == nil || *set.WeightKg > *pr.BestWeight {
				v := *set.WeightKg
				pr.BestWeight = &v
			}
		}
		if set.Reps != nil && *set.Reps > 0 {
			if pr.BestReps == nil || *set.Reps > *pr.BestReps {
				v := *set.Reps
				pr.BestReps = &v
			}
		}
		if set.DurationSec != nil && *set.DurationSec > 0 {
			if pr.BestDurationSec == nil || *set.DurationSec > *pr.BestDurationSec {
				v := *set.DurationSec
				pr.BestDurationSec = &v
			}
		}
		if set.WeightKg != nil && set.Reps != nil {
			if oneRM := models.Epley1RM(*set.WeightKg, *set.Reps); oneRM > 0 {
				if pr.BestOneRM == nil || oneRM > *pr.BestOneRM {
					v := oneRM
					pr.BestOneRM = &v
				}
			}
		}
	}

	return pr
}

// diffPR builds the improvement report: one entry per metric whose new value
// is strictly greater than the previous one. With no previous snapshot (or a
// previously-nil metric) the old value is reported as nil and any positive
// new value counts as improved.
func diffPR(previous, current *models.PersonalRecord) map[string]models.Improvement {
	improvements := make(map[string]models.Improvement)

	compare := func(metric string, old, new *float64) {
		if new == nil {
			return
		}
		if old == nil {
			improvements[metric] = models.Improvement{Old: nil, New: *new}
			return
		}
		if *new > *old {
			v := *old
			improvements[metric] = models.Improvement{Old: &v, New: *new}
		}
	}

	var oldWeight, oldReps, oldDuration, oldOneRM *float64
	if previous != nil {
		oldWeight = previous.BestWeight
		oldReps = intToFloat(previous.BestReps)
		oldDuration = intToFloat(previous.BestDurationSec)
		oldOneRM = previous.BestOneRM
	}

	compare(models.PRBestWeight, oldWeight, current.BestWeight)
	compare(models.PRBestReps, oldReps, intToFloat(current.BestReps))
	compare(models.PRBestDurationSec, oldDuration, intToFloat(current.BestDurationSec))
	compare(models.PRBestOneRM, oldOneRM, current.BestOneRM)

	return improvements
}

// upsertPR persists a snapshot, replacing any previous row for the exercise.
func (s *Store) upsertPR(pr *models.PersonalRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO personal_records (exercise_id, best_weight, best_reps, best_duration_sec, best_1rm, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(exercise_id) DO UPDATE SET
			best_weight = excluded.best_weight,
			best_reps = excluded.best_reps,
			best_duration_sec = excluded.best_duration_sec,
			best_1rm = excluded.best_1rm,
			updated_at = excluded.updated_at`,
		pr.ExerciseID, pr.BestWeight, pr.BestReps, pr.BestDurationSec, pr.BestOneRM,
		pr.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return storageErr("upsert pr", err)
	}
	return nil
}

func scanPR(scan func(...any) error) (*models.PersonalRecord, error) {
	var pr models.PersonalRecord
	var bestWeight, bestOneRM sql.NullFloat64
	var bestReps, bestDurationSec sql.NullInt64
	var updatedAt string
	err := scan(&pr.ExerciseID, &bestWeight, &bestReps, &bestDurationSec, &bestOneRM, &updatedAt)
	if err != nil {
		return nil, err
	}
	if bestWeight.Valid {
		pr.BestWeight = &bestWeight.Float64
	}
	if bestReps.Valid {
		v := int(bestReps.Int64)
		pr.BestReps = &v
	}
	if bestDurationSec.Valid {
		v := int(bestDurationSec.Int64)
		pr.BestDurationSec = &v
	}
	if bestOneRM.Valid {
		pr.BestOneRM = &bestOneRM.Float64
	}
	pr.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &pr, nil
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
