// ABOUTME: PersonalRecord model, Epley 1RM estimate, and PR improvement report.
// ABOUTME: PRs are a derived cache recomputed from full set history, never hand-edited.
package models

import (
	"math"
	"time"
)

// Metric names used as keys in the improvements report.
const (
	PRBestWeight      = "best_weight"
	PRBestReps        = "best_reps"
	PRBestDurationSec = "best_duration_sec"
	PRBestOneRM       = "best_1rm"
)

// PersonalRecord caches the best-ever value of each metric for one exercise.
// A nil metric means no set has ever contributed a positive value to it.
type PersonalRecord struct {
	ExerciseID      int64     `json:"exercise_id" yaml:"exercise_id"`
	BestWeight      *float64  `json:"best_weight" yaml:"best_weight"`
	BestReps        *int      `json:"best_reps" yaml:"best_reps"`
	BestDurationSec *int      `json:"best_duration_sec" yaml:"best_duration_sec"`
	BestOneRM       *float64  `json:"best_1rm" yaml:"best_1rm"`
	UpdatedAt       time.Time `json:"updated_at" yaml:"updated_at"`
}

// Improvement records a metric that strictly increased during a recompute.
// Old is nil when there was no previous value to beat.
type Improvement struct {
	Old *float64 `json:"old"`
	New float64  `json:"new"`
}

// PRUpdate is the result of recomputing one exercise's record.
// A non-empty Improvements map is the signal to celebrate.
type PRUpdate struct {
	Current      *PersonalRecord        `json:"current"`
	Improvements map[string]Improvement `json:"improvements"`
}

// Improved reports whether any metric increased.
func (u *PRUpdate) Improved() bool {
	return u != nil && len(u.Improvements) > 0
}

// Epley1RM estimates a one-repetition maximum: weight * (1 + reps/30), rounded.
// Returns 0 when either input is missing; a 0 result means "not computable",
// never a literal record.
func Epley1RM(weightKg float64, reps int) float64 {
	if weightKg == 0 || reps == 0 {
		return 0
	}
	return math.Round(weightKg * (1 + float64(reps)/30))
}
