// ABOUTME: Workout and Set models for daily training sessions.
// ABOUTME: One workout per calendar date; sets belong to a workout and an exercise.
package models

import (
	"fmt"
	"time"
)

// Workout represents one day of training. There is never more than one
// workout row per date.
type Workout struct {
	ID          int64   `json:"id" yaml:"id"`
	Date        string  `json:"date" yaml:"date"` // YYYY-MM-DD
	Notes       *string `json:"notes,omitempty" yaml:"notes,omitempty"`
	Title       *string `json:"title,omitempty" yaml:"title,omitempty"`
	DurationSec *int    `json:"duration_sec,omitempty" yaml:"duration_sec,omitempty"`
	Mood        *int    `json:"mood,omitempty" yaml:"mood,omitempty"` // 1-5
}

// WorkoutMetaPatch is a partial update for workout metadata.
// Nil fields are left untouched.
type WorkoutMetaPatch struct {
	Title       *string
	Notes       *string
	DurationSec *int
	Mood        *int
}

// NormalizeDate truncates a date-time string to its date part and validates it.
// Accepts "2024-03-05" or anything starting with it (e.g. an RFC 3339 timestamp).
func NormalizeDate(dateISO string) (string, error) {
	if len(dateISO) > 10 {
		dateISO = dateISO[:10]
	}
	if _, err := time.Parse("2006-01-02", dateISO); err != nil {
		return "", fmt.Errorf("invalid date %q (use YYYY-MM-DD)", dateISO)
	}
	return dateISO, nil
}

// Set represents a single set within a workout. Exactly one of Reps and
// DurationSec is populated, according to the owning exercise's IsTimed flag.
// WeightKg is populated only for weighted exercises.
type Set struct {
	ID          int64    `json:"id" yaml:"id"`
	WorkoutID   int64    `json:"workout_id" yaml:"workout_id"`
	ExerciseID  int64    `json:"exercise_id" yaml:"exercise_id"`
	SetIndex    int      `json:"set_index" yaml:"set_index"` // 1-based within (workout, exercise)
	Reps        *int     `json:"reps" yaml:"reps"`
	WeightKg    *float64 `json:"weight_kg" yaml:"weight_kg"`
	DurationSec *int     `json:"duration_sec" yaml:"duration_sec"`
}

// SetPatch is a partial update for a set. Nil fields are left untouched.
// Fields outside this struct cannot be changed after insert.
type SetPatch struct {
	Reps        *int
	WeightKg    *float64
	DurationSec *int
	SetIndex    *int
}
