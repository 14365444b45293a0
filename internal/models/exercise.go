// ABOUTME: Exercise model and ExerciseType enum for the workout log.
// ABOUTME: An exercise is either weighted or bodyweight, and rep-based or timed.
package models

import (
	"strings"
	"time"
)

// ExerciseType says how load is recorded for an exercise.
type ExerciseType string

const (
	// ExerciseWeighted exercises carry an external load (barbell, dumbbell, machine).
	ExerciseWeighted ExerciseType = "weighted"
	// ExerciseBodyweight exercises are loaded by bodyweight only.
	ExerciseBodyweight ExerciseType = "bodyweight"
)

// AllExerciseTypes lists the valid exercise types.
var AllExerciseTypes = []ExerciseType{ExerciseWeighted, ExerciseBodyweight}

// IsValidExerciseType checks if a string is a valid exercise type.
func IsValidExerciseType(s string) bool {
	for _, t := range AllExerciseTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// Exercise represents a movement the user tracks over time.
// IsTimed selects the measurement mode: timed exercises record duration,
// everything else records reps. The flag is frozen once sets exist.
type Exercise struct {
	ID        int64        `json:"id" yaml:"id"`
	Name      string       `json:"name" yaml:"name"`
	Type      ExerciseType `json:"type" yaml:"type"`
	IsTimed   bool         `json:"is_timed" yaml:"is_timed"`
	CreatedAt time.Time    `json:"created_at" yaml:"created_at"`
}

// NewExercise creates an Exercise with a trimmed name and current timestamp.
// The ID is assigned by storage on insert.
func NewExercise(name string, typ ExerciseType, isTimed bool) *Exercise {
	return &Exercise{
		Name:      strings.TrimSpace(name),
		Type:      typ,
		IsTimed:   isTimed,
		CreatedAt: time.Now(),
	}
}
