// ABOUTME: Tests for the Epley 1RM estimate and PR update helpers.
// ABOUTME: Covers rounding, zero inputs, and the improvement signal.
package models

import "testing"

func TestEpley1RM(t *testing.T) {
	tests := []struct {
		name     string
		weightKg float64
		reps     int
		want     float64
	}{
		{"100kg x 5", 100, 5, 117},
		{"110kg x 3", 110, 3, 121},
		{"100kg x 1", 100, 1, 103},
		{"60kg x 10", 60, 10, 80},
		{"rounds to nearest", 50, 7, 62}, // 50 * (1 + 7/30) = 61.67
		{"zero weight", 0, 5, 0},
		{"zero reps", 100, 0, 0},
		{"both zero", 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Epley1RM(tt.weightKg, tt.reps); got != tt.want {
				t.Errorf("Epley1RM(%g, %d) = %g, want %g", tt.weightKg, tt.reps, got, tt.want)
			}
		})
	}
}

func TestPRUpdateImproved(t *testing.T) {
	var nilUpdate *PRUpdate
	if nilUpdate.Improved() {
		t.Error("nil update should not report improvement")
	}

	empty := &PRUpdate{Improvements: map[string]Improvement{}}
	if empty.Improved() {
		t.Error("empty improvements should not report improvement")
	}

	improved := &PRUpdate{Improvements: map[string]Improvement{
		PRBestWeight: {Old: nil, New: 100},
	}}
	if !improved.Improved() {
		t.Error("non-empty improvements should report improvement")
	}
}
