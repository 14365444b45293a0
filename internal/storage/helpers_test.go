// ABOUTME: Shared test fixtures for the storage package.
// ABOUTME: Fresh on-disk store per test plus pointer and seeding helpers.
package storage

import (
	"path/filepath"
	"testing"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

// setupTestStore creates a fresh store in a temp directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

// seedExercise inserts an exercise and returns its id.
func seedExercise(t *testing.T, s *Store, name string, typ models.ExerciseType, isTimed bool) int64 {
	t.Helper()
	id, err := s.AddExercise(name, typ, isTimed)
	if err != nil {
		t.Fatalf("seed exercise %s: %v", name, err)
	}
	return id
}

// seedWorkout creates (or finds) the workout for a date and returns its id.
func seedWorkout(t *testing.T, s *Store, date string) int64 {
	t.Helper()
	id, err := s.CreateWorkout(date, "")
	if err != nil {
		t.Fatalf("seed workout %s: %v", date, err)
	}
	return id
}

// seedSet inserts a set and returns its id.
func seedSet(t *testing.T, s *Store, set *models.Set) int64 {
	t.Helper()
	id, err := s.AddSet(set)
	if err != nil {
		t.Fatalf("seed set: %v", err)
	}
	return id
}
