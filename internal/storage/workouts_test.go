// ABOUTME: Tests for workout CRUD.
// ABOUTME: Covers get-or-create idempotence, partial meta patches, and cascade delete.
package storage

import (
	"errors"
	"testing"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

func TestCreateWorkoutIdempotent(t *testing.T) {
	store := setupTestStore(t)

	first, err := store.CreateWorkout("2026-08-30", "morning session")
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	second, err := store.CreateWorkout("2026-08-30", "different notes")
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	if first != second {
		t.Errorf("same date produced two workouts: %d and %d", first, second)
	}

	// Existing notes are left alone on the repeat call.
	w, _ := store.GetWorkout(first)
	if w.Notes == nil || *w.Notes != "morning session" {
		t.Errorf("notes = %v, want original notes", w.Notes)
	}
}

func TestCreateWorkoutNormalizesTimestamp(t *testing.T) {
	store := setupTestStore(t)

	id, err := store.CreateWorkout("2026-08-30T18:45:00Z", "")
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}

	w, _ := store.GetWorkout(id)
	if w.Date != "2026-08-30" {
		t.Errorf("date = %q, want 2026-08-30", w.Date)
	}

	// The timestamp and the plain date hit the same row.
	sameDay, err := store.CreateWorkout("2026-08-30", "")
	if err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	if sameDay != id {
		t.Errorf("timestamp and date produced two workouts: %d and %d", id, sameDay)
	}
}

func TestCreateWorkoutInvalidDate(t *testing.T) {
	store := setupTestStore(t)

	var verr *ValidationError
	if _, err := store.CreateWorkout("yesterday", ""); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

func TestCreateWorkoutEmptyNotesStoredAsNull(t *testing.T) {
	store := setupTestStore(t)

	id, _ := store.CreateWorkout("2026-08-30", "")
	w, _ := store.GetWorkout(id)
	if w.Notes != nil {
		t.Errorf("expected nil notes, got %q", *w.Notes)
	}
}

func TestGetWorkoutsByDate(t *testing.T) {
	store := setupTestStore(t)
	seedWorkout(t, store, "2026-08-30")

	workouts, err := store.GetWorkoutsByDate("2026-08-30")
	if err != nil {
		t.Fatalf("GetWorkoutsByDate failed: %v", err)
	}
	if len(workouts) != 1 {
		t.Fatalf("expected 1 workout, got %d", len(workouts))
	}

	empty, err := store.GetWorkoutsByDate("2026-08-31")
	if err != nil {
		t.Fatalf("GetWorkoutsByDate failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected 0 workouts, got %d", len(empty))
	}
}

func TestGetWorkoutsOrderedByDate(t *testing.T) {
	store := setupTestStore(t)
	seedWorkout(t, store, "2026-08-30")
	seedWorkout(t, store, "2026-08-28")
	seedWorkout(t, store, "2026-08-29")

	workouts, err := store.GetWorkouts()
	if err != nil {
		t.Fatalf("GetWorkouts failed: %v", err)
	}
	if len(workouts) != 3 {
		t.Fatalf("expected 3 workouts, got %d", len(workouts))
	}
	for i, want := range []string{"2026-08-28", "2026-08-29", "2026-08-30"} {
		if workouts[i].Date != want {
			t.Errorf("workouts[%d].Date = %q, want %q", i, workouts[i].Date, want)
		}
	}
}

func TestUpdateWorkoutMetaPartialPatch(t *testing.T) {
	store := setupTestStore(t)
	id := seedWorkout(t, store, "2026-08-30")

	found, err := store.UpdateWorkoutMeta(id, models.WorkoutMetaPatch{
		Title: strPtr("Push Day"),
		Mood:  intPtr(4),
	})
	if err != nil {
		t.Fatalf("UpdateWorkoutMeta failed: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	// A second patch touching only duration leaves title and mood alone.
	if _, err := store.UpdateWorkoutMeta(id, models.WorkoutMetaPatch{
		DurationSec: intPtr(3600),
	}); err != nil {
		t.Fatalf("UpdateWorkoutMeta failed: %v", err)
	}

	w, _ := store.GetWorkout(id)
	if w.Title == nil || *w.Title != "Push Day" {
		t.Errorf("title = %v, want Push Day", w.Title)
	}
	if w.Mood == nil || *w.Mood != 4 {
		t.Errorf("mood = %v, want 4", w.Mood)
	}
	if w.DurationSec == nil || *w.DurationSec != 3600 {
		t.Errorf("duration = %v, want 3600", w.DurationSec)
	}
}

func TestUpdateWorkoutMetaMoodRange(t *testing.T) {
	store := setupTestStore(t)
	id := seedWorkout(t, store, "2026-08-30")

	var verr *ValidationError
	if _, err := store.UpdateWorkoutMeta(id, models.WorkoutMetaPatch{Mood: intPtr(0)}); !errors.As(err, &verr) {
		t.Errorf("mood 0: expected ValidationError, got %v", err)
	}
	if _, err := store.UpdateWorkoutMeta(id, models.WorkoutMetaPatch{Mood: intPtr(6)}); !errors.As(err, &verr) {
		t.Errorf("mood 6: expected ValidationError, got %v", err)
	}
}

func TestUpdateWorkoutMetaEmptyPatch(t *testing.T) {
	store := setupTestStore(t)
	id := seedWorkout(t, store, "2026-08-30")

	found, err := store.UpdateWorkoutMeta(id, models.WorkoutMetaPatch{})
	if err != nil {
		t.Fatalf("UpdateWorkoutMeta failed: %v", err)
	}
	if found {
		t.Error("empty patch should report found=false")
	}
}

func TestUpdateWorkoutMetaMissing(t *testing.T) {
	store := setupTestStore(t)

	found, err := store.UpdateWorkoutMeta(999, models.WorkoutMetaPatch{Title: strPtr("Ghost")})
	if err != nil {
		t.Fatalf("UpdateWorkoutMeta failed: %v", err)
	}
	if found {
		t.Error("expected found=false for missing workout")
	}
}

func TestDeleteWorkout(t *testing.T) {
	store := setupTestStore(t)
	bench := seedExercise(t, store, "Bench Press", models.ExerciseWeighted, false)
	squat := seedExercise(t, store, "Squat", models.ExerciseWeighted, false)
	workoutID := seedWorkout(t, store, "2026-08-30")
	seedSet(t, store, &models.Set{WorkoutID: workoutID, ExerciseID: bench, SetIndex: 1, Reps: intPtr(5), WeightKg: floatPtr(100)})
	seedSet(t, store, &models.Set{WorkoutID: workoutID, ExerciseID: bench, SetIndex: 2, Reps: intPtr(5), WeightKg: floatPtr(100)})
	seedSet(t, store, &models.Set{WorkoutID: workoutID, ExerciseID: squat, SetIndex: 1, Reps: intPtr(8), WeightKg: floatPtr(120)})

	exerciseIDs, found, err := store.DeleteWorkout(workoutID)
	if err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}
	if len(exerciseIDs) != 2 {
		t.Errorf("expected 2 affected exercises, got %d", len(exerciseIDs))
	}

	if w, _ := store.GetWorkout(workoutID); w != nil {
		t.Error("workout should be gone")
	}
	if sets, _ := store.GetSetsForWorkout(workoutID); len(sets) != 0 {
		t.Errorf("expected 0 sets after delete, got %d", len(sets))
	}
}

func TestDeleteWorkoutMissing(t *testing.T) {
	store := setupTestStore(t)

	_, found, err := store.DeleteWorkout(999)
	if err != nil {
		t.Fatalf("DeleteWorkout failed: %v", err)
	}
	if found {
		t.Error("expected found=false for missing workout")
	}
}
