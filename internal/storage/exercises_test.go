// ABOUTME: Tests for exercise CRUD.
// ABOUTME: Covers validation, the timed-conversion guard, and the cascade delete.
package storage

import (
	"errors"
	"testing"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

func TestAddExercise(t *testing.T) {
	store := setupTestStore(t)

	id, err := store.AddExercise("Bench Press", models.ExerciseWeighted, false)
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}

	e, err := store.GetExercise(id)
	if err != nil {
		t.Fatalf("GetExercise failed: %v", err)
	}
	if e == nil {
		t.Fatal("expected exercise, got nil")
	}
	if e.Name != "Bench Press" {
		t.Errorf("name = %q, want Bench Press", e.Name)
	}
	if e.Type != models.ExerciseWeighted {
		t.Errorf("type = %q, want weighted", e.Type)
	}
	if e.IsTimed {
		t.Error("expected IsTimed false")
	}
	if e.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestAddExerciseTrimsName(t *testing.T) {
	store := setupTestStore(t)

	id, err := store.AddExercise("  Squat  ", models.ExerciseWeighted, false)
	if err != nil {
		t.Fatalf("AddExercise failed: %v", err)
	}

	e, _ := store.GetExercise(id)
	if e.Name != "Squat" {
		t.Errorf("name = %q, want trimmed Squat", e.Name)
	}
}

func TestAddExerciseValidation(t *testing.T) {
	store := setupTestStore(t)

	var verr *ValidationError

	if _, err := store.AddExercise("", models.ExerciseWeighted, false); !errors.As(err, &verr) {
		t.Errorf("empty name: expected ValidationError, got %v", err)
	}
	if _, err := store.AddExercise("   ", models.ExerciseWeighted, false); !errors.As(err, &verr) {
		t.Errorf("whitespace name: expected ValidationError, got %v", err)
	}
	if _, err := store.AddExercise("Curl", "cardio", false); !errors.As(err, &verr) {
		t.Errorf("unknown type: expected ValidationError, got %v", err)
	}
}

func TestGetExerciseMissing(t *testing.T) {
	store := setupTestStore(t)

	e, err := store.GetExercise(999)
	if err != nil {
		t.Fatalf("GetExercise failed: %v", err)
	}
	if e != nil {
		t.Errorf("expected nil for missing exercise, got %+v", e)
	}
}

func TestGetExerciseByName(t *testing.T) {
	store := setupTestStore(t)
	id := seedExercise(t, store, "Plank", models.ExerciseBodyweight, true)

	e, err := store.GetExerciseByName("Plank")
	if err != nil {
		t.Fatalf("GetExerciseByName failed: %v", err)
	}
	if e == nil || e.ID != id {
		t.Fatalf("expected exercise %d, got %+v", id, e)
	}
	if !e.IsTimed {
		t.Error("expected IsTimed true")
	}

	missing, err := store.GetExerciseByName("Deadlift")
	if err != nil {
		t.Fatalf("GetExerciseByName failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown name, got %+v", missing)
	}
}

func TestGetExercisesOrder(t *testing.T) {
	store := setupTestStore(t)
	seedExercise(t, store, "First", models.ExerciseWeighted, false)
	seedExercise(t, store, "Second", models.ExerciseBodyweight, false)
	seedExercise(t, store, "Third", models.ExerciseWeighted, false)

	exercises, err := store.GetExercises()
	if err != nil {
		t.Fatalf("GetExercises failed: %v", err)
	}
	if len(exercises) != 3 {
		t.Fatalf("expected 3 exercises, got %d", len(exercises))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if exercises[i].Name != want {
			t.Errorf("exercises[%d].Name = %q, want %q", i, exercises[i].Name, want)
		}
	}
}

func TestUpdateExerciseName(t *testing.T) {
	store := setupTestStore(t)
	id := seedExercise(t, store, "Bench", models.ExerciseWeighted, false)

	found, err := store.UpdateExerciseName(id, "Bench Press")
	if err != nil {
		t.Fatalf("UpdateExerciseName failed: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	e, _ := store.GetExercise(id)
	if e.Name != "Bench Press" {
		t.Errorf("name = %q, want Bench Press", e.Name)
	}

	found, err = store.UpdateExerciseName(999, "Ghost")
	if err != nil {
		t.Fatalf("UpdateExerciseName failed: %v", err)
	}
	if found {
		t.Error("expected found=false for missing exercise")
	}
}

func TestUpdateExerciseTimedBlockedBySets(t *testing.T) {
	store := setupTestStore(t)
	exerciseID := seedExercise(t, store, "Push-up", models.ExerciseBodyweight, false)
	workoutID := seedWorkout(t, store, "2026-08-30")
	seedSet(t, store, &models.Set{
		WorkoutID: workoutID, ExerciseID: exerciseID, SetIndex: 1, Reps: intPtr(20),
	})

	_, err := store.UpdateExerciseTimed(exerciseID, true)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.SetCount != 1 {
		t.Errorf("SetCount = %d, want 1", conflict.SetCount)
	}

	// The flag must be unchanged.
	e, _ := store.GetExercise(exerciseID)
	if e.IsTimed {
		t.Error("conversion should have been blocked")
	}
}

func TestUpdateExerciseTimedWithoutSets(t *testing.T) {
	store := setupTestStore(t)
	id := seedExercise(t, store, "Plank", models.ExerciseBodyweight, false)

	found, err := store.UpdateExerciseTimed(id, true)
	if err != nil {
		t.Fatalf("UpdateExerciseTimed failed: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	e, _ := store.GetExercise(id)
	if !e.IsTimed {
		t.Error("expected IsTimed true after conversion")
	}
}

func TestDeleteExerciseCascades(t *testing.T) {
	store := setupTestStore(t)
	exerciseID := seedExercise(t, store, "Squat", models.ExerciseWeighted, false)
	workoutID := seedWorkout(t, store, "2026-08-30")
	seedSet(t, store, &models.Set{
		WorkoutID: workoutID, ExerciseID: exerciseID, SetIndex: 1,
		Reps: intPtr(5), WeightKg: floatPtr(100),
	})
	if _, err := store.UpdatePRForExercise(exerciseID); err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}

	templateID, err := store.AddTemplate("Leg Day")
	if err != nil {
		t.Fatalf("AddTemplate failed: %v", err)
	}
	if _, err := store.AddTemplateItem(templateID, exerciseID); err != nil {
		t.Fatalf("AddTemplateItem failed: %v", err)
	}

	found, err := store.DeleteExercise(exerciseID)
	if err != nil {
		t.Fatalf("DeleteExercise failed: %v", err)
	}
	if !found {
		t.Fatal("expected found=true")
	}

	if e, _ := store.GetExercise(exerciseID); e != nil {
		t.Error("exercise should be gone")
	}
	if sets, _ := store.GetSetsForExercise(exerciseID); len(sets) != 0 {
		t.Errorf("expected 0 sets after cascade, got %d", len(sets))
	}
	if pr, _ := store.GetPR(exerciseID); pr != nil {
		t.Error("PR row should be gone")
	}
	template, _ := store.GetTemplateWithItems(templateID)
	if len(template.Items) != 0 {
		t.Errorf("expected 0 template items after cascade, got %d", len(template.Items))
	}

	// The workout itself survives.
	if w, _ := store.GetWorkout(workoutID); w == nil {
		t.Error("workout should survive exercise deletion")
	}
}

func TestDeleteExerciseMissing(t *testing.T) {
	store := setupTestStore(t)

	found, err := store.DeleteExercise(42)
	if err != nil {
		t.Fatalf("DeleteExercise failed: %v", err)
	}
	if found {
		t.Error("expected found=false for missing exercise")
	}
}
