// ABOUTME: Tests for the PR engine.
// ABOUTME: Covers recompute-from-history, the improvement report, and recompute stability.
package storage

import (
	"testing"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

func TestUpdatePRFirstSet(t *testing.T) {
	store := setupTestStore(t)
	exerciseID := seedExercise(t, store, "Bench Press", models.ExerciseWeighted, false)
	workoutID := seedWorkout(t, store, "2026-08-30")
	seedSet(t, store, &models.Set{
		WorkoutID: workoutID, ExerciseID: exerciseID, SetIndex: 1,
		Reps: intPtr(5), WeightKg: floatPtr(100),
	})

	update, err := store.UpdatePRForExercise(exerciseID)
	if err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}
	if !update.Improved() {
		t.Fatal("first set should improve every contributing metric")
	}

	pr := update.Current
	if pr.BestWeight == nil || *pr.BestWeight != 100 {
		t.Errorf("best weight = %v, want 100", pr.BestWeight)
	}
	if pr.BestReps == nil || *pr.BestReps != 5 {
		t.Errorf("best reps = %v, want 5", pr.BestReps)
	}
	if pr.BestOneRM == nil || *pr.BestOneRM != 117 {
		t.Errorf("best 1RM = %v, want 117", pr.BestOneRM)
	}
	if pr.BestDurationSec != nil {
		t.Errorf("best duration = %v, want nil", pr.BestDurationSec)
	}

	// Every improvement on the first set has a nil old value.
	for metric, imp := range update.Improvements {
		if imp.Old != nil {
			t.Errorf("%s: old = %v, want nil", metric, *imp.Old)
		}
	}
}

func TestUpdatePRImprovementReport(t *testing.T) {
	store := setupTestStore(t)
	exerciseID := seedExercise(t, store, "Bench Press", models.ExerciseWeighted, false)
	workoutID := seedWorkout(t, store, "2026-08-30")

	// 100kg x 5: weight 100, reps 5, 1RM 117.
	seedSet(t, store, &models.Set{
		WorkoutID: workoutID, ExerciseID: exerciseID, SetIndex: 1,
		Reps: intPtr(5), WeightKg: floatPtr(100),
	})
	if _, err := store.UpdatePRForExercise(exerciseID); err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}

	// 110kg x 3: weight and 1RM improve, reps do not.
	seedSet(t, store, &models.Set{
		WorkoutID: workoutID, ExerciseID: exerciseID, SetIndex: 2,
		Reps: intPtr(3), WeightKg: floatPtr(110),
	})
	update, err := store.UpdatePRForExercise(exerciseID)
	if err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}

	if len(update.Improvements) != 2 {
		t.Fatalf("expected 2 improvements, got %d: %v", len(update.Improvements), update.Improvements)
	}

	weight, ok := update.Improvements[models.PRBestWeight]
	if !ok {
		t.Fatal("expected a best_weight improvement")
	}
	if weight.Old == nil || *weight.Old != 100 || weight.New != 110 {
		t.Errorf("best_weight = %+v, want old 100 new 110", weight)
	}

	oneRM, ok := update.Improvements[models.PRBestOneRM]
	if !ok {
		t.Fatal("expected a best_1rm improvement")
	}
	if oneRM.Old == nil || *oneRM.Old != 117 || oneRM.New != 121 {
		t.Errorf("best_1rm = %+v, want old 117 new 121", oneRM)
	}

	if _, ok := update.Improvements[models.PRBestReps]; ok {
		t.Error("reps did not improve, should not be reported")
	}

	// The persisted snapshot keeps the best of both sets.
	pr, _ := store.GetPR(exerciseID)
	if *pr.BestWeight != 110 || *pr.BestReps != 5 || *pr.BestOneRM != 121 {
		t.Errorf("persisted PR = %+v, want weight 110 reps 5 1rm 121", pr)
	}
}

func TestUpdatePRRecomputeIsStable(t *testing.T) {
	store := setupTestStore(t)
	exerciseID := seedExercise(t, store, "Bench Press", models.ExerciseWeighted, false)
	workoutID := seedWorkout(t, store, "2026-08-30")
	seedSet(t, store, &models.Set{
		WorkoutID: workoutID, ExerciseID: exerciseID, SetIndex: 1,
		Reps: intPtr(5), WeightKg: floatPtr(100),
	})

	if _, err := store.UpdatePRForExercise(exerciseID); err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}
	update, err := store.UpdatePRForExercise(exerciseID)
	if err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}
	if update.Improved() {
		t.Errorf("recompute over unchanged history reported improvements: %v", update.Improvements)
	}
}

func TestUpdatePRShrinksAfterSetDeletion(t *testing.T) {
	store := setupTestStore(t)
	exerciseID := seedExercise(t, store, "Bench Press", models.ExerciseWeighted, false)
	workoutID := seedWorkout(t, store, "2026-08-30")
	seedSet(t, store, &models.Set{
		WorkoutID: workoutID, ExerciseID: exerciseID, SetIndex: 1,
		Reps: intPtr(5), WeightKg: floatPtr(100),
	})
	heavy := seedSet(t, store, &models.Set{
		WorkoutID: workoutID, ExerciseID: exerciseID, SetIndex: 2,
		Reps: intPtr(1), WeightKg: floatPtr(140),
	})
	if _, err := store.UpdatePRForExercise(exerciseID); err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}

	// Removing the heavy single and recomputing drops the record back down.
	if _, _, err := store.DeleteSet(heavy); err != nil {
		t.Fatalf("DeleteSet failed: %v", err)
	}
	update, err := store.UpdatePRForExercise(exerciseID)
	if err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}
	if update.Improved() {
		t.Error("shrinking history should not report improvements")
	}
	if *update.Current.BestWeight != 100 {
		t.Errorf("best weight = %g, want 100 after deletion", *update.Current.BestWeight)
	}
}

func TestUpdatePRTimedExercise(t *testing.T) {
	store := setupTestStore(t)
	exerciseID := seedExercise(t, store, "Plank", models.ExerciseBodyweight, true)
	workoutID := seedWorkout(t, store, "2026-08-30")
	seedSet(t, store, &models.Set{
		WorkoutID: workoutID, ExerciseID: exerciseID, SetIndex: 1, DurationSec: intPtr(90),
	})

	update, err := store.UpdatePRForExercise(exerciseID)
	if err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}

	pr := update.Current
	if pr.BestDurationSec == nil || *pr.BestDurationSec != 90 {
		t.Errorf("best duration = %v, want 90", pr.BestDurationSec)
	}
	if pr.BestWeight != nil || pr.BestReps != nil || pr.BestOneRM != nil {
		t.Errorf("timed PR should only carry duration, got %+v", pr)
	}
}

func TestUpdatePRIgnoresZeroValues(t *testing.T) {
	store := setupTestStore(t)
	exerciseID := seedExercise(t, store, "Push-up", models.ExerciseBodyweight, false)
	workoutID := seedWorkout(t, store, "2026-08-30")

	// Template placeholders log zero reps; they must not become records.
	seedSet(t, store, &models.Set{
		WorkoutID: workoutID, ExerciseID: exerciseID, SetIndex: 1, Reps: intPtr(0),
	})

	update, err := store.UpdatePRForExercise(exerciseID)
	if err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}
	if update.Improved() {
		t.Error("zero-valued set should not improve anything")
	}
	if update.Current.BestReps != nil {
		t.Errorf("best reps = %v, want nil", update.Current.BestReps)
	}
}

func TestUpdatePRDeletedExercise(t *testing.T) {
	store := setupTestStore(t)

	update, err := store.UpdatePRForExercise(999)
	if err != nil {
		t.Fatalf("UpdatePRForExercise failed: %v", err)
	}
	if update != nil {
		t.Errorf("expected nil update for missing exercise, got %+v", update)
	}
}

func TestRecalcAllPRs(t *testing.T) {
	store := setupTestStore(t)
	bench := seedExercise(t, store, "Bench Press", models.ExerciseWeighted, false)
	plank := seedExercise(t, store, "Plank", models.ExerciseBodyweight, true)
	workoutID := seedWorkout(t, store, "2026-08-30")
	seedSet(t, store, &models.Set{WorkoutID: workoutID, ExerciseID: bench, SetIndex: 1, Reps: intPtr(5), WeightKg: floatPtr(100)})
	seedSet(t, store, &models.Set{WorkoutID: workoutID, ExerciseID: plank, SetIndex: 1, DurationSec: intPtr(60)})

	n, err := store.RecalcAllPRs()
	if err != nil {
		t.Fatalf("RecalcAllPRs failed: %v", err)
	}
	if n != 2 {
		t.Errorf("recalculated %d exercises, want 2", n)
	}

	prs, err := store.GetPRs()
	if err != nil {
		t.Fatalf("GetPRs failed: %v", err)
	}
	if len(prs) != 2 {
		t.Errorf("expected 2 PR rows, got %d", len(prs))
	}
}

func TestGetPRMissing(t *testing.T) {
	store := setupTestStore(t)

	pr, err := store.GetPR(999)
	if err != nil {
		t.Fatalf("GetPR failed: %v", err)
	}
	if pr != nil {
		t.Errorf("expected nil for missing PR, got %+v", pr)
	}
}
