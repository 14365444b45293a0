// ABOUTME: Repository interface for the workout store.
// ABOUTME: The complete surface exposed to the CLI and MCP layers.
package storage

import (
	"github.com/oscarrlundin/workout-tracker/internal/models"
)

// Repository defines the storage contract for workout data. *Store is the
// SQLite implementation; the interface exists so the MCP and CLI layers can
// be tested against fakes.
type Repository interface {
	// Exercises
	AddExercise(name string, typ models.ExerciseType, isTimed bool) (int64, error)
	GetExercise(id int64) (*models.Exercise, error)
	GetExerciseByName(name string) (*models.Exercise, error)
	GetExercises() ([]models.Exercise, error)
	UpdateExerciseName(id int64, name string) (bool, error)
	UpdateExerciseTimed(id int64, isTimed bool) (bool, error)
	DeleteExercise(id int64) (bool, error)

	// Workouts
	CreateWorkout(dateISO, notes string) (int64, error)
	GetWorkout(id int64) (*models.Workout, error)
	GetWorkoutsByDate(dateISO string) ([]models.Workout, error)
	GetWorkouts() ([]models.Workout, error)
	UpdateWorkoutMeta(id int64, patch models.WorkoutMetaPatch) (bool, error)
	DeleteWorkout(id int64) ([]int64, bool, error)

	// Sets
	AddSet(set *models.Set) (int64, error)
	UpdateSet(id int64, patch models.SetPatch) (int64, bool, error)
	DeleteSet(id int64) (int64, bool, error)
	GetSetsForWorkout(workoutID int64) ([]models.Set, error)
	GetSetsForExercise(exerciseID int64) ([]models.Set, error)
	CountSetsForExercise(exerciseID int64) (int, error)

	// Personal records
	UpdatePRForExercise(exerciseID int64) (*models.PRUpdate, error)
	GetPR(exerciseID int64) (*models.PersonalRecord, error)
	GetPRs() ([]models.PersonalRecord, error)
	RecalcAllPRs() (int, error)

	// Templates
	AddTemplate(name string) (int64, error)
	RenameTemplate(id int64, name string) (bool, error)
	DeleteTemplate(id int64) (bool, error)
	GetTemplates() ([]models.Template, error)
	GetTemplateWithItems(id int64) (*models.Template, error)
	AddTemplateItem(templateID, exerciseID int64) (int64, error)
	UpdateTemplateItem(id int64, patch models.TemplateItemPatch) (bool, error)
	DeleteTemplateItem(id int64) (bool, error)
	ApplyTemplate(templateID int64, dateISO string) (int64, []int64, error)

	// Backup/restore
	ExportAll() (*Backup, error)
	ImportAll(b *Backup, mode ImportMode) error

	// Reactivity and lifecycle
	Watcher() *Watcher
	Close() error
}

var _ Repository = (*Store)(nil)
