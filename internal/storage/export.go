// ABOUTME: Backup and restore for the workout store.
// ABOUTME: Snapshot every table into one envelope; restore in replace or merge mode.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

// ImportMode selects how a restore treats existing data.
type ImportMode string

const (
	// ImportReplace wipes every table before loading the backup verbatim.
	ImportReplace ImportMode = "replace"
	// ImportMerge upserts backup rows into the existing tables by id.
	// Colliding ids from another device silently overwrite; callers warn
	// the user before choosing this mode.
	ImportMerge ImportMode = "merge"
)

// Backup is the portable envelope holding a full snapshot of the store.
// Rows keep their original numeric ids, which is what keeps cross-table
// foreign keys valid after a restore.
type Backup struct {
	SchemaVersion int           `json:"schema_version" yaml:"schema_version"`
	BackupID      uuid.UUID     `json:"backup_id" yaml:"backup_id"`
	ExportedAt    time.Time     `json:"exported_at" yaml:"exported_at"`
	Tool          string        `json:"tool" yaml:"tool"`
	Tables        *BackupTables `json:"tables" yaml:"tables"`
}

// BackupTables holds one array per table, in dependency order.
type BackupTables struct {
	Exercises     []models.Exercise       `json:"exercises" yaml:"exercises"`
	Workouts      []models.Workout        `json:"workouts" yaml:"workouts"`
	Sets          []models.Set            `json:"sets" yaml:"sets"`
	PRs           []models.PersonalRecord `json:"prs" yaml:"prs"`
	Templates     []models.Template       `json:"templates" yaml:"templates"`
	TemplateItems []models.TemplateItem   `json:"template_items" yaml:"template_items"`
}

// ExportAll snapshots every table inside a single read transaction, so the
// result is internally consistent even while writes happen elsewhere.
func (s *Store) ExportAll() (*Backup, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, storageErr("export", err)
	}
	defer tx.Rollback()

	tables := &BackupTables{}

	tables.Exercises, err = exportExercises(tx)
	if err != nil {
		return nil, storageErr("export", err)
	}
	tables.Workouts, err = exportWorkouts(tx)
	if err != nil {
		return nil, storageErr("export", err)
	}
	tables.Sets, err = exportSets(tx)
	if err != nil {
		return nil, storageErr("export", err)
	}
	tables.PRs, err = exportPRs(tx)
	if err != nil {
		return nil, storageErr("export", err)
	}
	tables.Templates, err = exportTemplates(tx)
	if err != nil {
		return nil, storageErr("export", err)
	}
	tables.TemplateItems, err = exportTemplateItems(tx)
	if err != nil {
		return nil, storageErr("export", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr("export", err)
	}

	return &Backup{
		SchemaVersion: SchemaVersion,
		BackupID:      uuid.New(),
		ExportedAt:    time.Now(),
		Tool:          "workout-tracker",
		Tables:        tables,
	}, nil
}

// ImportAll restores a backup. Replace clears all tables first and inserts
// every row verbatim; merge upserts rows into the existing tables by id.
// Both run in one transaction and finish with a full PR rebuild: imported
// PR rows are provisional, the recompute is the source of truth.
func (s *Store) ImportAll(b *Backup, mode ImportMode) error {
	if b == nil || b.Tables == nil {
		return &ValidationError{Field: "tables", Reason: "backup has no tables"}
	}
	if mode != ImportReplace && mode != ImportMerge {
		return &ValidationError{Field: "mode", Reason: fmt.Sprintf("unknown import mode %q", mode)}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return storageErr("import", err)
	}
	defer tx.Rollback()

	if mode == ImportReplace {
		for _, table := range []string{
			"template_items", "templates", "personal_records", "sets", "workouts", "exercises",
		} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				return storageErr("import", err)
			}
		}
	}

	verb := `INSERT INTO `
	if mode == ImportMerge {
		verb = `INSERT OR REPLACE INTO `
	}

	for _, e := range b.Tables.Exercises {
		if _, err := tx.Exec(verb+`exercises (id, name, type, is_timed, created_at) VALUES (?, ?, ?, ?, ?)`,
			e.ID, e.Name, string(e.Type), e.IsTimed, e.CreatedAt.Format(time.RFC3339)); err != nil {
			return storageErr("import exercises", err)
		}
	}
	for _, w := range b.Tables.Workouts {
		if _, err := tx.Exec(verb+`workouts (id, date, notes, title, duration_sec, mood) VALUES (?, ?, ?, ?, ?, ?)`,
			w.ID, w.Date, w.Notes, w.Title, w.DurationSec, w.Mood); err != nil {
			return storageErr("import workouts", err)
		}
	}
	for _, set := range b.Tables.Sets {
		if _, err := tx.Exec(verb+`sets (id, workout_id, exercise_id, set_index, reps, weight_kg, duration_sec) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			set.ID, set.WorkoutID, set.ExerciseID, set.SetIndex, set.Reps, set.WeightKg, set.DurationSec); err != nil {
			return storageErr("import sets", err)
		}
	}
	for _, pr := range b.Tables.PRs {
		if _, err := tx.Exec(verb+`personal_records (exercise_id, best_weight, best_reps, best_duration_sec, best_1rm, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			pr.ExerciseID, pr.BestWeight, pr.BestReps, pr.BestDurationSec, pr.BestOneRM, pr.UpdatedAt.Format(time.RFC3339)); err != nil {
			return storageErr("import prs", err)
		}
	}
	for _, t := range b.Tables.Templates {
		if _, err := tx.Exec(verb+`templates (id, name, created_at) VALUES (?, ?, ?)`,
			t.ID, t.Name, t.CreatedAt.Format(time.RFC3339)); err != nil {
			return storageErr("import templates", err)
		}
	}
	for _, item := range b.Tables.TemplateItems {
		if _, err := tx.Exec(verb+`template_items (id, template_id, exercise_id, position, default_sets, default_reps, default_duration_sec, default_weight_kg) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ID, item.TemplateID, item.ExerciseID, item.Position,
			item.DefaultSets, item.DefaultReps, item.DefaultDurationSec, item.DefaultWeightKg); err != nil {
			return storageErr("import template items", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("import", err)
	}

	// The import is durable once the transaction commits, so subscribers
	// hear about it even if the recalc below fails.
	s.watcher.publish(AllTables...)

	// The restored set history is now authoritative; rebuild the PR cache
	// so it can never be stale relative to what was just loaded.
	if _, err := s.RecalcAllPRs(); err != nil {
		return err
	}
	return nil
}

// ExportJSON serializes a full backup as indented JSON.
func (s *Store) ExportJSON() ([]byte, error) {
	b, err := s.ExportAll()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(b, "", "  ")
}

// ImportJSON restores from JSON bytes in the given mode.
func (s *Store) ImportJSON(data []byte, mode ImportMode) error {
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return &ValidationError{Field: "backup", Reason: fmt.Sprintf("unmarshal JSON: %v", err)}
	}
	return s.ImportAll(&b, mode)
}

// ExportYAML serializes a full backup as YAML.
func (s *Store) ExportYAML() ([]byte, error) {
	b, err := s.ExportAll()
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(b)
}

func exportExercises(tx *sql.Tx) ([]models.Exercise, error) {
	rows, err := tx.Query(`SELECT id, name, type, is_timed, created_at FROM exercises ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []models.Exercise{}
	for rows.Next() {
		var e models.Exercise
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.IsTimed, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func exportWorkouts(tx *sql.Tx) ([]models.Workout, error) {
	rows, err := tx.Query(`SELECT id, date, notes, title, duration_sec, mood FROM workouts ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []models.Workout{}
	for rows.Next() {
		var w models.Workout
		var notes, title sql.NullString
		var durationSec, mood sql.NullInt64
		if err := rows.Scan(&w.ID, &w.Date, &notes, &title, &durationSec, &mood); err != nil {
			return nil, err
		}
		applyWorkoutNulls(&w, notes, title, durationSec, mood)
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func exportSets(tx *sql.Tx) ([]models.Set, error) {
	rows, err := tx.Query(`SELECT id, workout_id, exercise_id, set_index, reps, weight_kg, duration_sec FROM sets ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := []models.Set{}
	for rows.Next() {
		var set models.Set
		var reps, durationSec sql.NullInt64
		var weightKg sql.NullFloat64
		if err := rows.Scan(&set.ID, &set.WorkoutID, &set.ExerciseID, &set.SetIndex,
			&reps, &weightKg, &durationSec); err != nil {
			return nil, err
		}
		if reps.Valid {
			v := int(reps.Int64)
			set.Reps = &v
		}
		if weightKg.Valid {
			set.WeightKg = &weightKg.Float64
		}
		if durationSec.Valid {
			v := int(durationSec.Int64)
			set.DurationSec = &v
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

func exportPRs(tx *sql.Tx) ([]models.PersonalRecord, error) {
	rows, err := tx.Query(`SELECT exercise_id, best_weight, best_reps, best_duration_sec, best_1rm, updated_at FROM personal_records ORDER BY exercise_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prs := []models.PersonalRecord{}
	for rows.Next() {
		pr, err := scanPR(rows.Scan)
		if err != nil {
			return nil, err
		}
		prs = append(prs, *pr)
	}
	return prs, rows.Err()
}

func exportTemplates(tx *sql.Tx) ([]models.Template, error) {
	rows, err := tx.Query(`SELECT id, name, created_at FROM templates ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []models.Template{}
	for rows.Next() {
		var t models.Template
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func exportTemplateItems(tx *sql.Tx) ([]models.TemplateItem, error) {
	rows, err := tx.Query(`SELECT id, template_id, exercise_id, position, default_sets, default_reps, default_duration_sec, default_weight_kg FROM template_items ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.TemplateItem{}
	for rows.Next() {
		var item models.TemplateItem
		var defSets, defReps, defDuration sql.NullInt64
		var defWeight sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.TemplateID, &item.ExerciseID, &item.Position,
			&defSets, &defReps, &defDuration, &defWeight); err != nil {
			return nil, err
		}
		if defSets.Valid {
			v := int(defSets.Int64)
			item.DefaultSets = &v
		}
		if defReps.Valid {
			v := int(defReps.Int64)
			item.DefaultReps = &v
		}
		if defDuration.Valid {
			v := int(defDuration.Int64)
			item.DefaultDurationSec = &v
		}
		if defWeight.Valid {
			item.DefaultWeightKg = &defWeight.Float64
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
