// ABOUTME: Template and template item CRUD for the SQLite store.
// ABOUTME: Items are idempotent per (template, exercise) and gap-tolerant in order.
package storage

import (
	"database/sql"
	"strings"
	"time"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

// AddTemplate validates and inserts a template, returning its id.
func (s *Store) AddTemplate(name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	res, err := s.db.Exec(`INSERT INTO templates (name, created_at) VALUES (?, ?)`,
		name, time.Now().Format(time.RFC3339))
	if err != nil {
		return 0, storageErr("add template", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("add template", err)
	}

	s.watcher.publish(TableTemplates)
	return id, nil
}

// RenameTemplate renames a template in place. Missing ids are a no-op.
func (s *Store) RenameTemplate(id int64, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	res, err := s.db.Exec(`UPDATE templates SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return false, storageErr("rename template", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return false, nil
	}

	s.watcher.publish(TableTemplates)
	return true, nil
}

// DeleteTemplate removes a template and all of its items in one transaction.
func (s *Store) DeleteTemplate(id int64) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, storageErr("delete template", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM template_items WHERE template_id = ?`, id); err != nil {
		return false, storageErr("delete template", err)
	}
	res, err := tx.Exec(`DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return false, storageErr("delete template", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, storageErr("delete template", err)
	}

	s.watcher.publish(TableTemplates, TableTemplateItems)
	return true, nil
}

// GetTemplates returns all templates in creation order, without items.
func (s *Store) GetTemplates() ([]models.Template, error) {
	rows, err := s.db.Query(`
		SELECT id, name, created_at FROM templates ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, storageErr("list templates", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		var t models.Template
		var createdAt string
		if err := rows.Scan(&t.ID, &t.Name, &createdAt); err != nil {
			return nil, storageErr("scan template", err)
		}
		t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// GetTemplateWithItems retrieves a template and its items ordered by
// position in one read. Returns nil when the template does not exist.
func (s *Store) GetTemplateWithItems(id int64) (*models.Template, error) {
	var t models.Template
	var createdAt string
	err := s.db.QueryRow(`SELECT id, name, created_at FROM templates WHERE id = ?`, id).
		Scan(&t.ID, &t.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get template", err)
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	items, err := s.queryTemplateItems(`
		SELECT id, template_id, exercise_id, position,
			default_sets, default_reps, default_duration_sec, default_weight_kg
		FROM template_items WHERE template_id = ? ORDER BY position ASC, id ASC`, id)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

// AddTemplateItem appends an exercise to a template at the next position.
// Adding an exercise that is already in the template returns the existing
// item's id unchanged, so the operation is safe to repeat.
func (s *Store) AddTemplateItem(templateID, exerciseID int64) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, storageErr("add template item", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRow(`SELECT id FROM template_items WHERE template_id = ? AND exercise_id = ?`,
		templateID, exerciseID).Scan(&existingID)
	if err == nil {
		return existingID, tx.Commit()
	}
	if err != sql.ErrNoRows {
		return 0, storageErr("add template item", err)
	}

	var exists int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM templates WHERE id = ?`, templateID).Scan(&exists); err != nil {
		return 0, storageErr("add template item", err)
	}
	if exists == 0 {
		return 0, &ValidationError{Field: "template_id", Reason: "unknown template"}
	}
	if err := tx.QueryRow(`SELECT COUNT(*) FROM exercises WHERE id = ?`, exerciseID).Scan(&exists); err != nil {
		return 0, storageErr("add template item", err)
	}
	if exists == 0 {
		return 0, &ValidationError{Field: "exercise_id", Reason: "unknown exercise"}
	}

	var count int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM template_items WHERE template_id = ?`, templateID).Scan(&count); err != nil {
		return 0, storageErr("add template item", err)
	}

	res, err := tx.Exec(`
		INSERT INTO template_items (template_id, exercise_id, position)
		VALUES (?, ?, ?)`, templateID, exerciseID, count+1)
	if err != nil {
		return 0, storageErr("add template item", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("add template item", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, storageErr("add template item", err)
	}

	s.watcher.publish(TableTemplateItems)
	return id, nil
}

// UpdateTemplateItem merges the non-nil default prescription fields into an
// item. Range clamps are a UI concern; none are enforced here.
func (s *Store) UpdateTemplateItem(id int64, patch models.TemplateItemPatch) (bool, error) {
	var sets []string
	var args []any
	if patch.DefaultSets != nil {
		sets = append(sets, "default_sets = ?")
		args = append(args, *patch.DefaultSets)
	}
	if patch.DefaultReps != nil {
		sets = append(sets, "default_reps = ?")
		args = append(args, *patch.DefaultReps)
	}
	if patch.DefaultDurationSec != nil {
		sets = append(sets, "default_duration_sec = ?")
		args = append(args, *patch.DefaultDurationSec)
	}
	if patch.DefaultWeightKg != nil {
		sets = append(sets, "default_weight_kg = ?")
		args = append(args, *patch.DefaultWeightKg)
	}
	if len(sets) == 0 {
		return false, nil
	}

	args = append(args, id)
	res, err := s.db.Exec(`UPDATE template_items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return false, storageErr("update template item", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return false, nil
	}

	s.watcher.publish(TableTemplateItems)
	return true, nil
}

// DeleteTemplateItem removes one item. Remaining positions are not
// renumbered; ordering tolerates gaps.
func (s *Store) DeleteTemplateItem(id int64) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM template_items WHERE id = ?`, id)
	if err != nil {
		return false, storageErr("delete template item", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return false, nil
	}

	s.watcher.publish(TableTemplateItems)
	return true, nil
}

// ApplyTemplate bulk-populates the workout for a date from a template:
// one set row per item per default_sets (default 1), carrying the item's
// default prescription. Returns the workout id and the exercise ids that
// gained sets, for PR recomputation at the call site.
func (s *Store) ApplyTemplate(templateID int64, dateISO string) (int64, []int64, error) {
	template, err := s.GetTemplateWithItems(templateID)
	if err != nil {
		return 0, nil, err
	}
	if template == nil {
		return 0, nil, &ValidationError{Field: "template_id", Reason: "unknown template"}
	}

	workoutID, err := s.CreateWorkout(dateISO, "")
	if err != nil {
		return 0, nil, err
	}

	var exerciseIDs []int64
	for _, item := range template.Items {
		exercise, err := s.GetExercise(item.ExerciseID)
		if err != nil {
			return 0, nil, err
		}
		if exercise == nil {
			continue
		}

		existing, err := s.countSetsForPair(workoutID, item.ExerciseID)
		if err != nil {
			return 0, nil, err
		}

		numSets := 1
		if item.DefaultSets != nil && *item.DefaultSets > 0 {
			numSets = *item.DefaultSets
		}

		for i := 0; i < numSets; i++ {
			set := &models.Set{
				WorkoutID:  workoutID,
				ExerciseID: item.ExerciseID,
				SetIndex:   existing + i + 1,
			}
			if exercise.IsTimed {
				duration := 0
				if item.DefaultDurationSec != nil {
					duration = *item.DefaultDurationSec
				}
				set.DurationSec = &duration
			} else {
				reps := 0
				if item.DefaultReps != nil {
					reps = *item.DefaultReps
				}
				set.Reps = &reps
			}
			if exercise.Type == models.ExerciseWeighted && item.DefaultWeightKg != nil {
				weight := *item.DefaultWeightKg
				set.WeightKg = &weight
			}
			if _, err := s.AddSet(set); err != nil {
				return 0, nil, err
			}
		}
		exerciseIDs = append(exerciseIDs, item.ExerciseID)
	}

	return workoutID, exerciseIDs, nil
}

func (s *Store) countSetsForPair(workoutID, exerciseID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM sets WHERE workout_id = ? AND exercise_id = ?`,
		workoutID, exerciseID).Scan(&count)
	if err != nil {
		return 0, storageErr("count sets", err)
	}
	return count, nil
}

func (s *Store) queryTemplateItems(query string, args ...any) ([]models.TemplateItem, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, storageErr("list template items", err)
	}
	defer rows.Close()

	var items []models.TemplateItem
	for rows.Next() {
		var item models.TemplateItem
		var defSets, defReps, defDuration sql.NullInt64
		var defWeight sql.NullFloat64
		if err := rows.Scan(&item.ID, &item.TemplateID, &item.ExerciseID, &item.Position,
			&defSets, &defReps, &defDuration, &defWeight); err != nil {
			return nil, storageErr("scan template item", err)
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
