// ABOUTME: Template and TemplateItem models for reusable workout plans.
// ABOUTME: A template is a named, ordered list of exercises with default prescriptions.
package models

import (
	"strings"
	"time"
)

// Template is a reusable workout plan. Items is populated only when the
// template is fetched with its items; table-level reads leave it nil.
type Template struct {
	ID        int64          `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
	Items     []TemplateItem `json:"items,omitempty" yaml:"items,omitempty"`
}

// NewTemplate creates a Template with a trimmed name and current timestamp.
func NewTemplate(name string) *Template {
	return &Template{
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}
}

// TemplateItem places one exercise in a template with default prescriptions.
// Position is 1-based and gap-tolerant: deleting an item does not renumber
// the remaining ones.
type TemplateItem struct {
	ID                 int64    `json:"id" yaml:"id"`
	TemplateID         int64    `json:"template_id" yaml:"template_id"`
	ExerciseID         int64    `json:"exercise_id" yaml:"exercise_id"`
	Position           int      `json:"position" yaml:"position"`
	DefaultSets        *int     `json:"default_sets" yaml:"default_sets"`
	DefaultReps        *int     `json:"default_reps" yaml:"default_reps"`
	DefaultDurationSec *int     `json:"default_duration_sec" yaml:"default_duration_sec"`
	DefaultWeightKg    *float64 `json:"default_weight_kg" yaml:"default_weight_kg"`
}

// TemplateItemPatch is a partial update for a template item's default
// prescription. Nil fields are left untouched.
type TemplateItemPatch struct {
	DefaultSets        *int
	DefaultReps        *int
	DefaultDurationSec *int
	DefaultWeightKg    *float64
}
