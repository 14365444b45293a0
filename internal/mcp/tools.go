// ABOUTME: MCP tool implementations for the workout store.
// ABOUTME: Exercises, set logging, workout metadata, PRs, and templates.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

func (s *Server) registerTools() {
	// add_exercise
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_exercise",
		Description: "Create an exercise (weighted or bodyweight, rep-based or timed)",
	}, s.handleAddExercise)

	// list_exercises
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_exercises",
		Description: "List all exercises in creation order",
	}, s.handleListExercises)

	// log_set
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_set",
		Description: "Log a set for an exercise on a date and update its personal record",
	}, s.handleLogSet)

	// get_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_workout",
		Description: "Get the workout for a date with all its sets",
	}, s.handleGetWorkout)

	// update_workout_meta
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_workout_meta",
		Description: "Set title, duration, mood, or notes on a date's workout",
	}, s.handleUpdateWorkoutMeta)

	// get_prs
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_prs",
		Description: "Get cached personal records for all exercises",
	}, s.handleGetPRs)

	// list_templates
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_templates",
		Description: "List workout templates",
	}, s.handleListTemplates)

	// apply_template
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "apply_template",
		Description: "Populate a date's workout with a template's default sets",
	}, s.handleApplyTemplate)
}

// Tool input/output types

type addExerciseInput struct {
	Name    string `json:"name" jsonschema:"description=Exercise name,required"`
	Type    string `json:"type" jsonschema:"description=Load type: weighted or bodyweight,required"`
	IsTimed bool   `json:"is_timed,omitempty" jsonschema:"description=True when the exercise records duration instead of reps"`
}

type exerciseOutput struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type logSetInput struct {
	Exercise    string  `json:"exercise" jsonschema:"description=Exercise name,required"`
	Date        string  `json:"date,omitempty" jsonschema:"description=Workout date (YYYY-MM-DD), defaults to today"`
	Reps        int     `json:"reps,omitempty" jsonschema:"description=Reps (rep-based exercises)"`
	WeightKg    float64 `json:"weight_kg,omitempty" jsonschema:"description=Weight in kg (weighted exercises)"`
	DurationSec int     `json:"duration_sec,omitempty" jsonschema:"description=Duration in seconds (timed exercises)"`
}

type logSetOutput struct {
	SetID        int64                         `json:"set_id"`
	WorkoutID    int64                         `json:"workout_id"`
	Improvements map[string]models.Improvement `json:"improvements,omitempty"`
	Message      string                        `json:"message"`
}

type getWorkoutInput struct {
	Date string `json:"date" jsonschema:"description=Workout date (YYYY-MM-DD),required"`
}

type updateWorkoutMetaInput struct {
	Date        string `json:"date" jsonschema:"description=Workout date (YYYY-MM-DD),required"`
	Title       string `json:"title,omitempty" jsonschema:"description=Workout title"`
	Notes       string `json:"notes,omitempty" jsonschema:"description=Workout notes"`
	DurationSec int    `json:"duration_sec,omitempty" jsonschema:"description=Session length in seconds"`
	Mood        int    `json:"mood,omitempty" jsonschema:"description=Mood rating 1-5"`
}

type applyTemplateInput struct {
	TemplateID int64  `json:"template_id" jsonschema:"description=Template id,required"`
	Date       string `json:"date,omitempty" jsonschema:"description=Workout date (YYYY-MM-DD), defaults to today"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleAddExercise(ctx context.Context, req *mcp.CallToolRequest, input addExerciseInput) (*mcp.CallToolResult, exerciseOutput, error) {
	id, err := s.repo.AddExercise(input.Name, models.ExerciseType(input.Type), input.IsTimed)
	if err != nil {
		return nil, exerciseOutput{}, err
	}

	return nil, exerciseOutput{
		ID:      id,
		Name:    input.Name,
		Message: fmt.Sprintf("Added exercise %q (id %d)", input.Name, id),
	}, nil
}

func (s *Server) handleListExercises(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	exercises, err := s.repo.GetExercises()
	if err != nil {
		return nil, nil, fmt.Errorf("list exercises: %w", err)
	}

	if len(exercises) == 0 {
		return nil, map[string]any{"message": "No exercises yet."}, nil
	}
	return nil, exercises, nil
}

func (s *Server) handleLogSet(ctx context.Context, req *mcp.CallToolRequest, input logSetInput) (*mcp.CallToolResult, logSetOutput, error) {
	exercise, err := s.repo.GetExerciseByName(input.Exercise)
	if err != nil {
		return nil, logSetOutput{}, err
	}
	if exercise == nil {
		return nil, logSetOutput{}, fmt.Errorf("unknown exercise: %s", input.Exercise)
	}

	date := input.Date
	if date == "" {
		date = today()
	}
	workoutID, err := s.repo.CreateWorkout(date, "")
	if err != nil {
		return nil, logSetOutput{}, err
	}

	existing, err := s.repo.GetSetsForWorkout(workoutID)
	if err != nil {
		return nil, logSetOutput{}, err
	}
	index := 1
	for _, set := range existing {
		if set.ExerciseID == exercise.ID {
			index++
		}
	}

	set := &models.Set{
		WorkoutID:  workoutID,
		ExerciseID: exercise.ID,
		SetIndex:   index,
	}
	if exercise.IsTimed {
		set.DurationSec = &input.DurationSec
	} else {
		set.Reps = &input.Reps
	}
	if exercise.Type == models.ExerciseWeighted && input.WeightKg > 0 {
		set.WeightKg = &input.WeightKg
	}

	setID, err := s.repo.AddSet(set)
	if err != nil {
		return nil, logSetOutput{}, err
	}

	update, err := s.repo.UpdatePRForExercise(exercise.ID)
	if err != nil {
		return nil, logSetOutput{}, err
	}

	out := logSetOutput{
		SetID:     setID,
		WorkoutID: workoutID,
		Message:   fmt.Sprintf("Logged set %d of %s on %s", index, exercise.Name, date),
	}
	if update.Improved() {
		out.Improvements = update.Improvements
		out.Message += " — new personal record!"
	}
	return nil, out, nil
}

func (s *Server) handleGetWorkout(ctx context.Context, req *mcp.CallToolRequest, input getWorkoutInput) (*mcp.CallToolResult, any, error) {
	workouts, err := s.repo.GetWorkoutsByDate(input.Date)
	if err != nil {
		return nil, nil, err
	}
	if len(workouts) == 0 {
		return nil, map[string]any{"message": fmt.Sprintf("No workout on %s.", input.Date)}, nil
	}

	sets, err := s.repo.GetSetsForWorkout(workouts[0].ID)
	if err != nil {
		return nil, nil, err
	}

	return nil, map[string]any{
		"workout": workouts[0],
		"sets":    sets,
	}, nil
}

func (s *Server) handleUpdateWorkoutMeta(ctx context.Context, req *mcp.CallToolRequest, input updateWorkoutMetaInput) (*mcp.CallToolResult, simpleOutput, error) {
	workoutID, err := s.repo.CreateWorkout(input.Date, "")
	if err != nil {
		return nil, simpleOutput{}, err
	}

	var patch models.WorkoutMetaPatch
	if input.Title != "" {
		patch.Title = &input.Title
	}
	if input.Notes != "" {
		patch.Notes = &input.Notes
	}
	if input.DurationSec > 0 {
		patch.DurationSec = &input.DurationSec
	}
	if input.Mood > 0 {
		patch.Mood = &input.Mood
	}

	if _, err := s.repo.UpdateWorkoutMeta(workoutID, patch); err != nil {
		return nil, simpleOutput{}, err
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Updated workout metadata for %s", input.Date),
	}, nil
}

func (s *Server) handleGetPRs(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	prs, err := s.repo.GetPRs()
	if err != nil {
		return nil, nil, fmt.Errorf("list personal records: %w", err)
	}

	if len(prs) == 0 {
		return nil, map[string]any{"message": "No personal records yet."}, nil
	}
	return nil, prs, nil
}

func (s *Server) handleListTemplates(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	templates, err := s.repo.GetTemplates()
	if err != nil {
		return nil, nil, fmt.Errorf("list templates: %w", err)
	}

	if len(templates) == 0 {
		return nil, map[string]any{"message": "No templates yet."}, nil
	}
	return nil, templates, nil
}

func (s *Server) handleApplyTemplate(ctx context.Context, req *mcp.CallToolRequest, input applyTemplateInput) (*mcp.CallToolResult, simpleOutput, error) {
	date := input.Date
	if date == "" {
		date = today()
	}

	workoutID, exerciseIDs, err := s.repo.ApplyTemplate(input.TemplateID, date)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	for _, id := range exerciseIDs {
		if _, err := s.repo.UpdatePRForExercise(id); err != nil {
			return nil, simpleOutput{}, err
		}
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Applied template %d to workout %d on %s", input.TemplateID, workoutID, date),
	}, nil
}
