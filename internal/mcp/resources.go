// ABOUTME: MCP resource implementations for the workout store.
// ABOUTME: Provides workout://exercises, workout://prs, and workout://recent resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

func (s *Server) registerResources() {
	// workout://exercises - The exercise catalog
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "workout://exercises",
		Name:        "Exercise Catalog",
		Description: "All exercises in creation order",
		MIMEType:    "application/json",
	}, s.handleExercisesResource)

	// workout://prs - Personal records joined with exercise names
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "workout://prs",
		Name:        "Personal Records",
		Description: "Best weight, reps, duration, and estimated 1RM per exercise",
		MIMEType:    "application/json",
	}, s.handlePRsResource)

	// workout://recent - The last 7 days of workouts with their sets
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "workout://recent",
		Name:        "Recent Workouts",
		Description: "Workouts from the last 7 days with their sets",
		MIMEType:    "application/json",
	}, s.handleRecentResource)
}

// Resource handlers

func (s *Server) handleExercisesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	exercises, err := s.repo.GetExercises()
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return jsonResource("workout://exercises", exercises)
}

func (s *Server) handlePRsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	prs, err := s.repo.GetPRs()
	if err != nil {
		return nil, fmt.Errorf("list personal records: %w", err)
	}
	exercises, err := s.repo.GetExercises()
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	names := make(map[int64]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}

	type namedPR struct {
		Exercise string `json:"exercise"`
		models.PersonalRecord
	}
	out := make([]namedPR, 0, len(prs))
	for _, pr := range prs {
		out = append(out, namedPR{Exercise: names[pr.ExerciseID], PersonalRecord: pr})
	}

	return jsonResource("workout://prs", out)
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	workouts, err := s.repo.GetWorkouts()
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	type dayLog struct {
		Workout models.Workout `json:"workout"`
		Sets    []models.Set   `json:"sets"`
	}
	var recent []dayLog
	for _, w := range workouts {
		if w.Date < cutoff {
			continue
		}
		sets, err := s.repo.GetSetsForWorkout(w.ID)
		if err != nil {
			return nil, fmt.Errorf("list sets: %w", err)
		}
		recent = append(recent, dayLog{Workout: w, Sets: sets})
	}

	return jsonResource("workout://recent", recent)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}
