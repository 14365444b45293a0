// ABOUTME: CLI commands for logging sets and viewing a day's workout.
// ABOUTME: log adds a set and recomputes the PR; show prints the day; meta edits metadata.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

var (
	logDate     string
	logReps     int
	logWeightKg float64
	logDuration int

	editReps     int
	editWeightKg float64
	editDuration int
	editIndex    int

	metaTitle    string
	metaNotes    string
	metaDuration int
	metaMood     int
)

var logCmd = &cobra.Command{
	Use:     "log <exercise>",
	Aliases: []string{"l"},
	Short:   "Log a set",
	Long: `Log a set for an exercise. The day's workout is created on first use.

Examples:
  workout log "Bench Press" --reps 5 --kg 100
  workout log "Plank" --sec 90
  workout log "Squat" --reps 8 --kg 120 --date 2026-08-30`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exercise, err := store.GetExerciseByName(args[0])
		if err != nil {
			return err
		}
		if exercise == nil {
			return fmt.Errorf("unknown exercise: %s (see 'workout exercise list')", args[0])
		}

		date := logDate
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}
		workoutID, err := store.CreateWorkout(date, "")
		if err != nil {
			return err
		}

		sets, err := store.GetSetsForWorkout(workoutID)
		if err != nil {
			return err
		}
		index := 1
		for _, s := range sets {
			if s.ExerciseID == exercise.ID {
				index++
			}
		}

		set := &models.Set{
			WorkoutID:  workoutID,
			ExerciseID: exercise.ID,
			SetIndex:   index,
		}
		if exercise.IsTimed {
			set.DurationSec = &logDuration
		} else {
			set.Reps = &logReps
		}
		if exercise.Type == models.ExerciseWeighted && logWeightKg > 0 {
			set.WeightKg = &logWeightKg
		}

		if _, err := store.AddSet(set); err != nil {
			return err
		}

		update, err := store.UpdatePRForExercise(exercise.ID)
		if err != nil {
			return err
		}

		color.Green("✓ Logged %s set %d on %s", exercise.Name, index, date)
		if update.Improved() {
			for metric, imp := range update.Improvements {
				if imp.Old == nil {
					color.Yellow("  ★ new %s: %g", metric, imp.New)
				} else {
					color.Yellow("  ★ new %s: %g (was %g)", metric, imp.New, *imp.Old)
				}
			}
		}
		return nil
	},
}

var logEditCmd = &cobra.Command{
	Use:   "edit <set-id>",
	Short: "Edit a logged set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var patch models.SetPatch
		if cmd.Flags().Changed("reps") {
			patch.Reps = &editReps
		}
		if cmd.Flags().Changed("kg") {
			patch.WeightKg = &editWeightKg
		}
		if cmd.Flags().Changed("sec") {
			patch.DurationSec = &editDuration
		}
		if cmd.Flags().Changed("index") {
			patch.SetIndex = &editIndex
		}

		exerciseID, found, err := store.UpdateSet(id, patch)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no set with id %d", id)
		}
		if _, err := store.UpdatePRForExercise(exerciseID); err != nil {
			return err
		}

		color.Green("✓ Updated set %d", id)
		return nil
	},
}

var logDeleteCmd = &cobra.Command{
	Use:     "delete <set-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a logged set",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		exerciseID, found, err := store.DeleteSet(id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no set with id %d", id)
		}
		if _, err := store.UpdatePRForExercise(exerciseID); err != nil {
			return err
		}

		color.Green("✓ Deleted set %d", id)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [date]",
	Short: "Show a day's workout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().Format("2006-01-02")
		if len(args) > 0 {
			date = args[0]
		}

		workouts, err := store.GetWorkoutsByDate(date)
		if err != nil {
			return err
		}
		if len(workouts) == 0 {
			fmt.Printf("No workout on %s.\n", date)
			return nil
		}
		w := workouts[0]

		header := w.Date
		if w.Title != nil {
			header += " — " + *w.Title
		}
		color.New(color.Bold).Println(header)
		if w.Mood != nil {
			fmt.Printf("mood %d/5\n", *w.Mood)
		}
		if w.DurationSec != nil {
			fmt.Printf("duration %dm\n", *w.DurationSec/60)
		}
		if w.Notes != nil {
			fmt.Println(*w.Notes)
		}

		sets, err := store.GetSetsForWorkout(w.ID)
		if err != nil {
			return err
		}
		exercises, err := store.GetExercises()
		if err != nil {
			return err
		}
		names := make(map[int64]string, len(exercises))
		for _, e := range exercises {
			names[e.ID] = e.Name
		}

		for _, s := range sets {
			line := fmt.Sprintf("  %s #%d:", names[s.ExerciseID], s.SetIndex)
			if s.Reps != nil {
				line += fmt.Sprintf(" %d reps", *s.Reps)
			}
			if s.DurationSec != nil {
				line += fmt.Sprintf(" %ds", *s.DurationSec)
			}
			if s.WeightKg != nil {
				line += fmt.Sprintf(" @ %gkg", *s.WeightKg)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var metaCmd = &cobra.Command{
	Use:   "meta [date]",
	Short: "Set title, notes, duration, or mood on a day's workout",
	Long: `Set metadata on a day's workout, creating the workout if needed.
Only the flags you pass are changed.

Examples:
  workout meta --title "Push Day" --mood 4
  workout meta 2026-08-30 --duration 55 --notes "felt strong"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now().Format("2006-01-02")
		if len(args) > 0 {
			date = args[0]
		}

		workoutID, err := store.CreateWorkout(date, "")
		if err != nil {
			return err
		}

		var patch models.WorkoutMetaPatch
		if cmd.Flags().Changed("title") {
			patch.Title = &metaTitle
		}
		if cmd.Flags().Changed("notes") {
			patch.Notes = &metaNotes
		}
		if cmd.Flags().Changed("duration") {
			sec := metaDuration * 60
			patch.DurationSec = &sec
		}
		if cmd.Flags().Changed("mood") {
			patch.Mood = &metaMood
		}

		if _, err := store.UpdateWorkoutMeta(workoutID, patch); err != nil {
			return err
		}

		color.Green("✓ Updated workout for %s", date)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "workout date (YYYY-MM-DD), defaults to today")
	logCmd.Flags().IntVar(&logReps, "reps", 0, "reps performed")
	logCmd.Flags().Float64Var(&logWeightKg, "kg", 0, "weight in kilograms")
	logCmd.Flags().IntVar(&logDuration, "sec", 0, "duration in seconds (timed exercises)")

	logEditCmd.Flags().IntVar(&editReps, "reps", 0, "reps performed")
	logEditCmd.Flags().Float64Var(&editWeightKg, "kg", 0, "weight in kilograms")
	logEditCmd.Flags().IntVar(&editDuration, "sec", 0, "duration in seconds")
	logEditCmd.Flags().IntVar(&editIndex, "index", 0, "1-based set index")
	logCmd.AddCommand(logEditCmd)
	logCmd.AddCommand(logDeleteCmd)

	metaCmd.Flags().StringVar(&metaTitle, "title", "", "workout title")
	metaCmd.Flags().StringVar(&metaNotes, "notes", "", "workout notes")
	metaCmd.Flags().IntVar(&metaDuration, "duration", 0, "session length in minutes")
	metaCmd.Flags().IntVar(&metaMood, "mood", 0, "mood rating 1-5")
}
