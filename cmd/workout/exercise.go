// ABOUTME: CLI commands for managing exercises.
// ABOUTME: Add, list, rename, timed conversion, and cascading delete.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oscarrlundin/workout-tracker/internal/models"
	"github.com/oscarrlundin/workout-tracker/internal/storage"
)

var exerciseTimed bool

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Manage exercises",
}

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name> <type>",
	Short: "Add an exercise",
	Long: `Add an exercise. Type is "weighted" or "bodyweight"; pass --timed for
exercises measured by duration instead of reps.

Examples:
  workout exercise add "Bench Press" weighted
  workout exercise add "Plank" bodyweight --timed`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.AddExercise(args[0], models.ExerciseType(args[1]), exerciseTimed)
		if err != nil {
			return err
		}

		color.Green("✓ Added %s", args[0])
		fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("id %d", id))
		return nil
	},
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises, err := store.GetExercises()
		if err != nil {
			return err
		}
		if len(exercises) == 0 {
			fmt.Println("No exercises yet. Add one with 'workout exercise add'.")
			return nil
		}

		for _, e := range exercises {
			mode := "reps"
			if e.IsTimed {
				mode = "timed"
			}
			fmt.Printf("%s %s %s\n",
				color.New(color.Faint).Sprintf("%3d", e.ID),
				e.Name,
				color.New(color.Faint).Sprintf("(%s, %s)", e.Type, mode))
		}
		return nil
	},
}

var exerciseRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename an exercise",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		found, err := store.UpdateExerciseName(id, args[1])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no exercise with id %d", id)
		}

		color.Green("✓ Renamed exercise %d to %s", id, args[1])
		return nil
	},
}

var exerciseTimedCmd = &cobra.Command{
	Use:   "timed <id> <true|false>",
	Short: "Switch an exercise between rep-based and timed",
	Long: `Switch an exercise between rep-based and timed measurement.

Blocked once the exercise has logged sets: converting would change the
meaning of its history and its personal records.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		isTimed, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q (use true or false)", args[1])
		}

		found, err := store.UpdateExerciseTimed(id, isTimed)
		var conflict *storage.ConflictError
		if errors.As(err, &conflict) {
			return fmt.Errorf("cannot convert exercise %d: %d sets already reference it", id, conflict.SetCount)
		}
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no exercise with id %d", id)
		}

		color.Green("✓ Updated exercise %d", id)
		return nil
	},
}

var exerciseDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise and all of its sets and records",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		found, err := store.DeleteExercise(id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no exercise with id %d", id)
		}

		color.Green("✓ Deleted exercise %d (sets, records, and template entries included)", id)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func init() {
	exerciseAddCmd.Flags().BoolVar(&exerciseTimed, "timed", false, "exercise records duration instead of reps")

	exerciseCmd.AddCommand(exerciseAddCmd)
	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseRenameCmd)
	exerciseCmd.AddCommand(exerciseTimedCmd)
	exerciseCmd.AddCommand(exerciseDeleteCmd)
}
