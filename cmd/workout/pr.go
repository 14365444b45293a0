// ABOUTME: CLI commands for personal records.
// ABOUTME: pr lists cached records; pr recalc rebuilds them from set history.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

var prCmd = &cobra.Command{
	Use:   "pr [exercise]",
	Short: "Show personal records",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var prs []models.PersonalRecord
		if len(args) > 0 {
			exercise, err := store.GetExerciseByName(args[0])
			if err != nil {
				return err
			}
			if exercise == nil {
				return fmt.Errorf("unknown exercise: %s", args[0])
			}
			pr, err := store.GetPR(exercise.ID)
			if err != nil {
				return err
			}
			if pr != nil {
				prs = append(prs, *pr)
			}
		} else {
			var err error
			prs, err = store.GetPRs()
			if err != nil {
				return err
			}
		}
		if len(prs) == 0 {
			fmt.Println("No personal records yet. Log some sets first.")
			return nil
		}

		exercises, err := store.GetExercises()
		if err != nil {
			return err
		}
		names := make(map[int64]string, len(exercises))
		for _, e := range exercises {
			names[e.ID] = e.Name
		}

		for _, pr := range prs {
			color.New(color.Bold).Println(names[pr.ExerciseID])
			if pr.BestWeight != nil {
				fmt.Printf("  weight    %gkg\n", *pr.BestWeight)
			}
			if pr.BestReps != nil {
				fmt.Printf("  reps      %d\n", *pr.BestReps)
			}
			if pr.BestDurationSec != nil {
				fmt.Printf("  duration  %ds\n", *pr.BestDurationSec)
			}
			if pr.BestOneRM != nil {
				fmt.Printf("  est. 1RM  %gkg\n", *pr.BestOneRM)
			}
		}
		return nil
	},
}

var prRecalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Rebuild all personal records from set history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := store.RecalcAllPRs()
		if err != nil {
			return err
		}

		color.Green("✓ Recalculated records for %d exercises", n)
		return nil
	},
}

func init() {
	prCmd.AddCommand(prRecalcCmd)
}
