// ABOUTME: CLI commands for workout templates.
// ABOUTME: Template CRUD, item management, and applying a template to a date.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oscarrlundin/workout-tracker/internal/models"
)

var (
	itemSets     int
	itemReps     int
	itemDuration int
	itemWeightKg float64
)

var templateCmd = &cobra.Command{
	Use:     "template",
	Aliases: []string{"tpl"},
	Short:   "Manage workout templates",
}

var templateAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := store.AddTemplate(args[0])
		if err != nil {
			return err
		}

		color.Green("✓ Added template %s", args[0])
		fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("id %d", id))
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List templates",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		templates, err := store.GetTemplates()
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			fmt.Println("No templates yet. Add one with 'workout template add'.")
			return nil
		}

		for _, t := range templates {
			fmt.Printf("%s %s\n", color.New(color.Faint).Sprintf("%3d", t.ID), t.Name)
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a template with its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		t, err := store.GetTemplateWithItems(id)
		if err != nil {
			return err
		}
		if t == nil {
			return fmt.Errorf("no template with id %d", id)
		}

		exercises, err := store.GetExercises()
		if err != nil {
			return err
		}
		names := make(map[int64]string, len(exercises))
		for _, e := range exercises {
			names[e.ID] = e.Name
		}

		color.New(color.Bold).Println(t.Name)
		for _, item := range t.Items {
			line := fmt.Sprintf("  %d. %s", item.Position, names[item.ExerciseID])
			if item.DefaultSets != nil {
				line += fmt.Sprintf(" %dx", *item.DefaultSets)
			}
			if item.DefaultReps != nil {
				line += fmt.Sprintf("%d", *item.DefaultReps)
			}
			if item.DefaultDurationSec != nil {
				line += fmt.Sprintf("%ds", *item.DefaultDurationSec)
			}
			if item.DefaultWeightKg != nil {
				line += fmt.Sprintf(" @ %gkg", *item.DefaultWeightKg)
			}
			fmt.Printf("%s %s\n", line, color.New(color.Faint).Sprintf("(item %d)", item.ID))
		}
		return nil
	},
}

var templateRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a template",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		found, err := store.RenameTemplate(id, args[1])
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no template with id %d", id)
		}

		color.Green("✓ Renamed template %d to %s", id, args[1])
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a template and its items",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		found, err := store.DeleteTemplate(id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no template with id %d", id)
		}

		color.Green("✓ Deleted template %d", id)
		return nil
	},
}

var templateApplyCmd = &cobra.Command{
	Use:   "apply <id> [date]",
	Short: "Populate a day's workout from a template",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		date := time.Now().Format("2006-01-02")
		if len(args) > 1 {
			date = args[1]
		}

		workoutID, exerciseIDs, err := store.ApplyTemplate(id, date)
		if err != nil {
			return err
		}
		for _, eid := range exerciseIDs {
			if _, err := store.UpdatePRForExercise(eid); err != nil {
				return err
			}
		}

		color.Green("✓ Applied template %d to %s", id, date)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("workout %d, %d exercises", workoutID, len(exerciseIDs)))
		return nil
	},
}

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage template items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <template-id> <exercise>",
	Short: "Add an exercise to a template",
	Long: `Add an exercise to a template. Adding the same exercise twice is a
no-op that reports the existing item.

Examples:
  workout template item add 1 "Bench Press" --sets 3 --reps 5 --kg 100`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		templateID, err := parseID(args[0])
		if err != nil {
			return err
		}
		exercise, err := store.GetExerciseByName(args[1])
		if err != nil {
			return err
		}
		if exercise == nil {
			return fmt.Errorf("unknown exercise: %s", args[1])
		}

		itemID, err := store.AddTemplateItem(templateID, exercise.ID)
		if err != nil {
			return err
		}

		patch := itemPatchFromFlags(cmd)
		if patch != (models.TemplateItemPatch{}) {
			if _, err := store.UpdateTemplateItem(itemID, patch); err != nil {
				return err
			}
		}

		color.Green("✓ Added %s to template %d", exercise.Name, templateID)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("item %d", itemID))
		return nil
	},
}

var itemEditCmd = &cobra.Command{
	Use:   "edit <item-id>",
	Short: "Edit a template item's default prescription",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		patch := itemPatchFromFlags(cmd)
		found, err := store.UpdateTemplateItem(id, patch)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no template item with id %d (or nothing to change)", id)
		}

		color.Green("✓ Updated item %d", id)
		return nil
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:     "delete <item-id>",
	Aliases: []string{"rm"},
	Short:   "Remove an item from its template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		found, err := store.DeleteTemplateItem(id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no template item with id %d", id)
		}

		color.Green("✓ Deleted item %d", id)
		return nil
	},
}

func itemPatchFromFlags(cmd *cobra.Command) models.TemplateItemPatch {
	var patch models.TemplateItemPatch
	if cmd.Flags().Changed("sets") {
		patch.DefaultSets = &itemSets
	}
	if cmd.Flags().Changed("reps") {
		patch.DefaultReps = &itemReps
	}
	if cmd.Flags().Changed("sec") {
		patch.DefaultDurationSec = &itemDuration
	}
	if cmd.Flags().Changed("kg") {
		patch.DefaultWeightKg = &itemWeightKg
	}
	return patch
}

func init() {
	for _, c := range []*cobra.Command{itemAddCmd, itemEditCmd} {
		c.Flags().IntVar(&itemSets, "sets", 0, "default number of sets")
		c.Flags().IntVar(&itemReps, "reps", 0, "default reps per set")
		c.Flags().IntVar(&itemDuration, "sec", 0, "default duration per set in seconds")
		c.Flags().Float64Var(&itemWeightKg, "kg", 0, "default weight in kilograms")
	}

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemEditCmd)
	itemCmd.AddCommand(itemDeleteCmd)

	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateRenameCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	templateCmd.AddCommand(templateApplyCmd)
	templateCmd.AddCommand(itemCmd)
}
