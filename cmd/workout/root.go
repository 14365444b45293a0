// ABOUTME: Root Cobra command for workout CLI.
// ABOUTME: Opens the store via config in PersistentPreRunE and closes it after.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oscarrlundin/workout-tracker/internal/config"
	"github.com/oscarrlundin/workout-tracker/internal/storage"
)

var store *storage.Store

var rootCmd = &cobra.Command{
	Use:   "workout",
	Short: "Personal workout log",
	Long: `Workout is a CLI tool for logging training: exercises, sets, reusable
templates, and personal records.

QUICK START:

  $ workout exercise add "Bench Press" weighted   # Define an exercise
  $ workout log "Bench Press" --reps 5 --kg 100   # Log a set for today
  $ workout show                                  # Today's workout
  $ workout pr                                    # Personal records

TEMPLATES:

  $ workout template add "Push Day"               # Create a template
  $ workout template item add 1 "Bench Press"     # Add an exercise to it
  $ workout template apply 1                      # Populate today from it

BACKUP:

  $ workout export json -o backup.json            # Full backup
  $ workout import backup.json --mode replace     # Restore

MCP INTEGRATION:

  Run 'workout mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Data lives in a SQLite database at ~/.local/share/workout/workout.db
  (override data_dir in ~/.config/workout/config.json).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		store, err = cfg.OpenStore()
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(metaCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(prCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(mcpCmd)
}
