// ABOUTME: CLI commands for backup and restore.
// ABOUTME: export writes a JSON or YAML snapshot; import restores in replace or merge mode.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/oscarrlundin/workout-tracker/internal/storage"
)

var (
	exportOutput string
	importMode   string
)

var exportCmd = &cobra.Command{
	Use:   "export <json|yaml>",
	Short: "Export all data to a backup file",
	Long: `Export every table to a single backup file. Rows keep their numeric
ids, so a later import restores all cross-references intact.

Examples:
  workout export json -o backup.json
  workout export yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(args[0])

		var data []byte
		var err error
		switch format {
		case "json":
			data, err = store.ExportJSON()
		case "yaml":
			data, err = store.ExportYAML()
		default:
			return fmt.Errorf("unknown format %q (use json or yaml)", args[0])
		}
		if err != nil {
			return err
		}

		output := exportOutput
		if output == "" {
			output = fmt.Sprintf("workout-%s.%s", time.Now().Format("2006-01-02"), format)
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("write backup: %w", err)
		}

		color.Green("✓ Exported to %s", output)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore data from a backup file",
	Long: `Restore from a backup file created by 'workout export'.

Modes:
  replace  wipe all existing data, then load the backup verbatim
  merge    upsert backup rows by id; colliding ids overwrite local rows

A pre-import snapshot is written next to the backup so a bad restore
can be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read backup: %w", err)
		}

		// Best effort: a failed snapshot warns but never blocks the restore.
		if snapshot, err := store.ExportJSON(); err == nil {
			name := filepath.Join(filepath.Dir(args[0]),
				fmt.Sprintf("pre-import-%s.json", time.Now().Format("20060102-150405")))
			if err := os.WriteFile(name, snapshot, 0644); err == nil {
				fmt.Printf("Saved pre-import snapshot to %s\n", name)
			} else {
				color.Yellow("⚠ Could not save pre-import snapshot: %v", err)
			}
		} else {
			color.Yellow("⚠ Could not save pre-import snapshot: %v", err)
		}

		if err := store.ImportJSON(data, storage.ImportMode(importMode)); err != nil {
			return err
		}

		color.Green("✓ Imported %s (mode %s)", args[0], importMode)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default workout-<date>.<format>)")
	importCmd.Flags().StringVar(&importMode, "mode", "replace", "import mode: replace or merge")
}
