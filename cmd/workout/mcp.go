// ABOUTME: CLI command to run the MCP server over stdio.
// ABOUTME: Exposes the workout store to MCP-compatible AI assistants.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oscarrlundin/workout-tracker/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server",
	Long: `Run the Model Context Protocol server over stdio.

Add to your MCP client configuration (e.g. Claude Desktop):

  {
    "mcpServers": {
      "workout": {
        "command": "workout",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(store)
		if err != nil {
			return fmt.Errorf("create MCP server: %w", err)
		}
		return server.Serve(cmd.Context())
	},
}
