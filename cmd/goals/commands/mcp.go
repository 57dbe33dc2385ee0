// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to manage goals via stdio
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/willbda/ten-week-goal-app-sub004/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents.

Runs the goal tracker as an MCP (Model Context Protocol) server,
enabling LLM agents to create goals, log actions, and check
progress via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  goals mcp

  # Configure in the host's MCP config:
  # {
  #   "mcpServers": {
  #     "goals": {
  #       "command": "goals",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	server := mcpserver.NewMCPServer(
		"Goal Tracker",
		versionInfo.Version,
	)
	mcp.RegisterTools(server, store)

	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
