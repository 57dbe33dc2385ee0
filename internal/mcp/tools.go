// ABOUTME: MCP tool definitions and registration for the goals server
// ABOUTME: Defines JSON schemas for the goal-tracking tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/willbda/ten-week-goal-app-sub004/internal/storage"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, store *storage.Storage) *Handlers {
	handlers := &Handlers{storage: store}

	// 1. create_goal - Create a new goal, optionally with a measure target
	server.AddTool(mcp.Tool{
		Name:        "create_goal",
		Description: "Create a new goal. Optionally attach a measurable target by unit, creating the measure if it does not exist yet.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Goal title (unique, case-insensitive)",
				},
				"description": map[string]interface{}{
					"type":        "string",
					"description": "What achieving this goal looks like",
				},
				"start_date": map[string]interface{}{
					"type":        "string",
					"description": "Start date (YYYY-MM-DD)",
				},
				"target_date": map[string]interface{}{
					"type":        "string",
					"description": "Target completion date (YYYY-MM-DD)",
				},
				"action_plan": map[string]interface{}{
					"type":        "string",
					"description": "How the goal will be pursued",
				},
				"unit": map[string]interface{}{
					"type":        "string",
					"description": "Measurement unit for the target (e.g. 'km', 'pages')",
				},
				"target_value": map[string]interface{}{
					"type":        "number",
					"description": "Numeric target in the given unit",
				},
			},
			Required: []string{"title"},
		},
	}, handlers.CreateGoal)

	// 2. log_action - Record something that was done
	server.AddTool(mcp.Tool{
		Name:        "log_action",
		Description: "Record an action. Optionally attach a measurement by unit, which counts toward any goal targeting the same measure.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "What was done",
				},
				"duration_minutes": map[string]interface{}{
					"type":        "number",
					"description": "How long it took, in minutes",
				},
				"unit": map[string]interface{}{
					"type":        "string",
					"description": "Measurement unit (must match an existing measure)",
				},
				"value": map[string]interface{}{
					"type":        "number",
					"description": "Measured amount in the given unit",
				},
			},
			Required: []string{"title"},
		},
	}, handlers.LogAction)

	// 3. list_goals - List all goals in priority order
	server.AddTool(mcp.Tool{
		Name:        "list_goals",
		Description: "List all goals ordered by target date, soonest first, undated goals last.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListGoals)

	// 4. goal_progress - Progress toward every measurable target
	server.AddTool(mcp.Tool{
		Name:        "goal_progress",
		Description: "Report progress toward every goal measure target: current total, percent complete, and days remaining.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GoalProgress)

	// 5. get_goal_graph - Fully populated goal with relationships
	server.AddTool(mcp.Tool{
		Name:        "get_goal_graph",
		Description: "Get a goal with its measure targets, value alignments, and term assignment fully populated.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"goal_id": map[string]interface{}{
					"type":        "number",
					"description": "Internal goal id",
				},
			},
			Required: []string{"goal_id"},
		},
	}, handlers.GetGoalGraph)

	// 6. list_values - Personal values ordered by priority
	server.AddTool(mcp.Tool{
		Name:        "list_values",
		Description: "List personal values ordered by priority (lower number is more important). Optionally filter by level.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"level": map[string]interface{}{
					"type":        "string",
					"description": "Filter by level: general, major, highest_order, or life_area",
				},
			},
		},
	}, handlers.ListValues)

	return handlers
}
