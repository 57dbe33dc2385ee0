// ABOUTME: MCP tool handler implementations for the goals server
// ABOUTME: Translates tool arguments into storage calls and marshals the results
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
	"github.com/willbda/ten-week-goal-app-sub004/internal/storage"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	storage *storage.Storage
}

const dateLayout = "2006-01-02"

// CreateGoal handles the create_goal tool
func (h *Handlers) CreateGoal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title argument is required and must be a string"), nil
	}

	goal := &models.Goal{
		Title:       title,
		Description: request.GetString("description", ""),
		ActionPlan:  request.GetString("action_plan", ""),
	}
	if goal.StartDate, err = parseDateArg(request, "start_date"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if goal.TargetDate, err = parseDateArg(request, "target_date"); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.storage.Goals.Create(goal); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create goal: %v", err)), nil
	}

	response := map[string]interface{}{
		"id":          goal.ID,
		"external_id": goal.ExternalID,
		"title":       goal.Title,
	}

	// Optional measure target, creating the measure on first use of a unit.
	unit := request.GetString("unit", "")
	targetValue := request.GetFloat("target_value", 0)
	if unit != "" && targetValue > 0 {
		measure, err := h.storage.Measures.GetByUnit(unit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to look up measure: %v", err)), nil
		}
		if measure == nil {
			measure = &models.Measure{Title: unit, Unit: unit}
			if err := h.storage.Measures.Create(measure); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to create measure: %v", err)), nil
			}
		}
		target := &models.GoalMeasureTarget{
			GoalID:      goal.ID,
			MeasureID:   measure.ID,
			TargetValue: targetValue,
		}
		if err := h.storage.Relations.CreateGoalMeasureTarget(target); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to create target: %v", err)), nil
		}
		response["target"] = map[string]interface{}{
			"measure_id":   measure.ID,
			"unit":         measure.Unit,
			"target_value": targetValue,
		}
	}

	return marshalResult(response)
}

// LogAction handles the log_action tool
func (h *Handlers) LogAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title argument is required and must be a string"), nil
	}

	now := time.Now()
	action := &models.Action{
		Title:     title,
		StartTime: &now,
	}
	if d := request.GetFloat("duration_minutes", 0); d > 0 {
		action.DurationMinutes = &d
	}

	if err := h.storage.Actions.Create(action); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create action: %v", err)), nil
	}

	response := map[string]interface{}{
		"id":          action.ID,
		"external_id": action.ExternalID,
		"title":       action.Title,
	}

	// Optional measurement. The unit must already exist so typos do not
	// silently create orphan measures.
	unit := request.GetString("unit", "")
	value := request.GetFloat("value", 0)
	if unit != "" {
		measure, err := h.storage.Measures.GetByUnit(unit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to look up measure: %v", err)), nil
		}
		if measure == nil {
			return mcp.NewToolResultError(fmt.Sprintf("no measure with unit %q; create a goal target with this unit first", unit)), nil
		}
		ma := &models.MeasuredAction{
			ActionID:  action.ID,
			MeasureID: measure.ID,
			Value:     value,
		}
		if err := h.storage.Relations.CreateMeasuredAction(ma); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to record measurement: %v", err)), nil
		}
		response["measurement"] = map[string]interface{}{
			"unit":  unit,
			"value": value,
		}
	}

	return marshalResult(response)
}

// ListGoals handles the list_goals tool
func (h *Handlers) ListGoals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goals, err := h.storage.Goals.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list goals: %v", err)), nil
	}
	return marshalResult(map[string]interface{}{
		"count": len(goals),
		"goals": goals,
	})
}

// GoalProgress handles the goal_progress tool
func (h *Handlers) GoalProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.storage.GoalProgress()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute progress: %v", err)), nil
	}
	return marshalResult(map[string]interface{}{
		"count":    len(rows),
		"progress": rows,
	})
}

// GetGoalGraph handles the get_goal_graph tool
func (h *Handlers) GetGoalGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goalID := request.GetInt("goal_id", 0)
	if goalID <= 0 {
		return mcp.NewToolResultError("goal_id argument is required and must be a positive number"), nil
	}

	graph, err := h.storage.GetGoalGraph(int64(goalID))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch goal graph: %v", err)), nil
	}
	if graph == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no goal with id %d", goalID)), nil
	}
	return marshalResult(graph)
}

// ListValues handles the list_values tool
func (h *Handlers) ListValues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var level *models.ValueLevel
	if raw := request.GetString("level", ""); raw != "" {
		parsed, err := models.ParseValueLevel(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		level = &parsed
	}

	values, err := h.storage.Values.List(level)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list values: %v", err)), nil
	}
	return marshalResult(map[string]interface{}{
		"count":  len(values),
		"values": values,
	})
}

func parseDateArg(request mcp.CallToolRequest, key string) (*time.Time, error) {
	raw := request.GetString(key, "")
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be YYYY-MM-DD, got %q", key, raw)
	}
	return &t, nil
}

func marshalResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
