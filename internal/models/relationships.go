// ABOUTME: Junction records linking core entities; each row has its own id and timestamp
// ABOUTME: These are derived relationships, not source-of-truth entities
package models

import "time"

// MeasuredAction records a numeric measurement taken by an action
// (action x measure x value).
type MeasuredAction struct {
	ID        int64     `json:"id"`
	ActionID  int64     `json:"action_id"`
	MeasureID int64     `json:"measure_id"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks referential fields and the measured value.
func (m *MeasuredAction) Validate() error {
	if m.ActionID == 0 || m.MeasureID == 0 {
		return NewError(ErrMissingRequiredField, "measured action requires action and measure ids")
	}
	if m.Value <= 0 {
		return NewError(ErrMissingRequiredField, "measured value must be positive, got %g", m.Value)
	}
	return nil
}

// GoalMeasureTarget sets the numeric target a goal aims for on one measure.
type GoalMeasureTarget struct {
	ID          int64     `json:"id"`
	GoalID      int64     `json:"goal_id"`
	MeasureID   int64     `json:"measure_id"`
	TargetValue float64   `json:"target_value"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks referential fields.
func (g *GoalMeasureTarget) Validate() error {
	if g.GoalID == 0 || g.MeasureID == 0 {
		return NewError(ErrMissingRequiredField, "goal measure target requires goal and measure ids")
	}
	return nil
}

// GoalValueAlignment declares that a goal serves a personal value.
type GoalValueAlignment struct {
	ID      int64 `json:"id"`
	GoalID  int64 `json:"goal_id"`
	ValueID int64 `json:"value_id"`
	// AlignmentStrength is a bounded 1-10 rating when present.
	AlignmentStrength *int      `json:"alignment_strength,omitempty"`
	Note              string    `json:"note,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Validate checks referential fields and the strength bounds.
func (a *GoalValueAlignment) Validate() error {
	if a.GoalID == 0 || a.ValueID == 0 {
		return NewError(ErrMissingRequiredField, "goal value alignment requires goal and value ids")
	}
	if a.AlignmentStrength != nil && (*a.AlignmentStrength < 1 || *a.AlignmentStrength > 10) {
		return NewError(ErrMissingRequiredField, "alignment strength must be 1-10, got %d", *a.AlignmentStrength)
	}
	return nil
}

// ActionGoalContribution attributes an action to a goal, optionally with an
// explicit contribution amount against one of the goal's measures.
type ActionGoalContribution struct {
	ID           int64     `json:"id"`
	ActionID     int64     `json:"action_id"`
	GoalID       int64     `json:"goal_id"`
	Contribution *float64  `json:"contribution,omitempty"`
	MeasureID    *int64    `json:"measure_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks referential fields.
func (c *ActionGoalContribution) Validate() error {
	if c.ActionID == 0 || c.GoalID == 0 {
		return NewError(ErrMissingRequiredField, "action goal contribution requires action and goal ids")
	}
	return nil
}

// TermGoalAssignment places a goal in a term, optionally ordered.
// The schema does not forbid multiple assignments per goal; readers apply a
// last-write-wins policy and keep only the most recently created one.
type TermGoalAssignment struct {
	ID        int64     `json:"id"`
	TermID    int64     `json:"term_id"`
	GoalID    int64     `json:"goal_id"`
	SortOrder *int      `json:"sort_order,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks referential fields.
func (t *TermGoalAssignment) Validate() error {
	if t.TermID == 0 || t.GoalID == 0 {
		return NewError(ErrMissingRequiredField, "term goal assignment requires term and goal ids")
	}
	return nil
}
