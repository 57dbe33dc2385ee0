// ABOUTME: ProgressRow carries the raw per-(goal, measure-target) progress numbers
// ABOUTME: Status classification is a presentation concern and lives with callers
package models

import "time"

// ProgressRow is one row of the set-based progress aggregation: one per
// (goal, measure-target) pair. Goals without measure targets produce no row;
// percent complete is never computed against a zero or negative target.
type ProgressRow struct {
	GoalID          int64   `json:"goal_id"`
	GoalTitle       string  `json:"goal_title"`
	MeasureID       int64   `json:"measure_id"`
	Unit            string  `json:"unit"`
	TargetValue     float64 `json:"target_value"`
	CurrentProgress float64 `json:"current_progress"`
	// PercentComplete is ROUND(current/target*100, 1), defined as 0 when the
	// target is zero or negative.
	PercentComplete float64    `json:"percent_complete"`
	TargetDate      *time.Time `json:"target_date,omitempty"`
	// DaysRemaining is nil when the goal has no target date.
	DaysRemaining *int `json:"days_remaining,omitempty"`
}

// Remaining is the amount left to reach the target, never negative.
func (p *ProgressRow) Remaining() float64 {
	if p.CurrentProgress >= p.TargetValue {
		return 0
	}
	return p.TargetValue - p.CurrentProgress
}

// IsComplete reports whether the target has been met.
func (p *ProgressRow) IsComplete() bool {
	return p.TargetValue > 0 && p.CurrentProgress >= p.TargetValue
}
