// ABOUTME: Goal represents a future-oriented target with an optional time window
// ABOUTME: Measurement targets and value alignments are separate junction records
package models

import "time"

// Goal is a future-oriented target. Loose goals may leave every optional
// field empty; time-bound, measurable goals fill in dates and acquire
// measure targets.
type Goal struct {
	ID          int64      `json:"id"`
	ExternalID  string     `json:"external_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	// ActionPlan states how the goal is actionable.
	ActionPlan            string    `json:"action_plan,omitempty"`
	ExpectedDurationWeeks *int      `json:"expected_duration_weeks,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// Validate checks that the goal meets core requirements before storage.
func (g *Goal) Validate() error {
	if g.Title == "" {
		return &DomainError{Kind: ErrMissingRequiredField, Field: "title", Message: "goal title cannot be empty"}
	}
	if g.StartDate != nil && g.TargetDate != nil && !g.StartDate.Before(*g.TargetDate) {
		return &DomainError{Kind: ErrMissingRequiredField, Field: "start_date", Message: "goal start date must be before target date"}
	}
	return nil
}

// IsTimeBound reports whether the goal has a defined window.
func (g *Goal) IsTimeBound() bool {
	return g.StartDate != nil && g.TargetDate != nil
}
