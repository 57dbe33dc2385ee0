// ABOUTME: Action represents something already done - the primary logged entity
// ABOUTME: Optionally carries timing data; measurements live in measured_actions rows
package models

import "time"

// Action is a past-oriented record of something the user did.
type Action struct {
	ID          int64      `json:"id"`
	ExternalID  string     `json:"external_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	// DurationMinutes is how long the action took, when tracked.
	DurationMinutes *float64  `json:"duration_minutes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Validate checks that the action meets core requirements before storage.
func (a *Action) Validate() error {
	if a.Title == "" {
		return &DomainError{Kind: ErrMissingRequiredField, Field: "title", Message: "action title cannot be empty"}
	}
	if a.DurationMinutes != nil && *a.DurationMinutes < 0 {
		return &DomainError{Kind: ErrMissingRequiredField, Field: "duration_minutes", Message: "action duration cannot be negative"}
	}
	return nil
}
