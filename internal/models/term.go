// ABOUTME: Term is a bounded planning horizon that goals are assigned to
// ABOUTME: Typically ten weeks; carries a theme and a post-term reflection
package models

import "time"

// TermStatus tracks where a term sits in its lifecycle.
type TermStatus string

const (
	TermPlanned   TermStatus = "planned"
	TermActive    TermStatus = "active"
	TermCompleted TermStatus = "completed"
	TermAbandoned TermStatus = "abandoned"
)

// DefaultTermDays is the length of a standard ten-week term.
const DefaultTermDays = 70

// Term is a planning horizon with a sequential number and a date window.
type Term struct {
	ID          int64      `json:"id"`
	ExternalID  string     `json:"external_id,omitempty"`
	TermNumber  int        `json:"term_number"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Theme       string     `json:"theme,omitempty"`
	Reflection  string     `json:"reflection,omitempty"`
	Status      TermStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Validate checks that the term meets core requirements before storage.
func (t *Term) Validate() error {
	if t.TermNumber < 1 {
		return NewError(ErrMissingRequiredField, "term number must be positive, got %d", t.TermNumber)
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return &DomainError{Kind: ErrMissingRequiredField, Field: "start_date", Message: "term requires start and end dates"}
	}
	if !t.StartDate.Before(t.EndDate) {
		return &DomainError{Kind: ErrMissingRequiredField, Field: "start_date", Message: "term start date must be before end date"}
	}
	switch t.Status {
	case TermPlanned, TermActive, TermCompleted, TermAbandoned:
	case "":
	default:
		return NewError(ErrUnknownVariant, "invalid term status %q", t.Status)
	}
	return nil
}

// IsActive reports whether the term window contains the given time.
func (t *Term) IsActive(at time.Time) bool {
	return !at.Before(t.StartDate) && !at.After(t.EndDate)
}
