// ABOUTME: Measure is a catalog entry defining a unit of measurement
// ABOUTME: Unique on unit; optionally convertible to a canonical unit
package models

import "time"

// Measure defines a unit of measurement ("km", "hours", "pages").
// The unit string is unique across the catalog.
type Measure struct {
	ID          int64  `json:"id"`
	ExternalID  string `json:"external_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Notes       string `json:"notes,omitempty"`
	Unit        string `json:"unit"`
	Category    string `json:"category,omitempty"`
	// CanonicalUnit and ConversionFactor allow normalizing related units
	// (e.g. minutes -> hours at 1/60).
	CanonicalUnit    string    `json:"canonical_unit,omitempty"`
	ConversionFactor *float64  `json:"conversion_factor,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Validate checks that the measure meets core requirements before storage.
func (m *Measure) Validate() error {
	if m.Title == "" {
		return &DomainError{Kind: ErrMissingRequiredField, Field: "title", Message: "measure title cannot be empty"}
	}
	if m.Unit == "" {
		return &DomainError{Kind: ErrMissingRequiredField, Field: "unit", Message: "measure unit cannot be empty"}
	}
	return nil
}
