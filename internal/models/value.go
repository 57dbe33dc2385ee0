// ABOUTME: PersonalValue is the unified record behind four logical value subtypes
// ABOUTME: ValueLevel is the discriminator; decode rejects unknown levels
package models

import "time"

// ValueLevel discriminates the logical subtype stored in the unified
// personal_values table. The set is closed; an unrecognized level on read is
// an unknown-variant error, never a silent default.
type ValueLevel string

const (
	// LevelGeneral - aspirational values, tracked loosely.
	LevelGeneral ValueLevel = "general"
	// LevelMajor - a small selection of actionable values that goals and
	// actions are expected to reflect.
	LevelMajor ValueLevel = "major"
	// LevelHighestOrder - abstract, rarely actionable values.
	LevelHighestOrder ValueLevel = "highest_order"
	// LevelLifeArea - organizational life domains, not values proper.
	LevelLifeArea ValueLevel = "life_area"
)

// ParseValueLevel dispatches on the discriminator. Unknown input returns an
// ErrUnknownVariant domain error.
func ParseValueLevel(s string) (ValueLevel, error) {
	switch ValueLevel(s) {
	case LevelGeneral, LevelMajor, LevelHighestOrder, LevelLifeArea:
		return ValueLevel(s), nil
	}
	return "", NewError(ErrUnknownVariant, "unknown value level %q", s)
}

// DefaultPriority is the mid-scale priority assigned when none is given.
const DefaultPriority = 50

// PersonalValue is a user-defined value or life area.
//
// Priority convention: lower numbers are more important, 1 is the highest
// priority. The valid range is 1-100.
type PersonalValue struct {
	ID          int64      `json:"id"`
	ExternalID  string     `json:"external_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	Level       ValueLevel `json:"level"`
	Priority    int        `json:"priority"`
	LifeDomain  string     `json:"life_domain,omitempty"`
	// AlignmentGuidance describes how a major value should show up in
	// actions and goals. Only meaningful when Level is LevelMajor.
	AlignmentGuidance string    `json:"alignment_guidance,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// Validate checks that the value meets core requirements before storage.
func (v *PersonalValue) Validate() error {
	if v.Title == "" {
		return &DomainError{Kind: ErrMissingRequiredField, Field: "title", Message: "value title cannot be empty"}
	}
	if _, err := ParseValueLevel(string(v.Level)); err != nil {
		return err
	}
	if v.Priority < 1 || v.Priority > 100 {
		return NewError(ErrMissingRequiredField, "value priority must be 1-100, got %d", v.Priority)
	}
	return nil
}
