// ABOUTME: Shared entity kind enumeration used across storage and API layers
// ABOUTME: Identifies which logical table a record or identifier belongs to
package models

import "fmt"

// EntityKind identifies one of the core entity tables.
type EntityKind string

const (
	KindAction  EntityKind = "action"
	KindGoal    EntityKind = "goal"
	KindMeasure EntityKind = "measure"
	KindValue   EntityKind = "personal_value"
	KindTerm    EntityKind = "term"
)

// ParseEntityKind validates a kind string from an external caller.
func ParseEntityKind(s string) (EntityKind, error) {
	switch EntityKind(s) {
	case KindAction, KindGoal, KindMeasure, KindValue, KindTerm:
		return EntityKind(s), nil
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}
