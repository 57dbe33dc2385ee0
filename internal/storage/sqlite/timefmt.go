// ABOUTME: ISO-8601 text codec for all stored dates and timestamps
// ABOUTME: Encode and decode round-trip exactly, fractional seconds included
package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// encodedTimeLayout is RFC 3339 with a fixed nine-digit fraction. The fixed
// width keeps lexicographic ordering of stored text chronological, so SQL
// ORDER BY and the latest-created-at tie-breaks compare exactly.
const encodedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// encodeTime renders a timestamp as RFC 3339 text in UTC. Fractional seconds
// present on the value are preserved.
func encodeTime(t time.Time) string {
	return t.UTC().Format(encodedTimeLayout)
}

// encodeTimePtr returns a bindable value for an optional timestamp.
func encodeTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return encodeTime(*t)
}

// parseTime decodes a stored ISO-8601 timestamp. Bare dates are accepted for
// date-only columns.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// parseTimePtr decodes an optional stored timestamp.
func parseTimePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
