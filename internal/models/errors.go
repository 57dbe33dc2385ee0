// ABOUTME: Closed domain error taxonomy surfaced by the storage layer
// ABOUTME: Storage-engine failures are translated into these kinds before crossing the API
package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a storage failure into a closed, machine-readable set.
// Human-readable text may vary; the kind never leaks storage-engine vocabulary.
type ErrorKind string

const (
	// ErrDuplicateRecord - a uniqueness constraint was violated (duplicate title, duplicate unit).
	ErrDuplicateRecord ErrorKind = "duplicate_record"
	// ErrMissingRequiredField - a not-null constraint or required-field validation failed.
	ErrMissingRequiredField ErrorKind = "missing_required_field"
	// ErrForeignKeyViolation - a referenced entity does not exist.
	ErrForeignKeyViolation ErrorKind = "foreign_key_violation"
	// ErrNotFound - update/delete targeted a nonexistent id.
	ErrNotFound ErrorKind = "not_found"
	// ErrUnknownVariant - a polymorphic discriminator was not recognized on read.
	ErrUnknownVariant ErrorKind = "unknown_variant"
	// ErrStorageUnavailable - connectivity/IO failure, not a data problem.
	ErrStorageUnavailable ErrorKind = "storage_unavailable"
)

// DomainError is the only error type the Read/Write API surfaces for
// storage-level failures.
type DomainError struct {
	Kind ErrorKind
	// Reference names the violating relation for foreign key errors
	// ("measure", "value", "term", "goal", "action") when it can be identified.
	Reference string
	// Field names the offending column for missing-field errors when known.
	Field   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Kind)
}

func (e *DomainError) Unwrap() error { return e.Err }

// Is lets callers match with errors.Is(err, &DomainError{Kind: ...}).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Reference == "" || t.Reference == e.Reference)
}

// NewError builds a DomainError with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err carries the given error kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

// KindOf extracts the error kind, or empty string for untranslated errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
