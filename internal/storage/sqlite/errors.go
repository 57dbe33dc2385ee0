// ABOUTME: Translates storage-engine failures into the closed domain error taxonomy
// ABOUTME: Inspects structured SQLite result codes, never the message text alone
package sqlite

import (
	"errors"
	"strings"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// translateError maps a SQLite failure to a DomainError. Errors that are
// already domain errors pass through untouched; unrecognized errors are
// returned as-is so nothing is silently swallowed.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var de *models.DomainError
	if errors.As(err, &de) {
		return err
	}

	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}

	code := se.Code()
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return &models.DomainError{
			Kind:    models.ErrDuplicateRecord,
			Field:   constraintColumn(se.Error()),
			Message: "a record with the same unique value already exists",
			Err:     err,
		}
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return &models.DomainError{
			Kind:    models.ErrMissingRequiredField,
			Field:   constraintColumn(se.Error()),
			Message: "a required field is missing",
			Err:     err,
		}
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_TRIGGER:
		return &models.DomainError{
			Kind:    models.ErrForeignKeyViolation,
			Message: "a referenced record does not exist",
			Err:     err,
		}
	}

	// Primary code classification for everything the constraint switch
	// above did not catch.
	switch code & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return &models.DomainError{
			Kind:    models.ErrDuplicateRecord,
			Message: "a storage constraint was violated",
			Err:     err,
		}
	case sqlite3.SQLITE_READONLY, sqlite3.SQLITE_CANTOPEN, sqlite3.SQLITE_IOERR,
		sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_NOTADB,
		sqlite3.SQLITE_CORRUPT, sqlite3.SQLITE_FULL:
		return &models.DomainError{
			Kind:    models.ErrStorageUnavailable,
			Message: "storage is unavailable",
			Err:     err,
		}
	}

	return err
}

// isReadOnly reports whether err indicates the storage cannot be written at
// all. Only these failures permit the identity stabilizer's ephemeral-id
// fallback.
func isReadOnly(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() & 0xff {
	case sqlite3.SQLITE_READONLY, sqlite3.SQLITE_CANTOPEN:
		return true
	}
	return false
}

// constraintColumn extracts the violating column from messages of the form
// "NOT NULL constraint failed: goals.title (1299)". The trailing result code
// the driver appends is dropped. Attribution is best-effort; the error kind
// never depends on it.
func constraintColumn(msg string) string {
	if open := strings.LastIndex(msg, " ("); open >= 0 && strings.HasSuffix(msg, ")") {
		msg = msg[:open]
	}
	idx := strings.LastIndex(msg, ": ")
	if idx < 0 {
		return ""
	}
	ref := msg[idx+2:]
	if dot := strings.LastIndex(ref, "."); dot >= 0 {
		ref = ref[dot+1:]
	}
	ref = strings.TrimSpace(ref)
	if strings.ContainsAny(ref, " ()") {
		return ""
	}
	return ref
}
