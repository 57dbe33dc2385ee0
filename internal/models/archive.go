// ABOUTME: ArchiveEntry is an append-only snapshot of a record's prior state
// ABOUTME: Written in the same transaction as the update or delete it precedes
package models

import (
	"encoding/json"
	"time"
)

// ArchiveReason states why a record was archived.
type ArchiveReason string

const (
	ArchiveUpdate ArchiveReason = "update"
	ArchiveDelete ArchiveReason = "delete"
	ArchiveManual ArchiveReason = "manual"
)

// ArchiveEntry preserves the full prior state of a record before a mutation.
// RecordData is the record serialized as JSON with ISO-8601 dates, so
// historical snapshots stay parseable even as the live schema evolves.
type ArchiveEntry struct {
	ID          int64           `json:"id"`
	SourceTable string          `json:"source_table"`
	SourceID    int64           `json:"source_id"`
	RecordData  json.RawMessage `json:"record_data"`
	Reason      ArchiveReason   `json:"reason"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
