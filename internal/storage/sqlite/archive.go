// ABOUTME: Read access to the append-only archive of prior record states
// ABOUTME: Writes happen through the write coordinator; this store only lists entries
package sqlite

import (
	"database/sql"
	"encoding/json"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// ArchiveStore reads the audit trail. Entries are written by archivePriorState
// as part of update and delete transactions and are never modified afterward.
type ArchiveStore struct {
	db *DB
}

// NewArchiveStore creates an ArchiveStore.
func NewArchiveStore(db *DB) *ArchiveStore {
	return &ArchiveStore{db: db}
}

const archiveColumns = `id, source_table, source_id, record_data, reason, notes, created_at`

// Entries lists archive entries, newest first. Pass an empty sourceTable to
// list across all tables, or sourceID zero to list all rows of a table.
func (s *ArchiveStore) Entries(sourceTable string, sourceID int64, limit int) ([]models.ArchiveEntry, error) {
	query := `SELECT ` + archiveColumns + ` FROM archive`
	var args []any
	switch {
	case sourceTable != "" && sourceID > 0:
		query += ` WHERE source_table = ? AND source_id = ?`
		args = append(args, sourceTable, sourceID)
	case sourceTable != "":
		query += ` WHERE source_table = ?`
		args = append(args, sourceTable)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	out := []models.ArchiveEntry{}
	for rows.Next() {
		var (
			e       models.ArchiveEntry
			data    string
			reason  string
			notes   sql.NullString
			created string
		)
		if err := rows.Scan(&e.ID, &e.SourceTable, &e.SourceID, &data, &reason, &notes, &created); err != nil {
			return nil, err
		}
		e.RecordData = json.RawMessage(data)
		e.Reason = models.ArchiveReason(reason)
		e.Notes = notes.String
		if e.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}
