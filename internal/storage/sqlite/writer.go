// ABOUTME: Write coordinator primitives: archive-then-mutate inside one transaction
// ABOUTME: Snapshots the full prior row as JSON before any update or delete
package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// snapshotRow serializes the current state of one row as a JSON object keyed
// by column name. The second return is false when the row does not exist.
func snapshotRow(tx *Tx, table string, id int64) (json.RawMessage, bool, error) {
	rows, err := tx.Query(`SELECT * FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return nil, false, translateError(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, false, err
	}
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, translateError(err)
		}
		return nil, false, nil
	}

	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, false, err
	}

	record := make(map[string]any, len(cols))
	for i, col := range cols {
		switch v := values[i].(type) {
		case []byte:
			record[col] = string(v)
		default:
			record[col] = v
		}
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, false, fmt.Errorf("serializing archive snapshot for %s id=%d: %w", table, id, err)
	}
	return data, true, nil
}

// archivePriorState writes an archive entry for the row's current state. It
// must run in the same transaction as the mutation it precedes; returning
// NotFound here aborts the whole write when the target row does not exist.
func archivePriorState(tx *Tx, table string, id int64, reason models.ArchiveReason, notes string) error {
	data, found, err := snapshotRow(tx, table, id)
	if err != nil {
		return err
	}
	if !found {
		return &models.DomainError{
			Kind:    models.ErrNotFound,
			Message: fmt.Sprintf("no %s record with id %d", table, id),
		}
	}

	_, err = tx.Exec(
		`INSERT INTO archive (source_table, source_id, record_data, reason, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		table, id, string(data), string(reason), nullString(notes), encodeTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("writing archive entry for %s id=%d: %w", table, id, translateError(err))
	}

	archivesTotal.WithLabelValues(string(reason)).Inc()
	tx.db.log.Info().Str("table", table).Int64("id", id).Str("reason", string(reason)).Msg("archived prior state")
	return nil
}

// verifyRef checks at write time that a referenced row exists, so junction
// writes surface a precise foreign-key error even when the storage engine's
// own enforcement is disabled.
func verifyRef(tx *Tx, table string, id int64, ref string) error {
	var n int
	if err := tx.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE id = ?`, id).Scan(&n); err != nil {
		return translateError(err)
	}
	if n == 0 {
		return &models.DomainError{
			Kind:      models.ErrForeignKeyViolation,
			Reference: ref,
			Message:   fmt.Sprintf("%s with id %d not found", ref, id),
		}
	}
	return nil
}

// CascadeRule names a junction table column that owns rows of a deleted
// entity. Cascaded junction rows are removed without their own archive
// entries; the archived root snapshot is the audit record.
type CascadeRule struct {
	Table  string
	Column string
}

// DeleteRecord archives then removes one row, cascades its owned junction
// rows, and prunes its identity mapping, all in one writer transaction.
func DeleteRecord(db *DB, kind models.EntityKind, table string, id int64, cascades []CascadeRule, notes string) error {
	return db.WriteTx(func(tx *Tx) error {
		if err := archivePriorState(tx, table, id, models.ArchiveDelete, notes); err != nil {
			return err
		}
		for _, c := range cascades {
			if _, err := tx.Exec(`DELETE FROM `+c.Table+` WHERE `+c.Column+` = ?`, id); err != nil {
				return fmt.Errorf("cascading delete from %s: %w", c.Table, translateError(err))
			}
		}
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE id = ?`, id); err != nil {
			return translateError(err)
		}
		if err := pruneIdentity(tx, kind, id); err != nil {
			return err
		}
		mutationsTotal.WithLabelValues(table).Inc()
		return nil
	})
}

// updateRecord archives the prior state then applies the update. The row must
// exist; a missing id is NotFound, never a silent no-op.
func updateRecord(db *DB, table string, id int64, setSQL string, args []any, notes string) error {
	return db.WriteTx(func(tx *Tx) error {
		if err := archivePriorState(tx, table, id, models.ArchiveUpdate, notes); err != nil {
			return err
		}
		args = append(args, id)
		if _, err := tx.Exec(`UPDATE `+table+` SET `+setSQL+` WHERE id = ?`, args...); err != nil {
			return translateError(err)
		}
		mutationsTotal.WithLabelValues(table).Inc()
		return nil
	})
}
