// ABOUTME: Identity stabilizer mapping volatile integer row ids to durable external ids
// ABOUTME: Mappings are created lazily on first read and never regenerated
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// Mapping couples an external id with whether it was durably persisted.
// Durable is false only when storage is read-only and the id could not be
// written; callers can then treat the id as best-effort.
type Mapping struct {
	ExternalID string
	Durable    bool
}

// IdentityStore persists (entity type, internal id) -> external id mappings.
type IdentityStore struct {
	db  *DB
	log zerolog.Logger
}

// NewIdentityStore creates an IdentityStore.
func NewIdentityStore(db *DB) *IdentityStore {
	return &IdentityStore{db: db, log: db.log}
}

// ExternalID returns the stable external id for an internal row id, creating
// and persisting a new mapping on first read. Repeated calls on writable
// storage always return the same id. The opportunistic persist is the one
// place a read performs a write; its failure on read-only storage downgrades
// the result to an ephemeral id instead of failing the read.
func (s *IdentityStore) ExternalID(q Querier, kind models.EntityKind, internalID int64) (Mapping, error) {
	var ext string
	err := q.QueryRow(
		`SELECT external_id FROM identity_mappings WHERE entity_type = ? AND internal_id = ?`,
		string(kind), internalID,
	).Scan(&ext)
	if err == nil {
		return Mapping{ExternalID: ext, Durable: true}, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Mapping{}, translateError(err)
	}

	ext = uuid.NewString()
	_, err = q.Exec(
		`INSERT INTO identity_mappings (entity_type, internal_id, external_id, created_at) VALUES (?, ?, ?, ?)`,
		string(kind), internalID, ext, encodeTime(time.Now()),
	)
	if err != nil {
		if isReadOnly(err) {
			s.log.Warn().Str("entity", string(kind)).Int64("id", internalID).
				Msg("storage is read-only, returning ephemeral external id")
			return Mapping{ExternalID: ext, Durable: false}, nil
		}
		// A concurrent reader may have persisted the mapping first; the
		// stored id wins so the mapping stays 1:1.
		if models.IsKind(translateError(err), models.ErrDuplicateRecord) {
			var existing string
			if selErr := q.QueryRow(
				`SELECT external_id FROM identity_mappings WHERE entity_type = ? AND internal_id = ?`,
				string(kind), internalID,
			).Scan(&existing); selErr == nil {
				return Mapping{ExternalID: existing, Durable: true}, nil
			}
		}
		return Mapping{}, translateError(err)
	}

	return Mapping{ExternalID: ext, Durable: true}, nil
}

// ExternalIDs bulk-stabilizes a set of internal ids with a bounded number of
// statements: one lookup plus at most one insert, regardless of len(ids).
// Like ExternalID, each result carries whether its mapping was durably
// persisted; only a read-only persist failure yields ephemeral entries.
func (s *IdentityStore) ExternalIDs(q Querier, kind models.EntityKind, ids []int64) (map[int64]Mapping, error) {
	out := make(map[int64]Mapping, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, 0, len(ids)+1)
	args = append(args, string(kind))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := q.Query(
		`SELECT internal_id, external_id FROM identity_mappings WHERE entity_type = ? AND internal_id IN (`+placeholders+`)`,
		args...,
	)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var internal int64
		var ext string
		if err := rows.Scan(&internal, &ext); err != nil {
			return nil, err
		}
		out[internal] = Mapping{ExternalID: ext, Durable: true}
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	now := encodeTime(time.Now())
	var sb strings.Builder
	sb.WriteString(`INSERT INTO identity_mappings (entity_type, internal_id, external_id, created_at) VALUES `)
	insertArgs := make([]any, 0, len(missing)*4)
	for i, id := range missing {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?)")
		ext := uuid.NewString()
		out[id] = Mapping{ExternalID: ext, Durable: true}
		insertArgs = append(insertArgs, string(kind), id, ext, now)
	}
	if _, err := q.Exec(sb.String(), insertArgs...); err != nil {
		if isReadOnly(err) {
			s.log.Warn().Str("entity", string(kind)).Int("count", len(missing)).
				Msg("storage is read-only, returning ephemeral external ids")
			for _, id := range missing {
				m := out[id]
				m.Durable = false
				out[id] = m
			}
			return out, nil
		}
		return nil, translateError(err)
	}
	return out, nil
}

// InternalID reverse-looks-up the internal row id for an external id. The
// second return is false when no mapping exists.
func (s *IdentityStore) InternalID(q Querier, kind models.EntityKind, externalID string) (int64, bool, error) {
	var internal int64
	err := q.QueryRow(
		`SELECT internal_id FROM identity_mappings WHERE entity_type = ? AND external_id = ?`,
		string(kind), externalID,
	).Scan(&internal)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, translateError(err)
	}
	return internal, true, nil
}

// pruneIdentity removes the mapping for a deleted row. This is the only path
// that ever deletes a mapping; it runs inside the owning row's delete
// transaction.
func pruneIdentity(tx *Tx, kind models.EntityKind, internalID int64) error {
	if _, err := tx.Exec(
		`DELETE FROM identity_mappings WHERE entity_type = ? AND internal_id = ?`,
		string(kind), internalID,
	); err != nil {
		return fmt.Errorf("pruning identity mapping: %w", translateError(err))
	}
	return nil
}
