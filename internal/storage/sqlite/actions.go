// ABOUTME: Action persistence: encode/decode between action rows and domain records
// ABOUTME: Measurements attach through measured_actions rows, not inline columns
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// ActionStore handles action persistence.
type ActionStore struct {
	db  *DB
	ids *IdentityStore
}

// NewActionStore creates an ActionStore.
func NewActionStore(db *DB, ids *IdentityStore) *ActionStore {
	return &ActionStore{db: db, ids: ids}
}

const actionColumns = `id, title, description, notes, start_time, duration_minutes, created_at`

// Create inserts a new action and populates its id and external id.
func (s *ActionStore) Create(a *models.Action) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	return s.db.WriteTx(func(tx *Tx) error {
		res, err := tx.Exec(`
			INSERT INTO actions (title, description, notes, start_time, duration_minutes, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, a.Title, nullString(a.Description), nullString(a.Notes),
			encodeTimePtr(a.StartTime), nullFloat(a.DurationMinutes), encodeTime(a.CreatedAt))
		if err != nil {
			return translateError(err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = id
		mutationsTotal.WithLabelValues("actions").Inc()

		mapping, err := s.ids.ExternalID(tx, models.KindAction, id)
		if err != nil {
			return err
		}
		a.ExternalID = mapping.ExternalID
		return nil
	})
}

// GetByID retrieves an action by internal id, or nil when missing.
func (s *ActionStore) GetByID(id int64) (*models.Action, error) {
	row := s.db.QueryRow(`SELECT `+actionColumns+` FROM actions WHERE id = ?`, id)
	a, err := scanAction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	mapping, err := s.ids.ExternalID(s.db, models.KindAction, a.ID)
	if err != nil {
		return nil, err
	}
	a.ExternalID = mapping.ExternalID
	return a, nil
}

// List returns all actions, most recent first, with external ids populated.
func (s *ActionStore) List() ([]models.Action, error) {
	rows, err := s.db.Query(`SELECT ` + actionColumns + ` FROM actions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var actions []models.Action
	var ids []int64
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, *a)
		ids = append(ids, a.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	mappings, err := s.ids.ExternalIDs(s.db, models.KindAction, ids)
	if err != nil {
		return nil, err
	}
	for i := range actions {
		actions[i].ExternalID = mappings[actions[i].ID].ExternalID
	}
	return actions, nil
}

// Update archives the prior state then overwrites the action.
func (s *ActionStore) Update(a *models.Action, notes string) error {
	if a.ID == 0 {
		return models.NewError(models.ErrNotFound, "cannot update an action without an id")
	}
	if err := a.Validate(); err != nil {
		return err
	}

	return updateRecord(s.db, "actions", a.ID,
		`title = ?, description = ?, notes = ?, start_time = ?, duration_minutes = ?`,
		[]any{
			a.Title, nullString(a.Description), nullString(a.Notes),
			encodeTimePtr(a.StartTime), nullFloat(a.DurationMinutes),
		}, notes)
}

// Exists reports whether an action row exists.
func (s *ActionStore) Exists(id int64) (bool, error) {
	return existsByID(s.db, "actions", id)
}

// ExistsByTitle reports whether an action with the title exists,
// case-insensitively.
func (s *ActionStore) ExistsByTitle(title string) (bool, error) {
	return existsByTitle(s.db, "actions", title)
}

func scanAction(row rowScanner) (*models.Action, error) {
	var (
		a         models.Action
		desc      sql.NullString
		notes     sql.NullString
		start     sql.NullString
		duration  sql.NullFloat64
		createdAt string
	)
	if err := row.Scan(&a.ID, &a.Title, &desc, &notes, &start, &duration, &createdAt); err != nil {
		return nil, err
	}

	a.Description = desc.String
	a.Notes = notes.String
	a.DurationMinutes = floatPtr(duration.Float64, duration.Valid)

	var err error
	if a.StartTime, err = parseTimePtr(start); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}
