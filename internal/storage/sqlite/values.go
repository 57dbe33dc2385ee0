// ABOUTME: PersonalValue persistence over the unified polymorphic value table
// ABOUTME: The value_level discriminator is dispatched here and nowhere else
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// ValueStore handles personal value persistence. One physical table encodes
// the four logical value levels; decode rejects unrecognized discriminators
// instead of defaulting.
type ValueStore struct {
	db  *DB
	ids *IdentityStore
}

// NewValueStore creates a ValueStore.
func NewValueStore(db *DB, ids *IdentityStore) *ValueStore {
	return &ValueStore{db: db, ids: ids}
}

const valueColumns = `id, title, description, notes, value_level, priority, life_domain, alignment_guidance, created_at`

// Create inserts a new personal value.
func (s *ValueStore) Create(v *models.PersonalValue) error {
	if v.Priority == 0 {
		v.Priority = models.DefaultPriority
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}

	return s.db.WriteTx(func(tx *Tx) error {
		res, err := tx.Exec(`
			INSERT INTO personal_values (title, description, notes, value_level, priority, life_domain, alignment_guidance, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, v.Title, nullString(v.Description), nullString(v.Notes), string(v.Level),
			v.Priority, nullString(v.LifeDomain), nullString(v.AlignmentGuidance), encodeTime(v.CreatedAt))
		if err != nil {
			return translateError(err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		v.ID = id
		mutationsTotal.WithLabelValues("personal_values").Inc()

		mapping, err := s.ids.ExternalID(tx, models.KindValue, id)
		if err != nil {
			return err
		}
		v.ExternalID = mapping.ExternalID
		return nil
	})
}

// GetByID retrieves a personal value by internal id, or nil when missing.
func (s *ValueStore) GetByID(id int64) (*models.PersonalValue, error) {
	row := s.db.QueryRow(`SELECT `+valueColumns+` FROM personal_values WHERE id = ?`, id)
	v, err := scanValue(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	mapping, err := s.ids.ExternalID(s.db, models.KindValue, v.ID)
	if err != nil {
		return nil, err
	}
	v.ExternalID = mapping.ExternalID
	return v, nil
}

// List returns personal values, optionally filtered to one level, ordered by
// priority (most important first) then title.
func (s *ValueStore) List(level *models.ValueLevel) ([]models.PersonalValue, error) {
	query := `SELECT ` + valueColumns + ` FROM personal_values`
	var args []any
	if level != nil {
		query += ` WHERE value_level = ?`
		args = append(args, string(*level))
	}
	query += ` ORDER BY priority ASC, title ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var values []models.PersonalValue
	var ids []int64
	for rows.Next() {
		v, err := scanValue(rows)
		if err != nil {
			return nil, err
		}
		values = append(values, *v)
		ids = append(ids, v.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	mappings, err := s.ids.ExternalIDs(s.db, models.KindValue, ids)
	if err != nil {
		return nil, err
	}
	for i := range values {
		values[i].ExternalID = mappings[values[i].ID].ExternalID
	}
	return values, nil
}

// Update archives the prior state then overwrites the value.
func (s *ValueStore) Update(v *models.PersonalValue, notes string) error {
	if v.ID == 0 {
		return models.NewError(models.ErrNotFound, "cannot update a value without an id")
	}
	if err := v.Validate(); err != nil {
		return err
	}

	return updateRecord(s.db, "personal_values", v.ID,
		`title = ?, description = ?, notes = ?, value_level = ?, priority = ?, life_domain = ?, alignment_guidance = ?`,
		[]any{
			v.Title, nullString(v.Description), nullString(v.Notes), string(v.Level),
			v.Priority, nullString(v.LifeDomain), nullString(v.AlignmentGuidance),
		}, notes)
}

// Exists reports whether a value row exists.
func (s *ValueStore) Exists(id int64) (bool, error) {
	return existsByID(s.db, "personal_values", id)
}

// ExistsByTitle reports whether a value with the title exists,
// case-insensitively.
func (s *ValueStore) ExistsByTitle(title string) (bool, error) {
	return existsByTitle(s.db, "personal_values", title)
}

func scanValue(row rowScanner) (*models.PersonalValue, error) {
	var (
		v         models.PersonalValue
		desc      sql.NullString
		notes     sql.NullString
		level     string
		domain    sql.NullString
		guidance  sql.NullString
		createdAt string
	)
	if err := row.Scan(&v.ID, &v.Title, &desc, &notes, &level, &v.Priority, &domain, &guidance, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := models.ParseValueLevel(level)
	if err != nil {
		return nil, err
	}
	v.Level = parsed
	v.Description = desc.String
	v.Notes = notes.String
	v.LifeDomain = domain.String
	v.AlignmentGuidance = guidance.String

	if v.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &v, nil
}
