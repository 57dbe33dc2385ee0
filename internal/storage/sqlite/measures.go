// ABOUTME: Measure catalog persistence; units are unique across the catalog
// ABOUTME: Duplicate units surface as DuplicateRecord via constraint translation
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// MeasureStore handles measure catalog persistence.
type MeasureStore struct {
	db  *DB
	ids *IdentityStore
}

// NewMeasureStore creates a MeasureStore.
func NewMeasureStore(db *DB, ids *IdentityStore) *MeasureStore {
	return &MeasureStore{db: db, ids: ids}
}

const measureColumns = `id, title, description, notes, unit, category, canonical_unit, conversion_factor, created_at`

// Create inserts a new measure. The unit uniqueness constraint is enforced by
// the schema; a duplicate surfaces as DuplicateRecord.
func (s *MeasureStore) Create(m *models.Measure) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	return s.db.WriteTx(func(tx *Tx) error {
		res, err := tx.Exec(`
			INSERT INTO measures (title, description, notes, unit, category, canonical_unit, conversion_factor, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, m.Title, nullString(m.Description), nullString(m.Notes), m.Unit,
			nullString(m.Category), nullString(m.CanonicalUnit),
			nullFloat(m.ConversionFactor), encodeTime(m.CreatedAt))
		if err != nil {
			return translateError(err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		m.ID = id
		mutationsTotal.WithLabelValues("measures").Inc()

		mapping, err := s.ids.ExternalID(tx, models.KindMeasure, id)
		if err != nil {
			return err
		}
		m.ExternalID = mapping.ExternalID
		return nil
	})
}

// GetByID retrieves a measure by internal id, or nil when missing.
func (s *MeasureStore) GetByID(id int64) (*models.Measure, error) {
	row := s.db.QueryRow(`SELECT `+measureColumns+` FROM measures WHERE id = ?`, id)
	m, err := scanMeasure(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	mapping, err := s.ids.ExternalID(s.db, models.KindMeasure, m.ID)
	if err != nil {
		return nil, err
	}
	m.ExternalID = mapping.ExternalID
	return m, nil
}

// GetByUnit retrieves a measure by its unique unit string, or nil when no
// catalog entry carries it.
func (s *MeasureStore) GetByUnit(unit string) (*models.Measure, error) {
	row := s.db.QueryRow(`SELECT `+measureColumns+` FROM measures WHERE unit = ?`, unit)
	m, err := scanMeasure(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List returns the measure catalog ordered by unit.
func (s *MeasureStore) List() ([]models.Measure, error) {
	rows, err := s.db.Query(`SELECT ` + measureColumns + ` FROM measures ORDER BY unit ASC`)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var measures []models.Measure
	var ids []int64
	for rows.Next() {
		m, err := scanMeasure(rows)
		if err != nil {
			return nil, err
		}
		measures = append(measures, *m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	mappings, err := s.ids.ExternalIDs(s.db, models.KindMeasure, ids)
	if err != nil {
		return nil, err
	}
	for i := range measures {
		measures[i].ExternalID = mappings[measures[i].ID].ExternalID
	}
	return measures, nil
}

// Update archives the prior state then overwrites the measure.
func (s *MeasureStore) Update(m *models.Measure, notes string) error {
	if m.ID == 0 {
		return models.NewError(models.ErrNotFound, "cannot update a measure without an id")
	}
	if err := m.Validate(); err != nil {
		return err
	}

	return updateRecord(s.db, "measures", m.ID,
		`title = ?, description = ?, notes = ?, unit = ?, category = ?, canonical_unit = ?, conversion_factor = ?`,
		[]any{
			m.Title, nullString(m.Description), nullString(m.Notes), m.Unit,
			nullString(m.Category), nullString(m.CanonicalUnit), nullFloat(m.ConversionFactor),
		}, notes)
}

// Exists reports whether a measure row exists.
func (s *MeasureStore) Exists(id int64) (bool, error) {
	return existsByID(s.db, "measures", id)
}

// ExistsByTitle reports whether a measure with the title exists,
// case-insensitively.
func (s *MeasureStore) ExistsByTitle(title string) (bool, error) {
	return existsByTitle(s.db, "measures", title)
}

func scanMeasure(row rowScanner) (*models.Measure, error) {
	var (
		m         models.Measure
		desc      sql.NullString
		notes     sql.NullString
		category  sql.NullString
		canonical sql.NullString
		factor    sql.NullFloat64
		createdAt string
	)
	if err := row.Scan(&m.ID, &m.Title, &desc, &notes, &m.Unit, &category, &canonical, &factor, &createdAt); err != nil {
		return nil, err
	}

	m.Description = desc.String
	m.Notes = notes.String
	m.Category = category.String
	m.CanonicalUnit = canonical.String
	m.ConversionFactor = floatPtr(factor.Float64, factor.Valid)

	var err error
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &m, nil
}
