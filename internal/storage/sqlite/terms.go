// ABOUTME: Term persistence for bounded planning horizons
// ABOUTME: Goals attach to terms through term_goal_assignments rows
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// TermStore handles term persistence.
type TermStore struct {
	db  *DB
	ids *IdentityStore
}

// NewTermStore creates a TermStore.
func NewTermStore(db *DB, ids *IdentityStore) *TermStore {
	return &TermStore{db: db, ids: ids}
}

const termColumns = `id, term_number, title, description, notes, start_date, end_date, theme, reflection, status, created_at`

// Create inserts a new term.
func (s *TermStore) Create(t *models.Term) error {
	if t.Status == "" {
		t.Status = models.TermPlanned
	}
	if err := t.Validate(); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	return s.db.WriteTx(func(tx *Tx) error {
		res, err := tx.Exec(`
			INSERT INTO terms (term_number, title, description, notes, start_date, end_date, theme, reflection, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.TermNumber, nullString(t.Title), nullString(t.Description), nullString(t.Notes),
			encodeTime(t.StartDate), encodeTime(t.EndDate),
			nullString(t.Theme), nullString(t.Reflection), string(t.Status), encodeTime(t.CreatedAt))
		if err != nil {
			return translateError(err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		t.ID = id
		mutationsTotal.WithLabelValues("terms").Inc()

		mapping, err := s.ids.ExternalID(tx, models.KindTerm, id)
		if err != nil {
			return err
		}
		t.ExternalID = mapping.ExternalID
		return nil
	})
}

// GetByID retrieves a term by internal id, or nil when missing.
func (s *TermStore) GetByID(id int64) (*models.Term, error) {
	row := s.db.QueryRow(`SELECT `+termColumns+` FROM terms WHERE id = ?`, id)
	t, err := scanTerm(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	mapping, err := s.ids.ExternalID(s.db, models.KindTerm, t.ID)
	if err != nil {
		return nil, err
	}
	t.ExternalID = mapping.ExternalID
	return t, nil
}

// List returns all terms ordered by term number.
func (s *TermStore) List() ([]models.Term, error) {
	rows, err := s.db.Query(`SELECT ` + termColumns + ` FROM terms ORDER BY term_number ASC, id ASC`)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var terms []models.Term
	var ids []int64
	for rows.Next() {
		t, err := scanTerm(rows)
		if err != nil {
			return nil, err
		}
		terms = append(terms, *t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	mappings, err := s.ids.ExternalIDs(s.db, models.KindTerm, ids)
	if err != nil {
		return nil, err
	}
	for i := range terms {
		terms[i].ExternalID = mappings[terms[i].ID].ExternalID
	}
	return terms, nil
}

// Update archives the prior state then overwrites the term.
func (s *TermStore) Update(t *models.Term, notes string) error {
	if t.ID == 0 {
		return models.NewError(models.ErrNotFound, "cannot update a term without an id")
	}
	if err := t.Validate(); err != nil {
		return err
	}

	return updateRecord(s.db, "terms", t.ID,
		`term_number = ?, title = ?, description = ?, notes = ?, start_date = ?, end_date = ?, theme = ?, reflection = ?, status = ?`,
		[]any{
			t.TermNumber, nullString(t.Title), nullString(t.Description), nullString(t.Notes),
			encodeTime(t.StartDate), encodeTime(t.EndDate),
			nullString(t.Theme), nullString(t.Reflection), string(t.Status),
		}, notes)
}

// Exists reports whether a term row exists.
func (s *TermStore) Exists(id int64) (bool, error) {
	return existsByID(s.db, "terms", id)
}

// ExistsByTitle reports whether a term with the title exists,
// case-insensitively.
func (s *TermStore) ExistsByTitle(title string) (bool, error) {
	return existsByTitle(s.db, "terms", title)
}

func scanTerm(row rowScanner) (*models.Term, error) {
	var (
		t          models.Term
		title      sql.NullString
		desc       sql.NullString
		notes      sql.NullString
		startDate  string
		endDate    string
		theme      sql.NullString
		reflection sql.NullString
		status     string
		createdAt  string
	)
	if err := row.Scan(&t.ID, &t.TermNumber, &title, &desc, &notes, &startDate, &endDate, &theme, &reflection, &status, &createdAt); err != nil {
		return nil, err
	}

	t.Title = title.String
	t.Description = desc.String
	t.Notes = notes.String
	t.Theme = theme.String
	t.Reflection = reflection.String
	t.Status = models.TermStatus(status)

	var err error
	if t.StartDate, err = parseTime(startDate); err != nil {
		return nil, err
	}
	if t.EndDate, err = parseTime(endDate); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}
