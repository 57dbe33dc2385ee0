// ABOUTME: Goal persistence: encode/decode between goal rows and domain records
// ABOUTME: All mutations go through the archive-then-mutate write coordinator
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// GoalStore handles goal persistence.
type GoalStore struct {
	db  *DB
	ids *IdentityStore
}

// NewGoalStore creates a GoalStore.
func NewGoalStore(db *DB, ids *IdentityStore) *GoalStore {
	return &GoalStore{db: db, ids: ids}
}

const goalColumns = `id, title, description, notes, start_date, target_date, action_plan, expected_duration_weeks, created_at`

// goalOrder sorts by ascending target date with undated goals after all
// dated ones, then by creation recency.
const goalOrder = `ORDER BY (target_date IS NULL), target_date ASC, created_at DESC, id DESC`

// Create inserts a new goal and populates its id and external id. Titles are
// unique case-insensitively at the application layer.
func (s *GoalStore) Create(g *models.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	return s.db.WriteTx(func(tx *Tx) error {
		var n int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM goals WHERE LOWER(title) = LOWER(?)`, g.Title).Scan(&n); err != nil {
			return translateError(err)
		}
		if n > 0 {
			return models.NewError(models.ErrDuplicateRecord, "a goal titled %q already exists", g.Title)
		}

		res, err := tx.Exec(`
			INSERT INTO goals (title, description, notes, start_date, target_date, action_plan, expected_duration_weeks, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, g.Title, nullString(g.Description), nullString(g.Notes),
			encodeTimePtr(g.StartDate), encodeTimePtr(g.TargetDate),
			nullString(g.ActionPlan), nullInt(g.ExpectedDurationWeeks), encodeTime(g.CreatedAt))
		if err != nil {
			return translateError(err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		g.ID = id
		mutationsTotal.WithLabelValues("goals").Inc()

		mapping, err := s.ids.ExternalID(tx, models.KindGoal, id)
		if err != nil {
			return err
		}
		g.ExternalID = mapping.ExternalID
		return nil
	})
}

// GetByID retrieves a goal by internal id, stabilizing its external id.
// Returns nil when no such goal exists.
func (s *GoalStore) GetByID(id int64) (*models.Goal, error) {
	row := s.db.QueryRow(`SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	mapping, err := s.ids.ExternalID(s.db, models.KindGoal, g.ID)
	if err != nil {
		return nil, err
	}
	g.ExternalID = mapping.ExternalID
	return g, nil
}

// GetByExternalID retrieves a goal via its stable external id.
func (s *GoalStore) GetByExternalID(externalID string) (*models.Goal, error) {
	internal, ok, err := s.ids.InternalID(s.db, models.KindGoal, externalID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return s.GetByID(internal)
}

// List returns all goals in the default order with external ids populated.
func (s *GoalStore) List() ([]models.Goal, error) {
	rows, err := s.db.Query(`SELECT ` + goalColumns + ` FROM goals ` + goalOrder)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var goals []models.Goal
	var ids []int64
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
		ids = append(ids, g.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	mappings, err := s.ids.ExternalIDs(s.db, models.KindGoal, ids)
	if err != nil {
		return nil, err
	}
	for i := range goals {
		goals[i].ExternalID = mappings[goals[i].ID].ExternalID
	}
	return goals, nil
}

// Update archives the prior state then overwrites the goal. The goal must
// already exist.
func (s *GoalStore) Update(g *models.Goal, notes string) error {
	if g.ID == 0 {
		return models.NewError(models.ErrNotFound, "cannot update a goal without an id")
	}
	if err := g.Validate(); err != nil {
		return err
	}

	return updateRecord(s.db, "goals", g.ID,
		`title = ?, description = ?, notes = ?, start_date = ?, target_date = ?, action_plan = ?, expected_duration_weeks = ?`,
		[]any{
			g.Title, nullString(g.Description), nullString(g.Notes),
			encodeTimePtr(g.StartDate), encodeTimePtr(g.TargetDate),
			nullString(g.ActionPlan), nullInt(g.ExpectedDurationWeeks),
		}, notes)
}

// Exists reports whether a goal row exists.
func (s *GoalStore) Exists(id int64) (bool, error) {
	return existsByID(s.db, "goals", id)
}

// ExistsByTitle reports whether a goal with the title exists,
// case-insensitively.
func (s *GoalStore) ExistsByTitle(title string) (bool, error) {
	return existsByTitle(s.db, "goals", title)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*models.Goal, error) {
	var (
		g          models.Goal
		desc       sql.NullString
		notes      sql.NullString
		startDate  sql.NullString
		targetDate sql.NullString
		plan       sql.NullString
		weeks      sql.NullInt64
		createdAt  string
	)
	if err := row.Scan(&g.ID, &g.Title, &desc, &notes, &startDate, &targetDate, &plan, &weeks, &createdAt); err != nil {
		return nil, err
	}

	g.Description = desc.String
	g.Notes = notes.String
	g.ActionPlan = plan.String
	g.ExpectedDurationWeeks = intPtr(weeks.Int64, weeks.Valid)

	var err error
	if g.StartDate, err = parseTimePtr(startDate); err != nil {
		return nil, err
	}
	if g.TargetDate, err = parseTimePtr(targetDate); err != nil {
		return nil, err
	}
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &g, nil
}

// existsByID is shared by every store's Exists.
func existsByID(q Querier, table string, id int64) (bool, error) {
	var n int
	if err := q.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE id = ?`, id).Scan(&n); err != nil {
		return false, translateError(err)
	}
	return n > 0, nil
}

// existsByTitle is shared by every store's case-insensitive title check.
func existsByTitle(q Querier, table, title string) (bool, error) {
	var n int
	if err := q.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE LOWER(title) = LOWER(?)`, title).Scan(&n); err != nil {
		return false, translateError(err)
	}
	return n > 0, nil
}
