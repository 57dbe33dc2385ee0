// ABOUTME: Persistence for junction relationships between core entities
// ABOUTME: Verifies both referenced rows exist at write time before inserting
package sqlite

import (
	"database/sql"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// RelationStore handles the five junction tables. Every insert verifies both
// referenced rows inside the writer transaction so callers get a precise
// foreign-key error naming the missing side.
type RelationStore struct {
	db *DB
}

// NewRelationStore creates a RelationStore.
func NewRelationStore(db *DB) *RelationStore {
	return &RelationStore{db: db}
}

// CreateMeasuredAction records a measurement taken by an action.
func (s *RelationStore) CreateMeasuredAction(ma *models.MeasuredAction) error {
	if err := ma.Validate(); err != nil {
		return err
	}
	if ma.CreatedAt.IsZero() {
		ma.CreatedAt = time.Now()
	}

	return s.db.WriteTx(func(tx *Tx) error {
		if err := verifyRef(tx, "actions", ma.ActionID, "action"); err != nil {
			return err
		}
		if err := verifyRef(tx, "measures", ma.MeasureID, "measure"); err != nil {
			return err
		}

		res, err := tx.Exec(`
			INSERT INTO measured_actions (action_id, measure_id, value, created_at)
			VALUES (?, ?, ?, ?)
		`, ma.ActionID, ma.MeasureID, ma.Value, encodeTime(ma.CreatedAt))
		if err != nil {
			return translateError(err)
		}
		ma.ID, err = res.LastInsertId()
		mutationsTotal.WithLabelValues("measured_actions").Inc()
		return err
	})
}

// CreateGoalMeasureTarget sets a goal's target on one measure.
func (s *RelationStore) CreateGoalMeasureTarget(t *models.GoalMeasureTarget) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	return s.db.WriteTx(func(tx *Tx) error {
		if err := verifyRef(tx, "goals", t.GoalID, "goal"); err != nil {
			return err
		}
		if err := verifyRef(tx, "measures", t.MeasureID, "measure"); err != nil {
			return err
		}

		res, err := tx.Exec(`
			INSERT INTO goal_measure_targets (goal_id, measure_id, target_value, created_at)
			VALUES (?, ?, ?, ?)
		`, t.GoalID, t.MeasureID, t.TargetValue, encodeTime(t.CreatedAt))
		if err != nil {
			return translateError(err)
		}
		t.ID, err = res.LastInsertId()
		mutationsTotal.WithLabelValues("goal_measure_targets").Inc()
		return err
	})
}

// CreateGoalValueAlignment declares that a goal serves a value.
func (s *RelationStore) CreateGoalValueAlignment(a *models.GoalValueAlignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	return s.db.WriteTx(func(tx *Tx) error {
		if err := verifyRef(tx, "goals", a.GoalID, "goal"); err != nil {
			return err
		}
		if err := verifyRef(tx, "personal_values", a.ValueID, "value"); err != nil {
			return err
		}

		res, err := tx.Exec(`
			INSERT INTO goal_value_alignments (goal_id, value_id, alignment_strength, note, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, a.GoalID, a.ValueID, nullInt(a.AlignmentStrength), nullString(a.Note), encodeTime(a.CreatedAt))
		if err != nil {
			return translateError(err)
		}
		a.ID, err = res.LastInsertId()
		mutationsTotal.WithLabelValues("goal_value_alignments").Inc()
		return err
	})
}

// CreateActionGoalContribution attributes an action to a goal.
func (s *RelationStore) CreateActionGoalContribution(c *models.ActionGoalContribution) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	return s.db.WriteTx(func(tx *Tx) error {
		if err := verifyRef(tx, "actions", c.ActionID, "action"); err != nil {
			return err
		}
		if err := verifyRef(tx, "goals", c.GoalID, "goal"); err != nil {
			return err
		}
		if c.MeasureID != nil {
			if err := verifyRef(tx, "measures", *c.MeasureID, "measure"); err != nil {
				return err
			}
		}

		res, err := tx.Exec(`
			INSERT INTO action_goal_contributions (action_id, goal_id, contribution, measure_id, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, c.ActionID, c.GoalID, nullFloat(c.Contribution), nullInt64(c.MeasureID), encodeTime(c.CreatedAt))
		if err != nil {
			return translateError(err)
		}
		c.ID, err = res.LastInsertId()
		mutationsTotal.WithLabelValues("action_goal_contributions").Inc()
		return err
	})
}

// CreateTermGoalAssignment places a goal in a term. Multiple assignments per
// goal are permitted by the schema; readers keep the most recent one.
func (s *RelationStore) CreateTermGoalAssignment(a *models.TermGoalAssignment) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	return s.db.WriteTx(func(tx *Tx) error {
		if err := verifyRef(tx, "terms", a.TermID, "term"); err != nil {
			return err
		}
		if err := verifyRef(tx, "goals", a.GoalID, "goal"); err != nil {
			return err
		}

		res, err := tx.Exec(`
			INSERT INTO term_goal_assignments (term_id, goal_id, sort_order, created_at)
			VALUES (?, ?, ?, ?)
		`, a.TermID, a.GoalID, nullInt(a.SortOrder), encodeTime(a.CreatedAt))
		if err != nil {
			return translateError(err)
		}
		a.ID, err = res.LastInsertId()
		mutationsTotal.WithLabelValues("term_goal_assignments").Inc()
		return err
	})
}

// MeasuredActionsForAction lists an action's measurements, oldest first.
func (s *RelationStore) MeasuredActionsForAction(actionID int64) ([]models.MeasuredAction, error) {
	rows, err := s.db.Query(`
		SELECT id, action_id, measure_id, value, created_at
		FROM measured_actions WHERE action_id = ? ORDER BY id ASC
	`, actionID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []models.MeasuredAction
	for rows.Next() {
		var ma models.MeasuredAction
		var createdAt string
		if err := rows.Scan(&ma.ID, &ma.ActionID, &ma.MeasureID, &ma.Value, &createdAt); err != nil {
			return nil, err
		}
		if ma.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, ma)
	}
	return out, rows.Err()
}

// AssignmentsForTerm lists a term's goal assignments in sort order.
func (s *RelationStore) AssignmentsForTerm(termID int64) ([]models.TermGoalAssignment, error) {
	rows, err := s.db.Query(`
		SELECT id, term_id, goal_id, sort_order, created_at
		FROM term_goal_assignments WHERE term_id = ?
		ORDER BY (sort_order IS NULL), sort_order ASC, id ASC
	`, termID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var out []models.TermGoalAssignment
	for rows.Next() {
		a, err := scanTermAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// DeleteRelation archives then removes one junction row by table name.
func (s *RelationStore) DeleteRelation(table string, id int64, notes string) error {
	switch table {
	case "measured_actions", "goal_measure_targets", "goal_value_alignments",
		"action_goal_contributions", "term_goal_assignments":
	default:
		return models.NewError(models.ErrNotFound, "unknown relation table %q", table)
	}
	return s.db.WriteTx(func(tx *Tx) error {
		if err := archivePriorState(tx, table, id, models.ArchiveDelete, notes); err != nil {
			return err
		}
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE id = ?`, id); err != nil {
			return translateError(err)
		}
		mutationsTotal.WithLabelValues(table).Inc()
		return nil
	})
}

func scanTermAssignment(row rowScanner) (*models.TermGoalAssignment, error) {
	var (
		a         models.TermGoalAssignment
		sortOrder sql.NullInt64
		createdAt string
	)
	if err := row.Scan(&a.ID, &a.TermID, &a.GoalID, &sortOrder, &createdAt); err != nil {
		return nil, err
	}
	a.SortOrder = intPtr(sortOrder.Int64, sortOrder.Valid)
	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &a, nil
}
