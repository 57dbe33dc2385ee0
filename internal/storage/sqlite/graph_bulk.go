// ABOUTME: Bulk-fetch graph strategy: a constant number of WHERE-IN queries plus in-memory grouping
// ABOUTME: Query count is independent of the number of root goals (no N+1)
package sqlite

import (
	"database/sql"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// BulkGraphStrategy assembles goal graphs with one root query, one bulk
// query per related table, and in-memory grouping by parent id.
type BulkGraphStrategy struct {
	db  *DB
	ids *IdentityStore
}

// NewBulkGraphStrategy creates a BulkGraphStrategy.
func NewBulkGraphStrategy(db *DB, ids *IdentityStore) *BulkGraphStrategy {
	return &BulkGraphStrategy{db: db, ids: ids}
}

// Name identifies the strategy in configuration.
func (s *BulkGraphStrategy) Name() string { return "bulk" }

// FetchGoalGraphs assembles the graphs for the filtered goals.
func (s *BulkGraphStrategy) FetchGoalGraphs(filter GraphFilter) ([]models.GoalGraph, error) {
	goals, err := fetchRootGoals(s.db, filter)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return []models.GoalGraph{}, nil
	}

	goalIDs := make([]int64, len(goals))
	inArgs := make([]any, len(goals))
	for i, g := range goals {
		goalIDs[i] = g.ID
		inArgs[i] = g.ID
	}
	in := inPlaceholders(len(goalIDs))

	targets, err := s.fetchMeasureTargets(in, inArgs)
	if err != nil {
		return nil, err
	}
	alignments, err := s.fetchValueAlignments(in, inArgs)
	if err != nil {
		return nil, err
	}
	assignments, err := s.fetchTermAssignments(in, inArgs)
	if err != nil {
		return nil, err
	}

	mappings, err := s.ids.ExternalIDs(s.db, models.KindGoal, goalIDs)
	if err != nil {
		return nil, err
	}

	graphs := make([]models.GoalGraph, len(goals))
	for i, g := range goals {
		g.ExternalID = mappings[g.ID].ExternalID
		graph := models.GoalGraph{
			Goal:            g,
			MeasureTargets:  targets[g.ID],
			ValueAlignments: alignments[g.ID],
			TermAssignment:  assignments[g.ID],
		}
		if graph.MeasureTargets == nil {
			graph.MeasureTargets = []models.MeasureTargetDetail{}
		}
		if graph.ValueAlignments == nil {
			graph.ValueAlignments = []models.ValueAlignmentDetail{}
		}
		graphs[i] = graph
	}
	return graphs, nil
}

// fetchRootGoals pages root goals in the default order; shared with the JSON
// strategy's root selection so both produce the same roots.
func fetchRootGoals(db *DB, filter GraphFilter) ([]models.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals`
	var args []any
	if filter.GoalID != nil {
		query += ` WHERE id = ?`
		args = append(args, *filter.GoalID)
	}
	query += ` ` + goalOrder
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, rows.Err()
}

func (s *BulkGraphStrategy) fetchMeasureTargets(in string, args []any) (map[int64][]models.MeasureTargetDetail, error) {
	rows, err := s.db.Query(`
		SELECT gmt.id, gmt.goal_id, gmt.measure_id, gmt.target_value, gmt.created_at,
		       m.id, m.title, m.description, m.notes, m.unit, m.category, m.canonical_unit, m.conversion_factor, m.created_at
		FROM goal_measure_targets gmt
		JOIN measures m ON m.id = gmt.measure_id
		WHERE gmt.goal_id IN (`+in+`)
		ORDER BY gmt.id ASC
	`, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	out := make(map[int64][]models.MeasureTargetDetail)
	for rows.Next() {
		var (
			d          models.MeasureTargetDetail
			tCreated   string
			mDesc      sql.NullString
			mNotes     sql.NullString
			mCategory  sql.NullString
			mCanonical sql.NullString
			mFactor    sql.NullFloat64
			mCreated   string
		)
		if err := rows.Scan(
			&d.ID, &d.GoalID, &d.MeasureID, &d.TargetValue, &tCreated,
			&d.Measure.ID, &d.Measure.Title, &mDesc, &mNotes, &d.Measure.Unit,
			&mCategory, &mCanonical, &mFactor, &mCreated,
		); err != nil {
			return nil, err
		}
		if d.CreatedAt, err = parseTime(tCreated); err != nil {
			return nil, err
		}
		d.Measure.Description = mDesc.String
		d.Measure.Notes = mNotes.String
		d.Measure.Category = mCategory.String
		d.Measure.CanonicalUnit = mCanonical.String
		d.Measure.ConversionFactor = floatPtr(mFactor.Float64, mFactor.Valid)
		if d.Measure.CreatedAt, err = parseTime(mCreated); err != nil {
			return nil, err
		}
		out[d.GoalID] = append(out[d.GoalID], d)
	}
	return out, rows.Err()
}

func (s *BulkGraphStrategy) fetchValueAlignments(in string, args []any) (map[int64][]models.ValueAlignmentDetail, error) {
	rows, err := s.db.Query(`
		SELECT gva.id, gva.goal_id, gva.value_id, gva.alignment_strength, gva.note, gva.created_at,
		       v.id, v.title, v.description, v.notes, v.value_level, v.priority, v.life_domain, v.alignment_guidance, v.created_at
		FROM goal_value_alignments gva
		JOIN personal_values v ON v.id = gva.value_id
		WHERE gva.goal_id IN (`+in+`)
		ORDER BY gva.id ASC
	`, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	out := make(map[int64][]models.ValueAlignmentDetail)
	for rows.Next() {
		var (
			d         models.ValueAlignmentDetail
			strength  sql.NullInt64
			note      sql.NullString
			aCreated  string
			vDesc     sql.NullString
			vNotes    sql.NullString
			vLevel    string
			vDomain   sql.NullString
			vGuidance sql.NullString
			vCreated  string
		)
		if err := rows.Scan(
			&d.ID, &d.GoalID, &d.ValueID, &strength, &note, &aCreated,
			&d.Value.ID, &d.Value.Title, &vDesc, &vNotes, &vLevel,
			&d.Value.Priority, &vDomain, &vGuidance, &vCreated,
		); err != nil {
			return nil, err
		}
		d.AlignmentStrength = intPtr(strength.Int64, strength.Valid)
		d.Note = note.String
		if d.CreatedAt, err = parseTime(aCreated); err != nil {
			return nil, err
		}
		if d.Value.Level, err = models.ParseValueLevel(vLevel); err != nil {
			return nil, err
		}
		d.Value.Description = vDesc.String
		d.Value.Notes = vNotes.String
		d.Value.LifeDomain = vDomain.String
		d.Value.AlignmentGuidance = vGuidance.String
		if d.Value.CreatedAt, err = parseTime(vCreated); err != nil {
			return nil, err
		}
		out[d.GoalID] = append(out[d.GoalID], d)
	}
	return out, rows.Err()
}

// fetchTermAssignments keeps only the most recently created assignment per
// goal: last write wins when the schema's missing uniqueness constraint has
// let several accumulate.
func (s *BulkGraphStrategy) fetchTermAssignments(in string, args []any) (map[int64]*models.TermAssignmentDetail, error) {
	rows, err := s.db.Query(`
		SELECT tga.id, tga.term_id, tga.goal_id, tga.sort_order, tga.created_at,
		       t.id, t.term_number, t.title, t.description, t.notes, t.start_date, t.end_date, t.theme, t.reflection, t.status, t.created_at
		FROM term_goal_assignments tga
		JOIN terms t ON t.id = tga.term_id
		WHERE tga.goal_id IN (`+in+`)
		ORDER BY tga.created_at DESC, tga.id DESC
	`, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	out := make(map[int64]*models.TermAssignmentDetail)
	for rows.Next() {
		var (
			d           models.TermAssignmentDetail
			sortOrder   sql.NullInt64
			aCreated    string
			tTitle      sql.NullString
			tDesc       sql.NullString
			tNotes      sql.NullString
			tStart      string
			tEnd        string
			tTheme      sql.NullString
			tReflection sql.NullString
			tStatus     string
			tCreated    string
		)
		if err := rows.Scan(
			&d.ID, &d.TermID, &d.GoalID, &sortOrder, &aCreated,
			&d.Term.ID, &d.Term.TermNumber, &tTitle, &tDesc, &tNotes,
			&tStart, &tEnd, &tTheme, &tReflection, &tStatus, &tCreated,
		); err != nil {
			return nil, err
		}
		if _, seen := out[d.GoalID]; seen {
			continue
		}
		d.SortOrder = intPtr(sortOrder.Int64, sortOrder.Valid)
		if d.CreatedAt, err = parseTime(aCreated); err != nil {
			return nil, err
		}
		d.Term.Title = tTitle.String
		d.Term.Description = tDesc.String
		d.Term.Notes = tNotes.String
		d.Term.Theme = tTheme.String
		d.Term.Reflection = tReflection.String
		d.Term.Status = models.TermStatus(tStatus)
		if d.Term.StartDate, err = parseTime(tStart); err != nil {
			return nil, err
		}
		if d.Term.EndDate, err = parseTime(tEnd); err != nil {
			return nil, err
		}
		if d.Term.CreatedAt, err = parseTime(tCreated); err != nil {
			return nil, err
		}
		out[d.GoalID] = &d
	}
	return out, rows.Err()
}
