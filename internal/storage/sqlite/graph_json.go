// ABOUTME: JSON-aggregation graph strategy: one query with correlated json_group_array subqueries
// ABOUTME: Decodes the structured-array columns into the same domain graph as the bulk strategy
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// JSONGraphStrategy assembles goal graphs with a single query per fetch.
// Each related collection is emitted by a correlated subquery as a JSON
// array (empty array, never null); the single-valued term assignment is a
// correlated subquery with a deterministic latest-created-at tie-break.
type JSONGraphStrategy struct {
	db  *DB
	ids *IdentityStore
}

// NewJSONGraphStrategy creates a JSONGraphStrategy.
func NewJSONGraphStrategy(db *DB, ids *IdentityStore) *JSONGraphStrategy {
	return &JSONGraphStrategy{db: db, ids: ids}
}

// Name identifies the strategy in configuration.
func (s *JSONGraphStrategy) Name() string { return "json" }

const goalGraphQuery = `
SELECT g.id, g.title, g.description, g.notes, g.start_date, g.target_date, g.action_plan, g.expected_duration_weeks, g.created_at,
  COALESCE((
    SELECT json_group_array(json_object(
      'id', gmt.id, 'goal_id', gmt.goal_id, 'measure_id', gmt.measure_id,
      'target_value', gmt.target_value, 'created_at', gmt.created_at,
      'measure', json_object(
        'id', m.id, 'title', m.title, 'description', m.description, 'notes', m.notes,
        'unit', m.unit, 'category', m.category, 'canonical_unit', m.canonical_unit,
        'conversion_factor', m.conversion_factor, 'created_at', m.created_at))
      ORDER BY gmt.id ASC)
    FROM goal_measure_targets gmt
    JOIN measures m ON m.id = gmt.measure_id
    WHERE gmt.goal_id = g.id
  ), '[]') AS measure_targets,
  COALESCE((
    SELECT json_group_array(json_object(
      'id', gva.id, 'goal_id', gva.goal_id, 'value_id', gva.value_id,
      'alignment_strength', gva.alignment_strength, 'note', gva.note, 'created_at', gva.created_at,
      'value', json_object(
        'id', v.id, 'title', v.title, 'description', v.description, 'notes', v.notes,
        'value_level', v.value_level, 'priority', v.priority, 'life_domain', v.life_domain,
        'alignment_guidance', v.alignment_guidance, 'created_at', v.created_at))
      ORDER BY gva.id ASC)
    FROM goal_value_alignments gva
    JOIN personal_values v ON v.id = gva.value_id
    WHERE gva.goal_id = g.id
  ), '[]') AS value_alignments,
  (
    SELECT json_object(
      'id', tga.id, 'term_id', tga.term_id, 'goal_id', tga.goal_id,
      'sort_order', tga.sort_order, 'created_at', tga.created_at,
      'term', json_object(
        'id', t.id, 'term_number', t.term_number, 'title', t.title,
        'description', t.description, 'notes', t.notes,
        'start_date', t.start_date, 'end_date', t.end_date,
        'theme', t.theme, 'reflection', t.reflection,
        'status', t.status, 'created_at', t.created_at))
    FROM term_goal_assignments tga
    JOIN terms t ON t.id = tga.term_id
    WHERE tga.goal_id = g.id
    ORDER BY tga.created_at DESC, tga.id DESC
    LIMIT 1
  ) AS term_assignment
FROM goals g`

// Wire shapes for decoding the aggregated JSON columns. Timestamps stay
// strings until converted through the shared ISO-8601 codec.
type jsonMeasure struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Description      *string  `json:"description"`
	Notes            *string  `json:"notes"`
	Unit             string   `json:"unit"`
	Category         *string  `json:"category"`
	CanonicalUnit    *string  `json:"canonical_unit"`
	ConversionFactor *float64 `json:"conversion_factor"`
	CreatedAt        string   `json:"created_at"`
}

type jsonMeasureTarget struct {
	ID          int64       `json:"id"`
	GoalID      int64       `json:"goal_id"`
	MeasureID   int64       `json:"measure_id"`
	TargetValue float64     `json:"target_value"`
	CreatedAt   string      `json:"created_at"`
	Measure     jsonMeasure `json:"measure"`
}

type jsonValue struct {
	ID                int64   `json:"id"`
	Title             string  `json:"title"`
	Description       *string `json:"description"`
	Notes             *string `json:"notes"`
	ValueLevel        string  `json:"value_level"`
	Priority          int     `json:"priority"`
	LifeDomain        *string `json:"life_domain"`
	AlignmentGuidance *string `json:"alignment_guidance"`
	CreatedAt         string  `json:"created_at"`
}

type jsonValueAlignment struct {
	ID                int64     `json:"id"`
	GoalID            int64     `json:"goal_id"`
	ValueID           int64     `json:"value_id"`
	AlignmentStrength *int      `json:"alignment_strength"`
	Note              *string   `json:"note"`
	CreatedAt         string    `json:"created_at"`
	Value             jsonValue `json:"value"`
}

type jsonTerm struct {
	ID          int64   `json:"id"`
	TermNumber  int     `json:"term_number"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Theme       *string `json:"theme"`
	Reflection  *string `json:"reflection"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type jsonTermAssignment struct {
	ID        int64    `json:"id"`
	TermID    int64    `json:"term_id"`
	GoalID    int64    `json:"goal_id"`
	SortOrder *int     `json:"sort_order"`
	CreatedAt string   `json:"created_at"`
	Term      jsonTerm `json:"term"`
}

// FetchGoalGraphs assembles the graphs for the filtered goals in one query.
func (s *JSONGraphStrategy) FetchGoalGraphs(filter GraphFilter) ([]models.GoalGraph, error) {
	query := goalGraphQuery
	var args []any
	if filter.GoalID != nil {
		query += ` WHERE g.id = ?`
		args = append(args, *filter.GoalID)
	}
	query += ` ORDER BY (g.target_date IS NULL), g.target_date ASC, g.created_at DESC, g.id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	graphs := []models.GoalGraph{}
	var goalIDs []int64
	for rows.Next() {
		var (
			targetsJSON string
			alignsJSON  string
			termJSON    sql.NullString
		)
		g := &models.Goal{}
		var (
			desc       sql.NullString
			notes      sql.NullString
			startDate  sql.NullString
			targetDate sql.NullString
			plan       sql.NullString
			weeks      sql.NullInt64
			createdAt  string
		)
		if err := rows.Scan(
			&g.ID, &g.Title, &desc, &notes, &startDate, &targetDate, &plan, &weeks, &createdAt,
			&targetsJSON, &alignsJSON, &termJSON,
		); err != nil {
			return nil, err
		}
		g.Description = desc.String
		g.Notes = notes.String
		g.ActionPlan = plan.String
		g.ExpectedDurationWeeks = intPtr(weeks.Int64, weeks.Valid)
		if g.StartDate, err = parseTimePtr(startDate); err != nil {
			return nil, err
		}
		if g.TargetDate, err = parseTimePtr(targetDate); err != nil {
			return nil, err
		}
		if g.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}

		graph := models.GoalGraph{Goal: *g}
		if graph.MeasureTargets, err = decodeMeasureTargets(targetsJSON); err != nil {
			return nil, err
		}
		if graph.ValueAlignments, err = decodeValueAlignments(alignsJSON); err != nil {
			return nil, err
		}
		if termJSON.Valid {
			if graph.TermAssignment, err = decodeTermAssignment(termJSON.String); err != nil {
				return nil, err
			}
		}
		graphs = append(graphs, graph)
		goalIDs = append(goalIDs, g.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}

	mappings, err := s.ids.ExternalIDs(s.db, models.KindGoal, goalIDs)
	if err != nil {
		return nil, err
	}
	for i := range graphs {
		graphs[i].Goal.ExternalID = mappings[graphs[i].Goal.ID].ExternalID
	}
	return graphs, nil
}

func decodeMeasureTargets(data string) ([]models.MeasureTargetDetail, error) {
	var wire []jsonMeasureTarget
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return nil, fmt.Errorf("decoding measure targets: %w", err)
	}

	out := make([]models.MeasureTargetDetail, 0, len(wire))
	for _, w := range wire {
		d := models.MeasureTargetDetail{
			GoalMeasureTarget: models.GoalMeasureTarget{
				ID:          w.ID,
				GoalID:      w.GoalID,
				MeasureID:   w.MeasureID,
				TargetValue: w.TargetValue,
			},
			Measure: models.Measure{
				ID:               w.Measure.ID,
				Title:            w.Measure.Title,
				Description:      strDeref(w.Measure.Description),
				Notes:            strDeref(w.Measure.Notes),
				Unit:             w.Measure.Unit,
				Category:         strDeref(w.Measure.Category),
				CanonicalUnit:    strDeref(w.Measure.CanonicalUnit),
				ConversionFactor: w.Measure.ConversionFactor,
			},
		}
		var err error
		if d.CreatedAt, err = parseTime(w.CreatedAt); err != nil {
			return nil, err
		}
		if d.Measure.CreatedAt, err = parseTime(w.Measure.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeValueAlignments(data string) ([]models.ValueAlignmentDetail, error) {
	var wire []jsonValueAlignment
	if err := json.Unmarshal([]byte(data), &wire); err != nil {
		return nil, fmt.Errorf("decoding value alignments: %w", err)
	}

	out := make([]models.ValueAlignmentDetail, 0, len(wire))
	for _, w := range wire {
		level, err := models.ParseValueLevel(w.Value.ValueLevel)
		if err != nil {
			return nil, err
		}
		d := models.ValueAlignmentDetail{
			GoalValueAlignment: models.GoalValueAlignment{
				ID:                w.ID,
				GoalID:            w.GoalID,
				ValueID:           w.ValueID,
				AlignmentStrength: w.AlignmentStrength,
				Note:              strDeref(w.Note),
			},
			Value: models.PersonalValue{
				ID:                w.Value.ID,
				Title:             w.Value.Title,
				Description:       strDeref(w.Value.Description),
				Notes:             strDeref(w.Value.Notes),
				Level:             level,
				Priority:          w.Value.Priority,
				LifeDomain:        strDeref(w.Value.LifeDomain),
				AlignmentGuidance: strDeref(w.Value.AlignmentGuidance),
			},
		}
		if d.CreatedAt, err = parseTime(w.CreatedAt); err != nil {
			return nil, err
		}
		if d.Value.CreatedAt, err = parseTime(w.Value.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func decodeTermAssignment(data string) (*models.TermAssignmentDetail, error) {
	var w jsonTermAssignment
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, fmt.Errorf("decoding term assignment: %w", err)
	}

	d := &models.TermAssignmentDetail{
		TermGoalAssignment: models.TermGoalAssignment{
			ID:        w.ID,
			TermID:    w.TermID,
			GoalID:    w.GoalID,
			SortOrder: w.SortOrder,
		},
		Term: models.Term{
			ID:          w.Term.ID,
			TermNumber:  w.Term.TermNumber,
			Title:       strDeref(w.Term.Title),
			Description: strDeref(w.Term.Description),
			Notes:       strDeref(w.Term.Notes),
			Theme:       strDeref(w.Term.Theme),
			Reflection:  strDeref(w.Term.Reflection),
			Status:      models.TermStatus(w.Term.Status),
		},
	}
	var err error
	if d.CreatedAt, err = parseTime(w.CreatedAt); err != nil {
		return nil, err
	}
	if d.Term.StartDate, err = parseTime(w.Term.StartDate); err != nil {
		return nil, err
	}
	if d.Term.EndDate, err = parseTime(w.Term.EndDate); err != nil {
		return nil, err
	}
	if d.Term.CreatedAt, err = parseTime(w.Term.CreatedAt); err != nil {
		return nil, err
	}
	return d, nil
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
