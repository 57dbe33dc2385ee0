// ABOUTME: Set-based progress aggregation over goal targets and measured actions
// ABOUTME: One query computes totals, percentages, and days remaining for every goal target
package sqlite

import (
	"database/sql"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// ProgressStore computes goal progress in SQL rather than in application
// loops. Measured actions count toward a goal target when they record the
// same measure, regardless of explicit contribution links.
type ProgressStore struct {
	db *DB
}

// NewProgressStore creates a ProgressStore.
func NewProgressStore(db *DB) *ProgressStore {
	return &ProgressStore{db: db}
}

const progressQuery = `
SELECT
    g.id,
    g.title,
    m.id,
    m.unit,
    gmt.target_value,
    COALESCE(SUM(ma.value), 0) AS current_progress,
    CASE WHEN gmt.target_value > 0
         THEN ROUND(COALESCE(SUM(ma.value), 0) / gmt.target_value * 100, 1)
         ELSE 0
    END AS percent_complete,
    g.target_date,
    CASE WHEN g.target_date IS NOT NULL
         THEN CAST(julianday(date(g.target_date)) - julianday(date('now')) AS INTEGER)
    END AS days_remaining
FROM goals g
JOIN goal_measure_targets gmt ON gmt.goal_id = g.id
JOIN measures m ON m.id = gmt.measure_id
LEFT JOIN measured_actions ma ON ma.measure_id = gmt.measure_id
GROUP BY g.id, g.title, m.id, m.unit, gmt.target_value, g.target_date
ORDER BY percent_complete ASC, (g.target_date IS NULL), g.target_date ASC, g.id ASC`

// GoalProgress returns one row per goal target. Goals without measure
// targets do not appear; a zero or negative target reports zero percent.
func (s *ProgressStore) GoalProgress() ([]models.ProgressRow, error) {
	rows, err := s.db.Query(progressQuery)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	out := []models.ProgressRow{}
	for rows.Next() {
		var (
			r          models.ProgressRow
			targetDate sql.NullString
			daysLeft   sql.NullInt64
		)
		if err := rows.Scan(
			&r.GoalID, &r.GoalTitle, &r.MeasureID, &r.Unit,
			&r.TargetValue, &r.CurrentProgress, &r.PercentComplete,
			&targetDate, &daysLeft,
		); err != nil {
			return nil, err
		}
		if r.TargetDate, err = parseTimePtr(targetDate); err != nil {
			return nil, err
		}
		if daysLeft.Valid {
			d := int(daysLeft.Int64)
			r.DaysRemaining = &d
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err)
	}
	return out, nil
}
