// ABOUTME: Graph assembler contract: reconstructs goal object graphs from normalized tables
// ABOUTME: Two interchangeable strategies must produce identical logical results
package sqlite

import (
	"strings"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// GraphFilter restricts and pages a graph fetch. The zero value fetches
// everything.
type GraphFilter struct {
	// GoalID limits the fetch to a single root goal.
	GoalID *int64
	// Limit and Offset page the root result set when Limit > 0.
	Limit  int
	Offset int
}

// GraphStrategy assembles root goals together with their measure targets,
// value alignments, and term assignment. Implementations differ only in how
// they query; for any dataset their logical output is identical up to the
// ordering of children within one parent.
type GraphStrategy interface {
	Name() string
	FetchGoalGraphs(filter GraphFilter) ([]models.GoalGraph, error)
}

// inPlaceholders renders "?, ?, ?" for an IN clause of n values.
func inPlaceholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
