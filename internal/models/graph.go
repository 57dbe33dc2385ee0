// ABOUTME: GoalGraph is a goal with its related collections assembled from normalized tables
// ABOUTME: Produced identically by the bulk-fetch and JSON-aggregation strategies
package models

// MeasureTargetDetail pairs a goal's measure target with its measure
// catalog entry.
type MeasureTargetDetail struct {
	GoalMeasureTarget
	Measure Measure `json:"measure"`
}

// ValueAlignmentDetail pairs a goal's value alignment with the value itself.
type ValueAlignmentDetail struct {
	GoalValueAlignment
	Value PersonalValue `json:"value"`
}

// TermAssignmentDetail pairs a goal's term assignment with the term.
type TermAssignmentDetail struct {
	TermGoalAssignment
	Term Term `json:"term"`
}

// GoalGraph is the denormalized object graph for one goal. Child slices are
// always non-nil; TermAssignment is nil when the goal is unassigned. When a
// goal has several term assignments the latest-created one wins and the rest
// are ignored.
type GoalGraph struct {
	Goal            Goal                   `json:"goal"`
	MeasureTargets  []MeasureTargetDetail  `json:"measure_targets"`
	ValueAlignments []ValueAlignmentDetail `json:"value_alignments"`
	TermAssignment  *TermAssignmentDetail  `json:"term_assignment,omitempty"`
}
