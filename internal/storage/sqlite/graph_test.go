// ABOUTME: Tests for the two goal graph assembly strategies
// ABOUTME: Verifies both produce identical results, term tie-breaks, ordering, and query bounds
package sqlite

import (
	"reflect"
	"testing"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

// buildGraphFixture seeds three goals with targets, alignments, and term
// assignments, returning the goal ids in insertion order.
func buildGraphFixture(t *testing.T, db *DB, ids *IdentityStore) []int64 {
	t.Helper()
	relations := NewRelationStore(db)

	run := seedGoal(t, db, ids, "Run 120km", datePtr(t, "2026-03-15"))
	read := seedGoal(t, db, ids, "Read 1000 pages", datePtr(t, "2026-02-01"))
	someday := seedGoal(t, db, ids, "Learn to sail", nil)

	km := seedMeasure(t, db, ids, "km")
	pages := seedMeasure(t, db, ids, "pages")

	for _, target := range []models.GoalMeasureTarget{
		{GoalID: run.ID, MeasureID: km.ID, TargetValue: 120},
		{GoalID: read.ID, MeasureID: pages.ID, TargetValue: 1000},
	} {
		tgt := target
		if err := relations.CreateGoalMeasureTarget(&tgt); err != nil {
			t.Fatalf("CreateGoalMeasureTarget() error = %v", err)
		}
	}

	health := &models.PersonalValue{Title: "Health", Level: models.LevelMajor, Priority: 10}
	if err := NewValueStore(db, ids).Create(health); err != nil {
		t.Fatalf("Create value error = %v", err)
	}
	strength := 8
	if err := relations.CreateGoalValueAlignment(&models.GoalValueAlignment{
		GoalID: run.ID, ValueID: health.ID, AlignmentStrength: &strength, Note: "cardio base",
	}); err != nil {
		t.Fatalf("CreateGoalValueAlignment() error = %v", err)
	}

	term := &models.Term{TermNumber: 1, StartDate: *datePtr(t, "2026-01-05"), EndDate: *datePtr(t, "2026-03-15"), Status: models.TermActive}
	if err := NewTermStore(db, ids).Create(term); err != nil {
		t.Fatalf("Create term error = %v", err)
	}
	if err := relations.CreateTermGoalAssignment(&models.TermGoalAssignment{
		TermID: term.ID, GoalID: run.ID,
	}); err != nil {
		t.Fatalf("CreateTermGoalAssignment() error = %v", err)
	}

	return []int64{run.ID, read.ID, someday.ID}
}

func TestGraphStrategiesProduceIdenticalResults(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	buildGraphFixture(t, db, ids)

	bulk, err := NewBulkGraphStrategy(db, ids).FetchGoalGraphs(GraphFilter{})
	if err != nil {
		t.Fatalf("bulk FetchGoalGraphs() error = %v", err)
	}
	jsonAgg, err := NewJSONGraphStrategy(db, ids).FetchGoalGraphs(GraphFilter{})
	if err != nil {
		t.Fatalf("json FetchGoalGraphs() error = %v", err)
	}

	if len(bulk) != len(jsonAgg) {
		t.Fatalf("bulk returned %d graphs, json returned %d", len(bulk), len(jsonAgg))
	}
	for i := range bulk {
		normalizeGraph(&bulk[i])
		normalizeGraph(&jsonAgg[i])
		if !reflect.DeepEqual(bulk[i], jsonAgg[i]) {
			t.Errorf("graph %d differs between strategies:\nbulk: %+v\njson: %+v", i, bulk[i], jsonAgg[i])
		}
	}
}

// normalizeGraph pins every timestamp to UTC so DeepEqual compares instants
// rather than location pointers.
func normalizeGraph(g *models.GoalGraph) {
	g.Goal.CreatedAt = g.Goal.CreatedAt.UTC()
	for i := range g.MeasureTargets {
		g.MeasureTargets[i].CreatedAt = g.MeasureTargets[i].CreatedAt.UTC()
		g.MeasureTargets[i].Measure.CreatedAt = g.MeasureTargets[i].Measure.CreatedAt.UTC()
	}
	for i := range g.ValueAlignments {
		g.ValueAlignments[i].CreatedAt = g.ValueAlignments[i].CreatedAt.UTC()
		g.ValueAlignments[i].Value.CreatedAt = g.ValueAlignments[i].Value.CreatedAt.UTC()
	}
	if g.TermAssignment != nil {
		g.TermAssignment.CreatedAt = g.TermAssignment.CreatedAt.UTC()
		g.TermAssignment.Term.StartDate = g.TermAssignment.Term.StartDate.UTC()
		g.TermAssignment.Term.EndDate = g.TermAssignment.Term.EndDate.UTC()
		g.TermAssignment.Term.CreatedAt = g.TermAssignment.Term.CreatedAt.UTC()
	}
}

func TestGraphRootOrdering(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	goalIDs := buildGraphFixture(t, db, ids)

	for _, strategy := range []GraphStrategy{
		NewBulkGraphStrategy(db, ids),
		NewJSONGraphStrategy(db, ids),
	} {
		graphs, err := strategy.FetchGoalGraphs(GraphFilter{})
		if err != nil {
			t.Fatalf("%s FetchGoalGraphs() error = %v", strategy.Name(), err)
		}
		if len(graphs) != 3 {
			t.Fatalf("%s returned %d graphs, want 3", strategy.Name(), len(graphs))
		}
		// Earliest target date first, undated last.
		want := []int64{goalIDs[1], goalIDs[0], goalIDs[2]}
		for i, g := range graphs {
			if g.Goal.ID != want[i] {
				t.Errorf("%s graphs[%d].ID = %d, want %d", strategy.Name(), i, g.Goal.ID, want[i])
			}
		}
	}
}

func TestGraphEmptyRelationshipsAreEmptyNotNil(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	goal := seedGoal(t, db, ids, "Learn to sail", nil)

	for _, strategy := range []GraphStrategy{
		NewBulkGraphStrategy(db, ids),
		NewJSONGraphStrategy(db, ids),
	} {
		graphs, err := strategy.FetchGoalGraphs(GraphFilter{GoalID: &goal.ID})
		if err != nil {
			t.Fatalf("%s FetchGoalGraphs() error = %v", strategy.Name(), err)
		}
		if len(graphs) != 1 {
			t.Fatalf("%s returned %d graphs, want 1", strategy.Name(), len(graphs))
		}
		g := graphs[0]
		if g.MeasureTargets == nil || len(g.MeasureTargets) != 0 {
			t.Errorf("%s MeasureTargets = %v, want empty non-nil slice", strategy.Name(), g.MeasureTargets)
		}
		if g.ValueAlignments == nil || len(g.ValueAlignments) != 0 {
			t.Errorf("%s ValueAlignments = %v, want empty non-nil slice", strategy.Name(), g.ValueAlignments)
		}
		if g.TermAssignment != nil {
			t.Errorf("%s TermAssignment = %v, want nil", strategy.Name(), g.TermAssignment)
		}
		if g.Goal.ExternalID == "" {
			t.Errorf("%s root goal external id not stabilized", strategy.Name())
		}
	}
}

func TestGraphTermAssignmentLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)

	goal := seedGoal(t, db, ids, "Run 120km", nil)
	terms := NewTermStore(db, ids)

	term1 := &models.Term{TermNumber: 1, StartDate: *datePtr(t, "2026-01-05"), EndDate: *datePtr(t, "2026-03-15")}
	term2 := &models.Term{TermNumber: 2, StartDate: *datePtr(t, "2026-03-16"), EndDate: *datePtr(t, "2026-05-24")}
	for _, term := range []*models.Term{term1, term2} {
		if err := terms.Create(term); err != nil {
			t.Fatalf("Create term error = %v", err)
		}
	}

	// Two assignments with identical timestamps; the higher row id wins the
	// tie.
	createdAt := encodeTime(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	for _, termID := range []int64{term1.ID, term2.ID} {
		if _, err := db.Exec(
			`INSERT INTO term_goal_assignments (term_id, goal_id, created_at) VALUES (?, ?, ?)`,
			termID, goal.ID, createdAt,
		); err != nil {
			t.Fatalf("insert assignment error = %v", err)
		}
	}

	for _, strategy := range []GraphStrategy{
		NewBulkGraphStrategy(db, ids),
		NewJSONGraphStrategy(db, ids),
	} {
		graphs, err := strategy.FetchGoalGraphs(GraphFilter{GoalID: &goal.ID})
		if err != nil {
			t.Fatalf("%s FetchGoalGraphs() error = %v", strategy.Name(), err)
		}
		if len(graphs) != 1 || graphs[0].TermAssignment == nil {
			t.Fatalf("%s did not return a term assignment", strategy.Name())
		}
		if got := graphs[0].TermAssignment.TermID; got != term2.ID {
			t.Errorf("%s TermAssignment.TermID = %d, want %d (latest row)", strategy.Name(), got, term2.ID)
		}
	}
}

func TestBulkGraphQueryCountIsBounded(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	buildGraphFixture(t, db, ids)

	strategy := NewBulkGraphStrategy(db, ids)

	db.ResetQueryCount()
	if _, err := strategy.FetchGoalGraphs(GraphFilter{}); err != nil {
		t.Fatalf("FetchGoalGraphs() error = %v", err)
	}
	small := db.QueryCount()

	// Add more goals; the statement count must not grow with row count.
	for _, title := range []string{"G4", "G5", "G6", "G7", "G8"} {
		seedGoal(t, db, ids, title, nil)
	}

	db.ResetQueryCount()
	if _, err := strategy.FetchGoalGraphs(GraphFilter{}); err != nil {
		t.Fatalf("FetchGoalGraphs() error = %v", err)
	}
	if large := db.QueryCount(); large > small {
		t.Errorf("query count grew with goal count: %d -> %d", small, large)
	}
}

func TestGraphFilterLimitOffset(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	goalIDs := buildGraphFixture(t, db, ids)

	graphs, err := NewBulkGraphStrategy(db, ids).FetchGoalGraphs(GraphFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("FetchGoalGraphs() error = %v", err)
	}
	if len(graphs) != 1 {
		t.Fatalf("len(graphs) = %d, want 1", len(graphs))
	}
	// Second in target-date order is the run goal.
	if graphs[0].Goal.ID != goalIDs[0] {
		t.Errorf("Goal.ID = %d, want %d", graphs[0].Goal.ID, goalIDs[0])
	}
}
