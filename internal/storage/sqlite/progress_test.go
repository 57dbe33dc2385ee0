// ABOUTME: Tests for set-based goal progress aggregation
// ABOUTME: Verifies totals, percentages, zero-target handling, and goals without targets
package sqlite

import (
	"testing"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

func TestGoalProgress(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	relations := NewRelationStore(db)

	run := seedGoal(t, db, ids, "Run 120km", datePtr(t, "2026-03-15"))
	read := seedGoal(t, db, ids, "Read 1000 pages", nil)
	noTarget := seedGoal(t, db, ids, "Learn to sail", nil)
	_ = noTarget

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

	// Three runs totaling 90km and two reading sessions totaling 625 pages.
	for _, v := range []float64{30, 40, 20} {
		a := seedAction(t, db, ids, "Run")
		seedMeasuredAction(t, db, relations, a.ID, km.ID, v)
	}
	for _, v := range []float64{400, 225} {
		a := seedAction(t, db, ids, "Read")
		seedMeasuredAction(t, db, relations, a.ID, pages.ID, v)
	}

	rows, err := NewProgressStore(db).GoalProgress()
	if err != nil {
		t.Fatalf("GoalProgress() error = %v", err)
	}
	// One row per target; the goal without targets is absent.
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}

	byGoal := make(map[int64]models.ProgressRow, len(rows))
	for _, r := range rows {
		byGoal[r.GoalID] = r
	}

	runRow := byGoal[run.ID]
	if runRow.CurrentProgress != 90 {
		t.Errorf("run CurrentProgress = %g, want 90", runRow.CurrentProgress)
	}
	if runRow.PercentComplete != 75.0 {
		t.Errorf("run PercentComplete = %g, want 75.0", runRow.PercentComplete)
	}
	if runRow.Unit != "km" {
		t.Errorf("run Unit = %q, want km", runRow.Unit)
	}
	if runRow.TargetDate == nil {
		t.Error("run TargetDate = nil, want set")
	}
	if runRow.DaysRemaining == nil {
		t.Error("run DaysRemaining = nil, want set")
	}

	readRow := byGoal[read.ID]
	if readRow.PercentComplete != 62.5 {
		t.Errorf("read PercentComplete = %g, want 62.5", readRow.PercentComplete)
	}
	if readRow.DaysRemaining != nil {
		t.Errorf("read DaysRemaining = %v, want nil for undated goal", *readRow.DaysRemaining)
	}

	// Lowest percentage sorts first.
	if rows[0].GoalID != read.ID {
		t.Errorf("rows[0].GoalID = %d, want %d (lowest percent first)", rows[0].GoalID, read.ID)
	}
}

func TestGoalProgressZeroTarget(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	relations := NewRelationStore(db)

	goal := seedGoal(t, db, ids, "Practice", nil)
	hours := seedMeasure(t, db, ids, "hours")
	if err := relations.CreateGoalMeasureTarget(&models.GoalMeasureTarget{
		GoalID: goal.ID, MeasureID: hours.ID, TargetValue: 0,
	}); err != nil {
		t.Fatalf("CreateGoalMeasureTarget() error = %v", err)
	}

	a := seedAction(t, db, ids, "Practiced")
	seedMeasuredAction(t, db, relations, a.ID, hours.ID, 3)

	rows, err := NewProgressStore(db).GoalProgress()
	if err != nil {
		t.Fatalf("GoalProgress() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	// Division guard: zero target reports zero percent, never an error.
	if rows[0].PercentComplete != 0 {
		t.Errorf("PercentComplete = %g, want 0 for zero target", rows[0].PercentComplete)
	}
	if rows[0].CurrentProgress != 3 {
		t.Errorf("CurrentProgress = %g, want 3", rows[0].CurrentProgress)
	}
}

func TestGoalProgressNoMeasurements(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	relations := NewRelationStore(db)

	goal := seedGoal(t, db, ids, "Run 120km", nil)
	km := seedMeasure(t, db, ids, "km")
	if err := relations.CreateGoalMeasureTarget(&models.GoalMeasureTarget{
		GoalID: goal.ID, MeasureID: km.ID, TargetValue: 120,
	}); err != nil {
		t.Fatalf("CreateGoalMeasureTarget() error = %v", err)
	}

	rows, err := NewProgressStore(db).GoalProgress()
	if err != nil {
		t.Fatalf("GoalProgress() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if rows[0].CurrentProgress != 0 || rows[0].PercentComplete != 0 {
		t.Errorf("progress = %g (%g%%), want 0 with no measurements",
			rows[0].CurrentProgress, rows[0].PercentComplete)
	}
}

func TestProgressRowHelpers(t *testing.T) {
	row := models.ProgressRow{TargetValue: 120, CurrentProgress: 90}
	if got := row.Remaining(); got != 30 {
		t.Errorf("Remaining() = %g, want 30", got)
	}
	if row.IsComplete() {
		t.Error("IsComplete() = true at 75%")
	}

	done := models.ProgressRow{TargetValue: 120, CurrentProgress: 130}
	if got := done.Remaining(); got != 0 {
		t.Errorf("Remaining() = %g, want 0 when exceeded", got)
	}
	if !done.IsComplete() {
		t.Error("IsComplete() = false when target exceeded")
	}
}
