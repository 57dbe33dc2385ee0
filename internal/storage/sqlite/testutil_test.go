// ABOUTME: Shared test fixtures for the sqlite storage package
// ABOUTME: Opens in-memory databases and seeds common entities
package sqlite

import (
	"testing"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedGoal(t *testing.T, db *DB, ids *IdentityStore, title string, targetDate *time.Time) *models.Goal {
	t.Helper()
	g := &models.Goal{Title: title, TargetDate: targetDate}
	if err := NewGoalStore(db, ids).Create(g); err != nil {
		t.Fatalf("Create goal %q error = %v", title, err)
	}
	return g
}

func seedMeasure(t *testing.T, db *DB, ids *IdentityStore, unit string) *models.Measure {
	t.Helper()
	m := &models.Measure{Title: unit, Unit: unit}
	if err := NewMeasureStore(db, ids).Create(m); err != nil {
		t.Fatalf("Create measure %q error = %v", unit, err)
	}
	return m
}

func seedAction(t *testing.T, db *DB, ids *IdentityStore, title string) *models.Action {
	t.Helper()
	a := &models.Action{Title: title}
	if err := NewActionStore(db, ids).Create(a); err != nil {
		t.Fatalf("Create action %q error = %v", title, err)
	}
	return a
}

func seedMeasuredAction(t *testing.T, db *DB, relations *RelationStore, actionID, measureID int64, value float64) {
	t.Helper()
	ma := &models.MeasuredAction{ActionID: actionID, MeasureID: measureID, Value: value}
	if err := relations.CreateMeasuredAction(ma); err != nil {
		t.Fatalf("CreateMeasuredAction error = %v", err)
	}
}

func datePtr(t *testing.T, s string) *time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return &parsed
}
