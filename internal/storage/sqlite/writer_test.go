// ABOUTME: Tests for the archive-then-mutate write coordinator
// ABOUTME: Verifies snapshots capture exact prior state and missing rows abort writes
package sqlite

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

func TestUpdateArchivesPriorState(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	goals := NewGoalStore(db, ids)

	goal := seedGoal(t, db, ids, "Run 120km", datePtr(t, "2026-03-15"))

	goal.Title = "Run 150km"
	if err := goals.Update(goal, "stretched the target"); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	entries, err := NewArchiveStore(db).Entries("goals", goal.ID, 0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}

	e := entries[0]
	if e.Reason != models.ArchiveUpdate {
		t.Errorf("Reason = %q, want %q", e.Reason, models.ArchiveUpdate)
	}
	if e.Notes != "stretched the target" {
		t.Errorf("Notes = %q", e.Notes)
	}

	// The snapshot holds the state before the update.
	var snapshot map[string]any
	if err := json.Unmarshal(e.RecordData, &snapshot); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if snapshot["title"] != "Run 120km" {
		t.Errorf(`snapshot title = %v, want "Run 120km"`, snapshot["title"])
	}

	updated, err := goals.GetByID(goal.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if updated.Title != "Run 150km" {
		t.Errorf("stored title = %q, want updated value", updated.Title)
	}
}

func TestUpdateMissingRowIsNotFound(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	goals := NewGoalStore(db, ids)

	g := &models.Goal{ID: 9999, Title: "Ghost"}
	err := goals.Update(g, "")
	if err == nil {
		t.Fatal("Update() of a missing row succeeded")
	}
	if !models.IsKind(err, models.ErrNotFound) {
		t.Errorf("error kind = %v, want NotFound", models.KindOf(err))
	}

	// The aborted write must not leave an archive entry behind.
	entries, err := NewArchiveStore(db).Entries("goals", 9999, 0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestDeleteCascadesWithSingleArchiveEntry(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	relations := NewRelationStore(db)

	goal := seedGoal(t, db, ids, "Run 120km", nil)
	measure := seedMeasure(t, db, ids, "km")
	if err := relations.CreateGoalMeasureTarget(&models.GoalMeasureTarget{
		GoalID: goal.ID, MeasureID: measure.ID, TargetValue: 120,
	}); err != nil {
		t.Fatalf("CreateGoalMeasureTarget() error = %v", err)
	}

	term := &models.Term{TermNumber: 1, StartDate: *datePtr(t, "2026-01-05"), EndDate: *datePtr(t, "2026-03-15")}
	if err := NewTermStore(db, ids).Create(term); err != nil {
		t.Fatalf("Create term error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := relations.CreateTermGoalAssignment(&models.TermGoalAssignment{
			TermID: term.ID, GoalID: goal.ID,
		}); err != nil {
			t.Fatalf("CreateTermGoalAssignment() error = %v", err)
		}
	}

	cascades := []CascadeRule{
		{Table: "goal_measure_targets", Column: "goal_id"},
		{Table: "term_goal_assignments", Column: "goal_id"},
	}
	if err := DeleteRecord(db, models.KindGoal, "goals", goal.ID, cascades, ""); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}

	// Only the root goal gets an archive entry; cascaded junction rows go
	// silently.
	all, err := NewArchiveStore(db).Entries("", 0, 0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(all))
	}
	if all[0].SourceTable != "goals" || all[0].SourceID != goal.ID {
		t.Errorf("archive entry = %s/%d, want goals/%d", all[0].SourceTable, all[0].SourceID, goal.ID)
	}
	if all[0].Reason != models.ArchiveDelete {
		t.Errorf("Reason = %q, want %q", all[0].Reason, models.ArchiveDelete)
	}

	var remaining int
	if err := db.QueryRow(`SELECT COUNT(*) FROM term_goal_assignments WHERE goal_id = ?`, goal.ID).Scan(&remaining); err != nil {
		t.Fatalf("count error = %v", err)
	}
	if remaining != 0 {
		t.Errorf("term_goal_assignments remaining = %d, want 0", remaining)
	}
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	db := newTestDB(t)

	err := DeleteRecord(db, models.KindGoal, "goals", 42, nil, "")
	if err == nil {
		t.Fatal("DeleteRecord() of a missing row succeeded")
	}
	if !models.IsKind(err, models.ErrNotFound) {
		t.Errorf("error kind = %v, want NotFound", models.KindOf(err))
	}
}

func TestVerifyRefReportsReference(t *testing.T) {
	db := newTestDB(t)

	err := db.WriteTx(func(tx *Tx) error {
		return verifyRef(tx, "goals", 77, "goal")
	})
	if err == nil {
		t.Fatal("verifyRef() accepted a missing reference")
	}
	if !models.IsKind(err, models.ErrForeignKeyViolation) {
		t.Errorf("error kind = %v, want ForeignKeyViolation", models.KindOf(err))
	}
	var domainErr *models.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error is not a DomainError: %v", err)
	}
	if domainErr.Reference != "goal" {
		t.Errorf("Reference = %q, want goal", domainErr.Reference)
	}
}
