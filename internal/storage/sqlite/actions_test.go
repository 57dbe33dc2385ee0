// ABOUTME: Tests for action persistence
// ABOUTME: Verifies timing fields survive round trips and updates archive prior state
package sqlite

import (
	"testing"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

func TestActionCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	actions := NewActionStore(db, ids)

	start := time.Date(2026, 2, 10, 6, 30, 0, 0, time.UTC)
	duration := 48.5
	a := &models.Action{
		Title:           "Morning run",
		StartTime:       &start,
		DurationMinutes: &duration,
	}
	if err := actions.Create(a); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := actions.GetByID(a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetByID() returned nil")
	}
	if got.StartTime == nil || !got.StartTime.Equal(start) {
		t.Errorf("StartTime = %v, want %v", got.StartTime, start)
	}
	if got.DurationMinutes == nil || *got.DurationMinutes != 48.5 {
		t.Errorf("DurationMinutes = %v, want 48.5", got.DurationMinutes)
	}
	if got.ExternalID == "" {
		t.Error("external id not stabilized")
	}
}

func TestActionListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	actions := NewActionStore(db, ids)

	older := &models.Action{Title: "Older", CreatedAt: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	newer := &models.Action{Title: "Newer", CreatedAt: time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)}
	for _, a := range []*models.Action{older, newer} {
		if err := actions.Create(a); err != nil {
			t.Fatalf("Create(%q) error = %v", a.Title, err)
		}
	}

	list, err := actions.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].ID != newer.ID {
		t.Errorf("list[0].ID = %d, want newest action %d", list[0].ID, newer.ID)
	}
}

func TestActionUpdateArchives(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)
	actions := NewActionStore(db, ids)

	a := seedAction(t, db, ids, "Run")
	a.Notes = "felt strong"
	if err := actions.Update(a, ""); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	entries, err := NewArchiveStore(db).Entries("actions", a.ID, 0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}
