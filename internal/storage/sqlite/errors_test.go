// ABOUTME: Tests for storage error translation into the domain error taxonomy
// ABOUTME: Exercises real constraint failures against an in-memory database
package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
)

func TestDuplicateUnitIsDuplicateRecord(t *testing.T) {
	db := newTestDB(t)
	ids := NewIdentityStore(db)

	seedMeasure(t, db, ids, "km")

	dup := &models.Measure{Title: "kilometres", Unit: "km"}
	err := NewMeasureStore(db, ids).Create(dup)
	if err == nil {
		t.Fatal("Create() accepted a duplicate unit")
	}
	if !models.IsKind(err, models.ErrDuplicateRecord) {
		t.Errorf("error kind = %v, want DuplicateRecord", models.KindOf(err))
	}

	var domainErr *models.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error is not a DomainError: %v", err)
	}
	if domainErr.Field != "unit" {
		t.Errorf("Field = %q, want unit", domainErr.Field)
	}
}

func TestNotNullViolationIsMissingRequiredField(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Exec(`INSERT INTO goals (title, created_at) VALUES (NULL, ?)`, encodeTime(time.Now()))
	if err == nil {
		t.Fatal("insert with NULL title succeeded")
	}
	translated := translateError(err)
	if !models.IsKind(translated, models.ErrMissingRequiredField) {
		t.Errorf("error kind = %v, want MissingRequiredField", models.KindOf(translated))
	}

	var domainErr *models.DomainError
	if !errors.As(translated, &domainErr) {
		t.Fatalf("error is not a DomainError: %v", translated)
	}
	if domainErr.Field != "title" {
		t.Errorf("Field = %q, want title", domainErr.Field)
	}
}

func TestForeignKeyViolationOnJunctionInsert(t *testing.T) {
	db := newTestDB(t)

	err := NewRelationStore(db).CreateGoalMeasureTarget(&models.GoalMeasureTarget{
		GoalID: 999, MeasureID: 888, TargetValue: 10,
	})
	if err == nil {
		t.Fatal("CreateGoalMeasureTarget() accepted missing parents")
	}
	if !models.IsKind(err, models.ErrForeignKeyViolation) {
		t.Errorf("error kind = %v, want ForeignKeyViolation", models.KindOf(err))
	}

	var domainErr *models.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("error is not a DomainError: %v", err)
	}
	// The first missing parent is named.
	if domainErr.Reference != "goal" {
		t.Errorf("Reference = %q, want goal", domainErr.Reference)
	}
}

func TestTranslateErrorPassesThroughDomainErrors(t *testing.T) {
	original := models.NewError(models.ErrNotFound, "no goal with id 1")
	if got := translateError(original); got != original {
		t.Errorf("translateError() rewrapped a domain error: %v", got)
	}
}

func TestTranslateErrorPassesThroughUnknownErrors(t *testing.T) {
	original := errors.New("something unrelated")
	if got := translateError(original); got != original {
		t.Errorf("translateError() = %v, want original error", got)
	}
}

func TestConstraintColumn(t *testing.T) {
	tests := []struct {
		msg  string
		want string
	}{
		{"NOT NULL constraint failed: goals.title", "title"},
		{"NOT NULL constraint failed: goals.title (1299)", "title"},
		{"UNIQUE constraint failed: measures.unit (2067)", "unit"},
		{"FOREIGN KEY constraint failed", ""},
		{"no colon here", ""},
	}
	for _, tt := range tests {
		if got := constraintColumn(tt.msg); got != tt.want {
			t.Errorf("constraintColumn(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}
