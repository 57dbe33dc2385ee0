// ABOUTME: Tests for the storage facade
// ABOUTME: Verifies wiring, strategy selection, kind dispatch, and cascading deletes
package storage

import (
	"path/filepath"
	"testing"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
	"github.com/willbda/ten-week-goal-app-sub004/internal/storage/sqlite"
)

func newTestStorage(t *testing.T, opts Options) *Storage {
	t.Helper()
	store, err := OpenInMemory(opts)
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenCreatesDatabaseFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "goals.db")

	store, err := Open(dbPath, Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if store.DB().Path() != dbPath {
		t.Errorf("Path() = %q, want %q", store.DB().Path(), dbPath)
	}
}

func TestGraphStrategySelection(t *testing.T) {
	tests := []struct {
		strategy string
		want     string
	}{
		{"", "bulk"},
		{"bulk", "bulk"},
		{"json", "json"},
	}
	for _, tt := range tests {
		store := newTestStorage(t, Options{GraphStrategy: tt.strategy})
		if got := store.GraphStrategyName(); got != tt.want {
			t.Errorf("GraphStrategyName() with %q = %q, want %q", tt.strategy, got, tt.want)
		}
	}

	if _, err := OpenInMemory(Options{GraphStrategy: "eager"}); err == nil {
		t.Error("OpenInMemory() accepted an unknown strategy")
	}
}

func TestCreateAndReadGoalScenario(t *testing.T) {
	store := newTestStorage(t, Options{})

	goal := &models.Goal{Title: "Run 120km", TargetDate: nil}
	if err := store.Goals.Create(goal); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	km := &models.Measure{Title: "Kilometres", Unit: "km"}
	if err := store.Measures.Create(km); err != nil {
		t.Fatalf("Create measure error = %v", err)
	}
	if err := store.Relations.CreateGoalMeasureTarget(&models.GoalMeasureTarget{
		GoalID: goal.ID, MeasureID: km.ID, TargetValue: 120,
	}); err != nil {
		t.Fatalf("CreateGoalMeasureTarget() error = %v", err)
	}

	graph, err := store.GetGoalGraph(goal.ID)
	if err != nil {
		t.Fatalf("GetGoalGraph() error = %v", err)
	}
	if graph == nil {
		t.Fatal("GetGoalGraph() returned nil")
	}
	if len(graph.MeasureTargets) != 1 {
		t.Fatalf("len(MeasureTargets) = %d, want 1", len(graph.MeasureTargets))
	}
	if graph.MeasureTargets[0].Measure.Unit != "km" {
		t.Errorf("Measure.Unit = %q, want km", graph.MeasureTargets[0].Measure.Unit)
	}

	missing, err := store.GetGoalGraph(404)
	if err != nil {
		t.Fatalf("GetGoalGraph(404) error = %v", err)
	}
	if missing != nil {
		t.Errorf("GetGoalGraph(404) = %v, want nil", missing)
	}
}

func TestDeleteGoalCascades(t *testing.T) {
	store := newTestStorage(t, Options{})

	goal := &models.Goal{Title: "Run 120km"}
	if err := store.Goals.Create(goal); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	km := &models.Measure{Title: "Kilometres", Unit: "km"}
	if err := store.Measures.Create(km); err != nil {
		t.Fatalf("Create measure error = %v", err)
	}
	if err := store.Relations.CreateGoalMeasureTarget(&models.GoalMeasureTarget{
		GoalID: goal.ID, MeasureID: km.ID, TargetValue: 120,
	}); err != nil {
		t.Fatalf("CreateGoalMeasureTarget() error = %v", err)
	}

	if err := store.Delete(models.KindGoal, goal.ID, "changed plans"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	ok, err := store.Exists(models.KindGoal, goal.ID)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("goal still exists after delete")
	}

	// The measure survives; only the junction row went with the goal.
	ok, err = store.Exists(models.KindMeasure, km.ID)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !ok {
		t.Error("measure was deleted with the goal")
	}

	entries, err := store.Archive.Entries("goals", goal.ID, 0)
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("archive entries = %d, want 1", len(entries))
	}
	if entries[0].Notes != "changed plans" {
		t.Errorf("Notes = %q", entries[0].Notes)
	}

	var remaining int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM goal_measure_targets`).Scan(&remaining); err != nil {
		t.Fatalf("count error = %v", err)
	}
	if remaining != 0 {
		t.Errorf("goal_measure_targets remaining = %d, want 0", remaining)
	}
}

func TestDeleteUnknownKind(t *testing.T) {
	store := newTestStorage(t, Options{})

	err := store.Delete("mystery", 1, "")
	if err == nil {
		t.Fatal("Delete() accepted an unknown kind")
	}
	if !models.IsKind(err, models.ErrUnknownVariant) {
		t.Errorf("error kind = %v, want UnknownVariant", models.KindOf(err))
	}
}

func TestExistsByTitleDispatch(t *testing.T) {
	store := newTestStorage(t, Options{})

	v := &models.PersonalValue{Title: "Health", Level: models.LevelMajor, Priority: 5}
	if err := store.Values.Create(v); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	ok, err := store.ExistsByTitle(models.KindValue, "health")
	if err != nil {
		t.Fatalf("ExistsByTitle() error = %v", err)
	}
	if !ok {
		t.Error("ExistsByTitle() = false for existing value")
	}

	if _, err := store.ExistsByTitle("mystery", "x"); err == nil {
		t.Error("ExistsByTitle() accepted an unknown kind")
	}
}

func TestFetchGoalGraphsBothStrategies(t *testing.T) {
	for _, strategy := range []string{"bulk", "json"} {
		store := newTestStorage(t, Options{GraphStrategy: strategy})

		goal := &models.Goal{Title: "Run 120km"}
		if err := store.Goals.Create(goal); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		graphs, err := store.FetchGoalGraphs(sqlite.GraphFilter{})
		if err != nil {
			t.Fatalf("%s FetchGoalGraphs() error = %v", strategy, err)
		}
		if len(graphs) != 1 || graphs[0].Goal.ID != goal.ID {
			t.Errorf("%s graphs = %+v, want the single goal", strategy, graphs)
		}
	}
}
