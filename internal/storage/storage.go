// ABOUTME: Storage facade composing the per-entity stores into one read/write API
// ABOUTME: Owns the database handle, identity stabilizer, and graph strategy selection
package storage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/willbda/ten-week-goal-app-sub004/internal/models"
	"github.com/willbda/ten-week-goal-app-sub004/internal/storage/sqlite"
)

// Storage is the single entry point for persistence. Callers create one per
// database and reach the typed stores through it.
type Storage struct {
	db  *sqlite.DB
	ids *sqlite.IdentityStore

	Actions   *sqlite.ActionStore
	Goals     *sqlite.GoalStore
	Measures  *sqlite.MeasureStore
	Values    *sqlite.ValueStore
	Terms     *sqlite.TermStore
	Relations *sqlite.RelationStore
	Progress  *sqlite.ProgressStore
	Archive   *sqlite.ArchiveStore

	graph sqlite.GraphStrategy
}

// Options configure a Storage instance.
type Options struct {
	// GraphStrategy selects how goal graphs are assembled: "bulk" (default)
	// or "json". Both produce identical results.
	GraphStrategy string
	Logger        zerolog.Logger
}

// Open opens or creates the database at path and wires up all stores.
func Open(path string, opts Options) (*Storage, error) {
	db, err := sqlite.Open(path, sqlite.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	return newStorage(db, opts)
}

// OpenInMemory creates a storage instance backed by an in-memory database.
func OpenInMemory(opts Options) (*Storage, error) {
	db, err := sqlite.OpenInMemory(sqlite.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	return newStorage(db, opts)
}

func newStorage(db *sqlite.DB, opts Options) (*Storage, error) {
	ids := sqlite.NewIdentityStore(db)

	s := &Storage{
		db:        db,
		ids:       ids,
		Actions:   sqlite.NewActionStore(db, ids),
		Goals:     sqlite.NewGoalStore(db, ids),
		Measures:  sqlite.NewMeasureStore(db, ids),
		Values:    sqlite.NewValueStore(db, ids),
		Terms:     sqlite.NewTermStore(db, ids),
		Relations: sqlite.NewRelationStore(db),
		Progress:  sqlite.NewProgressStore(db),
		Archive:   sqlite.NewArchiveStore(db),
	}

	switch opts.GraphStrategy {
	case "", "bulk":
		s.graph = sqlite.NewBulkGraphStrategy(db, ids)
	case "json":
		s.graph = sqlite.NewJSONGraphStrategy(db, ids)
	default:
		_ = db.Close()
		return nil, fmt.Errorf("unknown graph strategy %q", opts.GraphStrategy)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Storage) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for tests and diagnostics.
func (s *Storage) DB() *sqlite.DB {
	return s.db
}

// GraphStrategyName reports which graph assembly strategy is active.
func (s *Storage) GraphStrategyName() string {
	return s.graph.Name()
}

// FetchGoalGraphs assembles fully populated goal graphs using the configured
// strategy.
func (s *Storage) FetchGoalGraphs(filter sqlite.GraphFilter) ([]models.GoalGraph, error) {
	return s.graph.FetchGoalGraphs(filter)
}

// GetGoalGraph assembles the graph for a single goal. Returns nil when the
// goal does not exist.
func (s *Storage) GetGoalGraph(goalID int64) (*models.GoalGraph, error) {
	graphs, err := s.graph.FetchGoalGraphs(sqlite.GraphFilter{GoalID: &goalID})
	if err != nil {
		return nil, err
	}
	if len(graphs) == 0 {
		return nil, nil
	}
	return &graphs[0], nil
}

// GoalProgress computes progress rows for every goal measure target.
func (s *Storage) GoalProgress() ([]models.ProgressRow, error) {
	return s.Progress.GoalProgress()
}

// entityTables maps each entity kind to its table.
var entityTables = map[models.EntityKind]string{
	models.KindAction:  "actions",
	models.KindGoal:    "goals",
	models.KindMeasure: "measures",
	models.KindValue:   "personal_values",
	models.KindTerm:    "terms",
}

// cascades lists the junction tables cleared when a root entity is deleted.
// Junction rows go silently; only the root gets an archive entry.
var cascades = map[models.EntityKind][]sqlite.CascadeRule{
	models.KindAction: {
		{Table: "measured_actions", Column: "action_id"},
		{Table: "action_goal_contributions", Column: "action_id"},
	},
	models.KindGoal: {
		{Table: "goal_measure_targets", Column: "goal_id"},
		{Table: "goal_value_alignments", Column: "goal_id"},
		{Table: "action_goal_contributions", Column: "goal_id"},
		{Table: "term_goal_assignments", Column: "goal_id"},
	},
	models.KindMeasure: {
		{Table: "measured_actions", Column: "measure_id"},
		{Table: "goal_measure_targets", Column: "measure_id"},
	},
	models.KindValue: {
		{Table: "goal_value_alignments", Column: "value_id"},
	},
	models.KindTerm: {
		{Table: "term_goal_assignments", Column: "term_id"},
	},
}

// Delete archives the entity's prior state, removes its junction rows, the
// row itself, and its identity mapping, all in one transaction.
func (s *Storage) Delete(kind models.EntityKind, id int64, notes string) error {
	table, ok := entityTables[kind]
	if !ok {
		return models.NewError(models.ErrUnknownVariant, "unknown entity kind %q", kind)
	}
	return sqlite.DeleteRecord(s.db, kind, table, id, cascades[kind], notes)
}

// Exists reports whether an entity row of the given kind exists.
func (s *Storage) Exists(kind models.EntityKind, id int64) (bool, error) {
	switch kind {
	case models.KindAction:
		return s.Actions.Exists(id)
	case models.KindGoal:
		return s.Goals.Exists(id)
	case models.KindMeasure:
		return s.Measures.Exists(id)
	case models.KindValue:
		return s.Values.Exists(id)
	case models.KindTerm:
		return s.Terms.Exists(id)
	default:
		return false, models.NewError(models.ErrUnknownVariant, "unknown entity kind %q", kind)
	}
}

// ExistsByTitle reports whether an entity with the title exists,
// case-insensitively.
func (s *Storage) ExistsByTitle(kind models.EntityKind, title string) (bool, error) {
	switch kind {
	case models.KindAction:
		return s.Actions.ExistsByTitle(title)
	case models.KindGoal:
		return s.Goals.ExistsByTitle(title)
	case models.KindMeasure:
		return s.Measures.ExistsByTitle(title)
	case models.KindValue:
		return s.Values.ExistsByTitle(title)
	case models.KindTerm:
		return s.Terms.ExistsByTitle(title)
	default:
		return false, models.NewError(models.ErrUnknownVariant, "unknown entity kind %q", kind)
	}
}
