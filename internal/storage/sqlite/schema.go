// ABOUTME: SQLite database schema for the goal-tracking core
// ABOUTME: One table per core entity, one per junction, plus archive and identity tables
package sqlite

// Schema contains all SQL statements for database initialization. All date
// and timestamp columns are ISO-8601 text.
const Schema = `
-- Core entities
CREATE TABLE IF NOT EXISTS actions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT,
    notes TEXT,
    start_time TEXT,
    duration_minutes REAL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT,
    notes TEXT,
    start_date TEXT,
    target_date TEXT,
    action_plan TEXT,
    expected_duration_weeks INTEGER,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS measures (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT,
    notes TEXT,
    unit TEXT NOT NULL UNIQUE,
    category TEXT,
    canonical_unit TEXT,
    conversion_factor REAL,
    created_at TEXT NOT NULL
);

-- One physical table for four logical value levels; value_level is the
-- discriminator column.
CREATE TABLE IF NOT EXISTS personal_values (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT,
    notes TEXT,
    value_level TEXT NOT NULL,
    priority INTEGER NOT NULL DEFAULT 50,
    life_domain TEXT,
    alignment_guidance TEXT,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS terms (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    term_number INTEGER NOT NULL,
    title TEXT,
    description TEXT,
    notes TEXT,
    start_date TEXT NOT NULL,
    end_date TEXT NOT NULL,
    theme TEXT,
    reflection TEXT,
    status TEXT NOT NULL DEFAULT 'planned',
    created_at TEXT NOT NULL
);

-- Junction relationships; each row has its own id and timestamp.
CREATE TABLE IF NOT EXISTS measured_actions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    action_id INTEGER NOT NULL REFERENCES actions(id) ON DELETE CASCADE,
    measure_id INTEGER NOT NULL REFERENCES measures(id) ON DELETE CASCADE,
    value REAL NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goal_measure_targets (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    goal_id INTEGER NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
    measure_id INTEGER NOT NULL REFERENCES measures(id) ON DELETE CASCADE,
    target_value REAL NOT NULL,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goal_value_alignments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    goal_id INTEGER NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
    value_id INTEGER NOT NULL REFERENCES personal_values(id) ON DELETE CASCADE,
    alignment_strength INTEGER,
    note TEXT,
    created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS action_goal_contributions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    action_id INTEGER NOT NULL REFERENCES actions(id) ON DELETE CASCADE,
    goal_id INTEGER NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
    contribution REAL,
    measure_id INTEGER REFERENCES measures(id) ON DELETE SET NULL,
    created_at TEXT NOT NULL
);

-- No uniqueness constraint on goal_id: readers apply last-write-wins.
CREATE TABLE IF NOT EXISTS term_goal_assignments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    term_id INTEGER NOT NULL REFERENCES terms(id) ON DELETE CASCADE,
    goal_id INTEGER NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
    sort_order INTEGER,
    created_at TEXT NOT NULL
);

-- Append-only audit trail of prior record states.
CREATE TABLE IF NOT EXISTS archive (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_table TEXT NOT NULL,
    source_id INTEGER NOT NULL,
    record_data TEXT NOT NULL,
    reason TEXT NOT NULL,
    notes TEXT,
    created_at TEXT NOT NULL
);

-- Stable external ids for rows keyed by auto-incrementing integers.
CREATE TABLE IF NOT EXISTS identity_mappings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    entity_type TEXT NOT NULL,
    internal_id INTEGER NOT NULL,
    external_id TEXT NOT NULL UNIQUE,
    created_at TEXT NOT NULL,
    UNIQUE (entity_type, internal_id)
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_measured_actions_action ON measured_actions(action_id);
CREATE INDEX IF NOT EXISTS idx_measured_actions_measure ON measured_actions(measure_id);
CREATE INDEX IF NOT EXISTS idx_goal_measure_targets_goal ON goal_measure_targets(goal_id);
CREATE INDEX IF NOT EXISTS idx_goal_value_alignments_goal ON goal_value_alignments(goal_id);
CREATE INDEX IF NOT EXISTS idx_action_goal_contributions_action ON action_goal_contributions(action_id);
CREATE INDEX IF NOT EXISTS idx_action_goal_contributions_goal ON action_goal_contributions(goal_id);
CREATE INDEX IF NOT EXISTS idx_term_goal_assignments_goal ON term_goal_assignments(goal_id);
CREATE INDEX IF NOT EXISTS idx_term_goal_assignments_term ON term_goal_assignments(term_id);
CREATE INDEX IF NOT EXISTS idx_archive_source ON archive(source_table, source_id);
CREATE INDEX IF NOT EXISTS idx_goals_target_date ON goals(target_date);
`

// SchemaVersion is the current schema version for migrations.
const SchemaVersion = 1

// initSchema applies the schema idempotently.
func (db *DB) initSchema() error {
	_, err := db.conn.Exec(Schema)
	return err
}
