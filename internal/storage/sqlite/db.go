// ABOUTME: SQLite database connection and lifecycle management
// ABOUTME: Uses modernc.org/sqlite for pure-Go SQLite support
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Querier is the read/write surface shared by a database handle and an open
// transaction, so lookups (identity stabilization in particular) can run in
// either context.
type Querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// DB wraps a SQLite database connection. All statements should go through
// its Exec/Query methods so the query counter and metrics stay accurate.
type DB struct {
	conn *sql.DB
	path string
	log  zerolog.Logger

	// queryCount backs the bounded-query guarantees of the bulk graph
	// strategy; tests read it through QueryCount.
	queryCount atomic.Int64
}

// Option configures a DB handle.
type Option func(*DB)

// WithLogger installs a structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(db *DB) { db.log = log }
}

// DefaultDataDir returns the default data directory following the XDG spec.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/goals"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "goals")
}

// DefaultDBPath returns the default database file path.
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "goals.db")
}

// Open opens or creates a SQLite database at the given path.
func Open(path string, opts ...Option) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// WAL gives one writer plus unlimited snapshot readers.
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return newDB(conn, path, opts...)
}

// OpenInMemory creates an in-memory SQLite database (for testing).
func OpenInMemory(opts ...Option) (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// Each pooled connection would get its own empty in-memory database.
	conn.SetMaxOpenConns(1)

	return newDB(conn, ":memory:", opts...)
}

func newDB(conn *sql.DB, path string, opts ...Option) (*DB, error) {
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: path,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(db)
	}

	if err := db.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.log.Debug().Str("path", path).Msg("database opened")
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Exec executes a statement.
func (db *DB) Exec(query string, args ...any) (sql.Result, error) {
	db.count("exec")
	db.log.Debug().Str("sql", query).Msg("exec")
	return db.conn.Exec(query, args...)
}

// Query executes a query returning rows.
func (db *DB) Query(query string, args ...any) (*sql.Rows, error) {
	db.count("query")
	db.log.Debug().Str("sql", query).Msg("query")
	return db.conn.Query(query, args...)
}

// QueryRow executes a query returning a single row.
func (db *DB) QueryRow(query string, args ...any) *sql.Row {
	db.count("query")
	db.log.Debug().Str("sql", query).Msg("query row")
	return db.conn.QueryRow(query, args...)
}

// QueryCount returns the number of statements issued through this handle.
func (db *DB) QueryCount() int64 {
	return db.queryCount.Load()
}

// ResetQueryCount zeroes the statement counter.
func (db *DB) ResetQueryCount() {
	db.queryCount.Store(0)
}

func (db *DB) count(op string) {
	db.queryCount.Add(1)
	queriesTotal.WithLabelValues(op).Inc()
}

// Tx is an open writer transaction. Statements issued through it share the
// owning handle's counters and logger.
type Tx struct {
	tx *sql.Tx
	db *DB
}

// Exec executes a statement inside the transaction.
func (t *Tx) Exec(query string, args ...any) (sql.Result, error) {
	t.db.count("exec")
	t.db.log.Debug().Str("sql", query).Msg("tx exec")
	return t.tx.Exec(query, args...)
}

// Query executes a query inside the transaction.
func (t *Tx) Query(query string, args ...any) (*sql.Rows, error) {
	t.db.count("query")
	t.db.log.Debug().Str("sql", query).Msg("tx query")
	return t.tx.Query(query, args...)
}

// QueryRow executes a single-row query inside the transaction.
func (t *Tx) QueryRow(query string, args ...any) *sql.Row {
	t.db.count("query")
	return t.tx.QueryRow(query, args...)
}

// WriteTx runs fn inside a single writer transaction. Any error rolls the
// whole transaction back, so no partial archive-without-mutate state is ever
// observable.
func (db *DB) WriteTx(fn func(*Tx) error) error {
	tx, err := db.conn.BeginTx(context.Background(), nil)
	if err != nil {
		return translateError(err)
	}

	if err := fn(&Tx{tx: tx, db: db}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.log.Error().Err(rbErr).Msg("rollback failed")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return translateError(err)
	}
	return nil
}
