// Package sqlite stores venue snapshots in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// migrations are applied in order. A database records how many it has seen
// in PRAGMA user_version, so entries must only ever be appended.
var migrations = []string{
	// 1: one row per venue holding the page body seen on the last run.
	`CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		venue TEXT NOT NULL UNIQUE,
		url TEXT NOT NULL,
		body TEXT NOT NULL DEFAULT '',
		content_hash TEXT NOT NULL DEFAULT '',
		fetched_at TEXT NOT NULL
	)`,
}

// DB is a SQLite connection holding the snapshot schema.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for path. Use ":memory:" for a throwaway database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open connects to the database and migrates it to the current schema.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	// One writer at a time; a single connection also keeps ":memory:" shared.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("connect to database: %w", err)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return fmt.Errorf("%s: %w", p, err)
		}
	}

	db.db = conn
	if err := db.migrate(context.Background()); err != nil {
		conn.Close()
		db.db = nil
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// Version reports the schema version recorded in the database.
func (db *DB) Version(ctx context.Context) (int, error) {
	var v int
	if err := db.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// migrate applies every migration newer than the stored user_version, each in
// its own transaction together with the version bump.
func (db *DB) migrate(ctx context.Context) error {
	current, err := db.Version(ctx)
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this binary supports (%d)", current, len(migrations))
	}

	for i := current; i < len(migrations); i++ {
		tx, err := db.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
	}
	return nil
}
