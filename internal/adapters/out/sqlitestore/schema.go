// Package sqlitestore keeps drafts in an embedded SQLite database through
// database/sql and the pure-Go modernc.org/sqlite driver. It serves single-node
// deployments that want restart-safe drafts without a database server.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
)

// Open opens (or creates) the database file at path and initialises the schema.
// SQLite serialises writers, so the pool is limited to one connection.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite: verify connection: %w", err)
	}
	if err = InitSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates the drafts and archived_drafts tables when missing.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDraftsQuery := `
	CREATE TABLE IF NOT EXISTS drafts (
		id TEXT PRIMARY KEY,
		status INTEGER NOT NULL,
		tracking_number TEXT UNIQUE,
		snapshot TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`

	createArchiveQuery := `
	CREATE TABLE IF NOT EXISTS archived_drafts (
		id TEXT PRIMARY KEY,
		status INTEGER NOT NULL,
		tracking_number TEXT UNIQUE,
		cancel_reason TEXT NOT NULL DEFAULT '',
		snapshot TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		archived_at INTEGER NOT NULL
	);
	`

	createStaleIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_drafts_status_updated_at
	ON drafts(status, updated_at);
	`

	statements := []string{
		createDraftsQuery,
		createArchiveQuery,
		createStaleIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
