package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the database connection and provides initialization
type DB struct {
	*sql.DB
}

// NewDB creates and initializes a new database connection
func NewDB(dbPath string) (*DB, error) {
	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single writer per run; SQLite serializes writes anyway.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{DB: sqlDB}

	if err := db.initSchema(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// initSchema creates the run history table and its indexes
func (db *DB) initSchema() error {
	schema := `
-- One row per probed descriptor per run
CREATE TABLE IF NOT EXISTS probe_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    proxy TEXT NOT NULL,
    proxy_type TEXT NOT NULL,

    -- Outcome
    status TEXT NOT NULL,            -- GOOD, BAD
    anonymity TEXT NOT NULL,
    response_time_ms INTEGER NOT NULL DEFAULT 0,
    speed TEXT NOT NULL,
    country TEXT,
    error_message TEXT,

    checked_at DATETIME NOT NULL
);

-- Index for loading a run
CREATE INDEX IF NOT EXISTS idx_probe_results_run ON probe_results(run_id);

-- Index for ranking within a run
CREATE INDEX IF NOT EXISTS idx_probe_results_rank ON probe_results(run_id, status, response_time_ms);`

	_, err := db.Exec(schema)
	return err
}
