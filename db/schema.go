// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"  // driver: postgres
	_ "modernc.org/sqlite" // driver: sqlite
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open connects to the database and makes sure the schema exists.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database type %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if driver == DriverSQLite {
		// One writer; in-memory databases also vanish with their last
		// connection.
		conn.SetMaxOpenConns(1)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if err := CreateSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Timestamps are unix milliseconds so the schema runs unchanged on sqlite
// and postgres.
const schema = `
-- Quiz sessions
CREATE TABLE IF NOT EXISTS quiz_session (
    id TEXT PRIMARY KEY,
    state TEXT NOT NULL DEFAULT '{}',
    position INTEGER NOT NULL DEFAULT 0,
    personality TEXT NOT NULL DEFAULT '',
    client_hash TEXT,
    version BIGINT NOT NULL DEFAULT 0,
    created_at BIGINT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quiz_session_updated_at ON quiz_session(updated_at);

-- Completed runs, one row per reveal
CREATE TABLE IF NOT EXISTS quiz_completion (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES quiz_session(id) ON DELETE CASCADE,
    personality TEXT NOT NULL,
    answers INTEGER NOT NULL,
    completed_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_quiz_completion_session_id ON quiz_completion(session_id);
CREATE INDEX IF NOT EXISTS idx_quiz_completion_personality ON quiz_completion(personality);
`
