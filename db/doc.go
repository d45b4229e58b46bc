// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the host database and creates its schema.

# Drivers

Two database/sql drivers are registered:

	db.DriverSQLite    modernc.org/sqlite (pure Go, default)
	db.DriverPostgres  github.com/lib/pq

Open pings the connection and creates the schema:

	conn, err := db.Open(ctx, db.DriverSQLite, "file:quiz.db")

SQLite connections are capped at one open connection, which also keeps
":memory:" databases alive for tests.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

  - quiz_session: one row per learner run. state holds the JSON snapshot
    (scores, answersGiven, results) exactly as the quiz engine produces it.
    position and personality are denormalised for queries.
  - quiz_completion: one row per completed run, used for statistics.

Timestamps are BIGINT unix milliseconds; queries use $N placeholders,
which both drivers accept.

# Relationships

	quiz_session 1──* quiz_completion

Foreign keys use ON DELETE CASCADE.
*/
package db
