// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/personality-quiz/quiz"
)

var (
	errSessionNotFound = errors.New("session not found")
	errStaleSession    = errors.New("session changed since it was loaded")
)

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

func insertSession(ctx context.Context, db *sql.DB, id string, state quiz.State, clientHash string) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	now := nowMillis()
	_, err = db.ExecContext(ctx, `
		INSERT INTO quiz_session (id, state, position, personality, client_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, id, string(payload), len(state.AnswersGiven), state.Results, clientHash, now)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// storedState is a snapshot as last written, with the version of the
// write that produced it.
type storedState struct {
	state   quiz.State
	version int64
}

func loadState(ctx context.Context, db *sql.DB, id string) (storedState, error) {
	var payload string
	var stored storedState
	err := db.QueryRowContext(ctx, `SELECT state, version FROM quiz_session WHERE id = $1`, id).Scan(&payload, &stored.version)
	if errors.Is(err, sql.ErrNoRows) {
		return storedState{}, errSessionNotFound
	}
	if err != nil {
		return storedState{}, fmt.Errorf("query session: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &stored.state); err != nil {
		// The machine treats an empty snapshot as a fresh start.
		stored.state = quiz.State{}
		return stored, fmt.Errorf("%w: stored state unreadable: %v", quiz.ErrConsistency, err)
	}
	return stored, nil
}

// saveState writes state as the given version. It only succeeds when the
// stored row is at the version before it; otherwise another machine has
// written the session since this one was loaded, and errStaleSession is
// returned.
func saveState(ctx context.Context, db *sql.DB, id string, version int64, state quiz.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	res, err := db.ExecContext(ctx, `
		UPDATE quiz_session
		SET state = $1, position = $2, personality = $3, version = $4, updated_at = $5
		WHERE id = $6 AND version = $7
	`, string(payload), len(state.AnswersGiven), state.Results, version, nowMillis(), id, version-1)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil || n > 0 {
		return nil
	}

	var exists int
	err = db.QueryRowContext(ctx, `SELECT 1 FROM quiz_session WHERE id = $1`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return errSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("query session: %w", err)
	}
	return errStaleSession
}

func insertCompletion(ctx context.Context, db *sql.DB, sessionID, personality string, answers int) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO quiz_completion (id, session_id, personality, answers, completed_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.NewString(), sessionID, personality, answers, nowMillis())
	if err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}
	return nil
}
