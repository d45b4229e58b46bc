// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil holds helpers shared by the HTTP and database tests.
package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/personality-quiz/auth"
	"github.com/danielhkuo/personality-quiz/cliparse"
	"github.com/danielhkuo/personality-quiz/clock"
	"github.com/danielhkuo/personality-quiz/db"
	"github.com/danielhkuo/personality-quiz/quiz"
)

// TestDBURL is a private in-memory sqlite database
const TestDBURL = ":memory:"

// SetupTestDB creates a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.DriverSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      TestDBURL,
		DatabaseType:     db.DriverSQLite,
		QuizFile:         "testdata/quiz.yaml",
		SessionSalt:      "test-session-salt",
		SessionCacheSize: 8,
		RandomSeed:       1,
	}
}

// TestQuiz returns a two-question quiz over Wizard, Knight and Rogue.
// Answering option 0 twice reveals Wizard, option 1 twice Knight.
func TestQuiz() quiz.Config {
	return quiz.Config{
		Personalities: []quiz.Personality{
			{Name: "Wizard", Description: "Curious and bookish.", Image: "wizard.png"},
			{Name: "Knight", Description: "Loyal to a fault."},
			{Name: "Rogue", Description: "Quick hands, quicker wit."},
		},
		Questions: []quiz.Question{
			{Text: "Pick a weapon", Answers: []quiz.Answer{
				{Text: "Staff", Image: "staff.png", Personalities: "wizard=2"},
				{Text: "Sword", Personalities: "knight=2"},
				{Text: "Dagger", Personalities: "rogue=2"},
			}},
			{Text: "Pick a place", Answers: []quiz.Answer{
				{Text: "Library", Personalities: "wizard"},
				{Text: "Castle", Personalities: "knight"},
				{Text: "Alley", Personalities: "rogue"},
			}},
		},
	}
}

// StartLoop runs an event loop until the test ends
func StartLoop(t *testing.T) *clock.Loop {
	t.Helper()

	loop := clock.NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		loop.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return loop
}

// AuthHeader returns the session token header for a session
func AuthHeader(cfg cliparse.Config, sessionID string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + auth.GenerateSessionToken(sessionID, cfg.SessionSalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
