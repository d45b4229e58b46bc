// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the quiz host.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, rt)

# Endpoints

Health and metrics:

	GET /health
	GET /metrics   - Prometheus scrape endpoint (when rt.Gatherer is set)

Sessions (requires the session token except for creation):

	POST /sessions              - Start or resume a run
	GET  /sessions/{id}         - Current screen
	GET  /sessions/{id}/state   - Resumable snapshot
	POST /sessions/{id}/start   - Leave the title screen
	POST /sessions/{id}/answers - Answer the current question
	POST /sessions/{id}/skip    - Stop the wheel
	POST /sessions/{id}/retake  - Start over

Results and reporting:

	GET /sessions/{id}/results - Revealed personality
	GET /sessions/{id}/xapi    - Answered statement
	GET /stats                 - Completions per personality

Live events:

	GET /sessions/{id}/stream - Websocket event stream

# Handler Initialization

	sessionHandler := handlers.NewSessionHandler(db, cfg, rt)
	statsHandler := handlers.NewStatsHandler(db, cfg)

All handlers receive the database connection and configuration; session
handlers also share the Runtime.
*/
package router
