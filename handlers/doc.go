// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers of the quiz host.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SessionHandler: one learner's run through the quiz
  - StatsHandler: completion counts per personality

Handlers are created via constructor functions:

	rt := handlers.NewRuntime(quizCfg, title, loop, cfg.AssetBaseURL)
	sessionHandler := handlers.NewSessionHandler(db, cfg, rt)

Runtime bundles what all sessions share: the quiz configuration, the
clock.Loop every machine runs on, the websocket Hub and the analytics
Recorder.

# Session Lifecycle

	POST /sessions                → CreateSession (returns session_token)
	GET  /sessions/{id}           → GetSession (current screen)
	GET  /sessions/{id}/state     → GetState (resumable snapshot)
	POST /sessions/{id}/start     → Start (leave the title screen)
	POST /sessions/{id}/answers   → SubmitAnswer
	POST /sessions/{id}/skip      → Skip (stop the wheel)
	POST /sessions/{id}/retake    → Retake
	GET  /sessions/{id}/results   → GetResults
	GET  /sessions/{id}/xapi      → GetStatement
	GET  /sessions/{id}/stream    → Stream (websocket)

Session operations require the session token as a bearer token, the
X-Session-Token header, or a token query parameter.

# Threading

quiz.Machine is single-threaded. Every handler touches machines only inside
Loop.Do, and machine timers are posted back to the same loop, so requests
and animations never race. Database work happens outside the loop: a
mutation takes a versioned snapshot on the loop and the handler writes it
after Loop.Do returns, so a slow database never holds up the wheel timers
of other sessions. Each write must follow the version it was loaded at,
so two machines for one session can never overwrite each other.

If the write fails the live machine is dropped from the cache, and the next
request rebuilds it from the last snapshot that was stored.

# Live Sessions

Machines are cached in a golang-lru cache sized by SessionCacheSize. A
miss rebuilds the machine from the stored snapshot; a finished quiz comes
back on its result screen with the same personality. Evicted machines have
their timers stopped.

# Events

Machine hooks publish to the Hub:

	screen changes, wheel angles, announcements, resize requests,
	xAPI progressed/completed statements

and count progress and retakes on the analytics Recorder. Reveals are
queued on the session and, once the snapshot holding them is stored,
counted and logged to the quiz_completion table for GetStats.

Every view also carries the display settings of the definition: button
labels, the title screen, and the progress text when the bar is on.
*/
package handlers
