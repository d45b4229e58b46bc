// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the personality quiz host.

The host serves one quiz definition. Each visitor gets a session whose
machine asks the questions, adds up the scores per personality and reveals
the winner, either directly, with a fade or with a wheel of fortune.
Progress is saved after every answer so a reload resumes where it stopped.

# Starting the Server

The server reads a .env file, environment variables or CLI flags:

	SESSION_SALT=... QUIZ_FILE=quiz.yaml go run .

Or with flags:

	go run . -p 3318 -q quiz.yaml -t postgres -d "postgres://..."

# Configuration

Required settings:

  - SESSION_SALT (--session-salt): Secret for session token HMAC

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - QUIZ_FILE (-q): YAML or JSON quiz definition (default: quiz.yaml)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (required for postgres)
  - ASSET_BASE_URL (--assets): Base URL for relative image paths
  - SESSION_CACHE_SIZE (--cache): Live sessions kept in memory (default: 1024)
  - RANDOM_SEED (--seed): Fixed seed for tie-breaks and wheel stops

A quiz definition that sanitizes down to nothing does not stop the
server; every session request answers with the configured message.

# Architecture

  - quiz: Score matrix, progress tracker, result resolver and state machine
  - wheel: Wheel-of-fortune targeting and spin animation
  - clock: Timer scheduling and the single-goroutine event loop
  - content: Quiz definition files and sanitization
  - analytics: Progress statements and Prometheus counters
  - handlers: HTTP request handlers, session cache, websocket stream
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Session IDs and tokens
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
