// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: Connection string (default for sqlite: personality-quiz.db)
  - QuizFile: Quiz definition, YAML or JSON (default: quiz.yaml)
  - AssetBaseURL: Prefix for relative image paths
  - SessionSalt: Secret for session token HMAC (required)
  - SessionCacheSize: Live sessions kept in memory (default: 1024)
  - RandomSeed: Fixed seed for tie-breaks and wheel stops (default: random)

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-q             Quiz definition file
	-assets        Asset base URL
	-session-salt  Session token salt
	-cache         Session cache size
	-seed          Random seed

# Environment Variables

Flags fall back to environment variables:

	PORT               → -p
	DATABASE_URL       → -d
	DATABASE_TYPE      → -t
	QUIZ_FILE          → -q
	ASSET_BASE_URL     → -assets
	SESSION_SALT       → -session-salt
	SESSION_CACHE_SIZE → -cache
	RANDOM_SEED        → -seed

main loads a .env file into the environment before parsing.
*/
package cliparse
