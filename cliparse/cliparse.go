// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
)

const (
	DefaultPort             = 3318
	DefaultDatabaseType     = "sqlite"
	DefaultSQLiteURL        = "file:personality-quiz.db?_pragma=busy_timeout(5000)"
	DefaultQuizFile         = "quiz.yaml"
	DefaultSessionCacheSize = 1024
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// QuizFile is the YAML or JSON quiz definition.
	QuizFile string

	// AssetBaseURL prefixes relative image paths.
	AssetBaseURL string

	SessionSalt      string
	SessionCacheSize int

	// RandomSeed makes tie-breaks and wheel stops reproducible. 0 means
	// seed from the runtime.
	RandomSeed uint64
}

// ParseFlags reads flags, falling back to environment variables.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("personality-quiz", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Quiz content
	fs.StringVar(&cfg.QuizFile, "q", "", "Quiz definition file")
	fs.StringVar(&cfg.AssetBaseURL, "assets", "", "Base URL for relative image paths")

	// Sessions
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Session token salt (prefer env)")
	fs.IntVar(&cfg.SessionCacheSize, "cache", 0, "Number of live sessions kept in memory")
	fs.Uint64Var(&cfg.RandomSeed, "seed", 0, "Random seed (0 = random)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		port, err := envInt("PORT", DefaultPort)
		if err != nil {
			return Config{}, err
		}
		cfg.Port = port
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = envString("DATABASE_TYPE", DefaultDatabaseType)
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	if cfg.QuizFile == "" {
		cfg.QuizFile = envString("QUIZ_FILE", DefaultQuizFile)
	}
	if cfg.AssetBaseURL == "" {
		cfg.AssetBaseURL = os.Getenv("ASSET_BASE_URL")
	}

	if cfg.SessionCacheSize == 0 {
		size, err := envInt("SESSION_CACHE_SIZE", DefaultSessionCacheSize)
		if err != nil {
			return Config{}, err
		}
		cfg.SessionCacheSize = size
	}
	if cfg.SessionCacheSize < 1 {
		return Config{}, errors.New("session cache size must be positive")
	}

	if cfg.RandomSeed == 0 {
		if s := os.Getenv("RANDOM_SEED"); s != "" {
			seed, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid RANDOM_SEED env variable")
			}
			cfg.RandomSeed = seed
		}
	}

	// Secrets - MUST be provided
	if cfg.SessionSalt == "" {
		cfg.SessionSalt = os.Getenv("SESSION_SALT")
	}
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}

	return cfg, nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s env variable", key)
	}
	return n, nil
}
