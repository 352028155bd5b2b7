// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Backend names a storage implementation.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"].
	CORSOrigins []string

	// Backend selects the store. Defaults to memory.
	Backend Backend

	// DatabaseURL is the Postgres connection string. Required when Backend
	// is postgres.
	DatabaseURL string

	// SeedFixtures loads the sample trips into an empty store on start.
	SeedFixtures bool

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads an optional .env file from the working directory, then builds
// a Config from the environment. Variables already set in the environment
// win over the file. Returns an error listing every invalid or missing
// variable.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is ignored.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Backend:     Backend(strings.ToLower(getEnv("DATA_BACKEND", string(BackendMemory)))),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	var problems []string

	switch cfg.Backend {
	case BackendMemory:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL (required when DATA_BACKEND=postgres)")
		}
	default:
		problems = append(problems, fmt.Sprintf("DATA_BACKEND=%q (want memory or postgres)", cfg.Backend))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL=%q", cfg.LogLevel))
	}

	seed, err := strconv.ParseBool(getEnv("SEED_FIXTURES", "true"))
	if err != nil {
		problems = append(problems, "SEED_FIXTURES")
	}
	cfg.SeedFixtures = seed

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		problems = append(problems, "MAX_BODY_BYTES")
	}
	cfg.MaxBodyBytes = maxBody

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid or missing environment variables: %s", strings.Join(problems, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
