package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripjournal/internal/config"
)

var allVars = []string{
	"PORT", "LOG_LEVEL", "CORS_ORIGINS", "DATA_BACKEND",
	"DATABASE_URL", "SEED_FIXTURES", "MAX_BODY_BYTES",
}

// clearEnv blanks every variable Load reads. t.Setenv restores them after
// the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allVars {
		t.Setenv(k, "")
	}
}

func noFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.LoadFile(noFile(t))

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, config.BackendMemory, cfg.Backend)
	require.Empty(t, cfg.DatabaseURL)
	require.True(t, cfg.SeedFixtures)
	require.EqualValues(t, 1<<20, cfg.MaxBodyBytes)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/journal")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SEED_FIXTURES", "false")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := config.LoadFile(noFile(t))

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, config.BackendPostgres, cfg.Backend)
	require.Equal(t, "postgres://user:pass@db:5432/journal", cfg.DatabaseURL)
	require.False(t, cfg.SeedFixtures)
	require.EqualValues(t, 2048, cfg.MaxBodyBytes)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoad_postgresRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_BACKEND", "postgres")

	_, err := config.LoadFile(noFile(t))

	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_listsEveryProblem(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("MAX_BODY_BYTES", "-1")
	t.Setenv("SEED_FIXTURES", "maybe")

	_, err := config.LoadFile(noFile(t))

	require.ErrorContains(t, err, "DATA_BACKEND")
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
	require.ErrorContains(t, err, "SEED_FIXTURES")
}

func TestLoad_dotenvFile(t *testing.T) {
	clearEnv(t)
	// godotenv only fills variables that are unset, and t.Setenv("") leaves
	// them set, so unset the ones the file provides.
	require.NoError(t, os.Unsetenv("PORT"))
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nLOG_LEVEL=error\n"), 0o600))

	cfg, err := config.LoadFile(path)

	require.NoError(t, err)
	require.Equal(t, "7070", cfg.Port)
	require.Equal(t, "warn", cfg.LogLevel, "environment wins over the file")
}
