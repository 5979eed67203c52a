package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "STORE", "DATABASE_URL", "SQLITE_PATH", "FIXTURE_LATENCY_MS",
		"CONSOLE_REFRESH_MS", "CONSOLE_IDLE_TIMEOUT_MS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, StoreFixture, cfg.Store.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.Store.FixtureLatency())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Consoles.RefreshDelay())
	assert.Equal(t, 30*time.Minute, cfg.Consoles.IdleTimeout())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadEmptyPath(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadValidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	yaml := `
server:
  port: 9090
store:
  backend: sqlite
  sqlitePath: /var/lib/console/agents.db
  fixtureLatencyMs: 0
logging:
  level: debug
  format: text
consoles:
  idleTimeoutMs: 60000
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, StoreSQLite, cfg.Store.Backend)
	assert.Equal(t, "/var/lib/console/agents.db", cfg.Store.SQLitePath)
	assert.Zero(t, cfg.Store.FixtureLatency())
	assert.Equal(t, int32(10), cfg.Store.MaxConns)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 250, cfg.Consoles.RefreshDelayMs)
	assert.Equal(t, time.Minute, cfg.Consoles.IdleTimeout())
}

func TestLoadBlankedStringsFallBack(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: \"\"\nlogging:\n  level: \"\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StoreFixture, cfg.Store.Backend)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Message, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("STORE", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/console")
	t.Setenv("SQLITE_PATH", "/tmp/a.db")
	t.Setenv("FIXTURE_LATENCY_MS", "25")
	t.Setenv("CONSOLE_REFRESH_MS", "0")
	t.Setenv("CONSOLE_IDLE_TIMEOUT_MS", "0")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, StorePostgres, cfg.Store.Backend)
	assert.Equal(t, "postgres://localhost/console", cfg.Store.DatabaseURL)
	assert.Equal(t, "/tmp/a.db", cfg.Store.SQLitePath)
	assert.Equal(t, 25*time.Millisecond, cfg.Store.FixtureLatency())
	assert.Zero(t, cfg.Consoles.RefreshDelayMs)
	assert.Zero(t, cfg.Consoles.IdleTimeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestEnvOverrides_InvalidNumbersIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")
	t.Setenv("FIXTURE_LATENCY_MS", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 500, cfg.Store.FixtureLatencyMs)
}
