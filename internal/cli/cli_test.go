package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/agent-console/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "STORE", "DATABASE_URL", "SQLITE_PATH", "FIXTURE_LATENCY_MS", "CONSOLE_REFRESH_MS", "CONSOLE_IDLE_TIMEOUT_MS", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile = ""
	defer slog.SetDefault(slog.Default())

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ── config show ──────────────────────────────────────────────────────────

func TestConfigShow_Defaults(t *testing.T) {
	clearEnv(t)

	out, err := run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: fixture")
	assert.Contains(t, out, "port: 8080")
}

func TestConfigShow_FileAndEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_FORMAT", "text")
	path := writeConfig(t, "server:\n  port: 9000\nstore:\n  backend: sqlite\n")

	out, err := run(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "port: 9000")
	assert.Contains(t, out, "backend: sqlite")
	assert.Contains(t, out, "format: text")
}

func TestRoot_RejectsInvalidConfig(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "store:\n  backend: postgres\n")

	_, err := run(t, "--config", path, "config", "show")
	var cfgErr *config.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Message, "store.databaseUrl")
}

// ── migrate ──────────────────────────────────────────────────────────────

func TestMigrate_FixtureBackendRefused(t *testing.T) {
	clearEnv(t)

	_, err := run(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to migrate")
}

func TestMigrate_SeedSQLite(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "agents.db"))

	out, err := run(t, "migrate", "--seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 5 agent(s)")

	out, err = run(t, "migrate", "--seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 0 agent(s)")
}

// ── logging ──────────────────────────────────────────────────────────────

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, config.LoggingConfig{Level: "info", Format: "json"}).Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	newLogger(&buf, config.LoggingConfig{Level: "info", Format: "text"}).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")

	buf.Reset()
	newLogger(&buf, config.LoggingConfig{Level: "error", Format: "text"}).Info("hidden")
	assert.Empty(t, buf.String())
}
