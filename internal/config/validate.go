package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validBackends := []string{StoreFixture, StorePostgres, StoreSQLite}
	if !slices.Contains(validBackends, cfg.Store.Backend) {
		issues = append(issues, ValidationIssue{
			Path:    "store.backend",
			Message: fmt.Sprintf("must be one of %v, got %q", validBackends, cfg.Store.Backend),
		})
	}
	if cfg.Store.Backend == StorePostgres && cfg.Store.DatabaseURL == "" {
		issues = append(issues, ValidationIssue{
			Path:    "store.databaseUrl",
			Message: "required when store.backend is postgres",
		})
	}
	if cfg.Store.MaxConns < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "store.maxConns",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Store.MaxConns),
		})
	}
	if cfg.Store.FixtureLatencyMs < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "store.fixtureLatencyMs",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Store.FixtureLatencyMs),
		})
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLevels, cfg.Logging.Level),
		})
	}
	validFormats := []string{"json", "text"}
	if !slices.Contains(validFormats, cfg.Logging.Format) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.format",
			Message: fmt.Sprintf("must be one of %v, got %q", validFormats, cfg.Logging.Format),
		})
	}

	if cfg.Consoles.RefreshDelayMs < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "consoles.refreshDelayMs",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Consoles.RefreshDelayMs),
		})
	}
	if cfg.Consoles.IdleTimeoutMs < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "consoles.idleTimeoutMs",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Consoles.IdleTimeoutMs),
		})
	}

	return issues
}

// Check runs Validate and folds any issues into a single ConfigError.
func Check(cfg *Config) error {
	issues := Validate(cfg)
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, issue := range issues {
		msgs[i] = issue.String()
	}
	return &ConfigError{Message: strings.Join(msgs, "; ")}
}
