// Package config loads server settings from an optional YAML file with
// environment overrides on top.
package config

import (
	"fmt"
	"time"
)

// Store backends.
const (
	StoreFixture  = "fixture"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Store    StoreConfig    `yaml:"store"`
	Logging  LoggingConfig  `yaml:"logging"`
	Consoles ConsolesConfig `yaml:"consoles"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// StoreConfig selects the agent record store. Only the fields for the chosen
// backend are read.
type StoreConfig struct {
	Backend          string `yaml:"backend"`
	DatabaseURL      string `yaml:"databaseUrl"`
	MaxConns         int32  `yaml:"maxConns"`
	SQLitePath       string `yaml:"sqlitePath"`
	FixtureLatencyMs int    `yaml:"fixtureLatencyMs"`
}

func (s StoreConfig) FixtureLatency() time.Duration {
	return time.Duration(s.FixtureLatencyMs) * time.Millisecond
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ConsolesConfig struct {
	// RefreshDelayMs debounces console reloads after an agent changes.
	RefreshDelayMs int `yaml:"refreshDelayMs"`
	// IdleTimeoutMs closes consoles nobody has used or watched for this long.
	// Zero keeps consoles until they are closed explicitly.
	IdleTimeoutMs int `yaml:"idleTimeoutMs"`
}

func (c ConsolesConfig) RefreshDelay() time.Duration {
	return time.Duration(c.RefreshDelayMs) * time.Millisecond
}

func (c ConsolesConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMs) * time.Millisecond
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Store: StoreConfig{
			Backend:          StoreFixture,
			MaxConns:         10,
			SQLitePath:       "data/agents.db",
			FixtureLatencyMs: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Consoles: ConsolesConfig{
			RefreshDelayMs: 250,
			IdleTimeoutMs:  30 * 60 * 1000,
		},
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
