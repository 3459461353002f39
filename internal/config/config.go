// Package config loads runtime configuration from PENNYWISE_* environment
// variables.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PENNYWISE_"

// Backend names for transaction storage.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
)

// Config holds every tunable the binaries read at startup.
type Config struct {
	// Port is the HTTP listen port for the API server.
	Port int `koanf:"port"`

	// LogLevel sets the zerolog level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`

	// GeminiAPIKey authenticates against the Gemini API. Empty means the
	// service runs in degraded mode: rule-based categorization and static
	// insight fallbacks only.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// GeminiModel overrides the default model name.
	GeminiModel string `koanf:"gemini_model"`

	// Backend selects transaction storage: "memory" or "bolt".
	Backend string `koanf:"backend"`

	// BoltPath is the database file used when Backend is "bolt".
	BoltPath string `koanf:"bolt_path"`

	// RulesPath optionally points at a YAML file replacing the built-in
	// keyword rule table.
	RulesPath string `koanf:"rules_path"`

	// SeedDemoData pre-populates an empty store with the demo ledger.
	SeedDemoData bool `koanf:"seed_demo_data"`
}

// Load reads PENNYWISE_* environment variables into a Config, applying
// defaults for anything unset, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        8080,
		LogLevel:    "info",
		Backend:     BackendMemory,
		BoltPath:    "pennywise.db",
		GeminiModel: "",
	}

	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("config.Load: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

// Validate checks field values that would otherwise fail much later at an
// awkward time.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	switch c.Backend {
	case BackendMemory, BackendBolt:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendMemory, BackendBolt)
	}
	if c.Backend == BackendBolt && strings.TrimSpace(c.BoltPath) == "" {
		return fmt.Errorf("bolt backend requires bolt_path")
	}
	return nil
}
