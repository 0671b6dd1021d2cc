// Package config provides configuration loading and validation for the
// matching service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the service configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty disables persistence

	// External services
	DistanceServiceURL string `json:"distance_service_url,omitempty"` // Base URL of the travel-time service
	DistanceTimeoutMs  int    `json:"distance_timeout_ms,omitempty"`  // Per-call budget for the travel-time service

	// Weight profiles
	ProfilesFile   string `json:"profiles_file,omitempty"`   // YAML file with additional weight profiles
	DefaultProfile string `json:"default_profile,omitempty"` // Profile used when a request names none

	// Behavior
	Parallelism int  `json:"parallelism,omitempty"` // Concurrent pair limit for batch matching
	LogJSON     bool `json:"log_json,omitempty"`    // JSON log encoding instead of console
	Verbose     bool `json:"verbose,omitempty"`     // Debug-level logging
}

// Defaults returns the baseline configuration used when neither file, env,
// nor flags supply a value.
func Defaults() Config {
	return Config{
		Port:              8080,
		DistanceTimeoutMs: 300,
		DefaultProfile:    "smartmatch",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Variables
// that are unset or unparsable leave the zero value, so the result composes
// with MergeWithDefaults.
func FromEnv() Config {
	cfg := Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DistanceServiceURL: os.Getenv("DISTANCE_SERVICE_URL"),
		ProfilesFile:       os.Getenv("SMARTMATCH_PROFILES_FILE"),
		DefaultProfile:     os.Getenv("SMARTMATCH_DEFAULT_PROFILE"),
	}
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
		cfg.Port = port
	}
	if ms, err := strconv.Atoi(os.Getenv("DISTANCE_TIMEOUT_MS")); err == nil {
		cfg.DistanceTimeoutMs = ms
	}
	return cfg
}

// Validate checks that the configuration has valid values.
// Required fields are not checked here; those are handled by CLI flag
// validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.DistanceTimeoutMs < 0 {
		return fmt.Errorf("config error: 'distance_timeout_ms' must be non-negative")
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("config error: 'parallelism' must be non-negative")
	}

	if c.ProfilesFile != "" {
		if _, err := os.Stat(c.ProfilesFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profiles file not found: %s", c.ProfilesFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags, and the built-in Defaults as the last layer.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.DistanceServiceURL == "" {
		result.DistanceServiceURL = defaults.DistanceServiceURL
	}
	if result.ProfilesFile == "" {
		result.ProfilesFile = defaults.ProfilesFile
	}
	if result.DefaultProfile == "" {
		result.DefaultProfile = defaults.DefaultProfile
	}

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DistanceTimeoutMs == 0 {
		result.DistanceTimeoutMs = defaults.DistanceTimeoutMs
	}
	if result.Parallelism == 0 {
		result.Parallelism = defaults.Parallelism
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge.
	// CLI flags always win for bools.

	return result
}
