package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/nexten/smartmatch/internal/config"
	"github.com/nexten/smartmatch/internal/engine"
	"github.com/nexten/smartmatch/internal/geo"
	"github.com/nexten/smartmatch/internal/logger"
	"github.com/nexten/smartmatch/internal/schemas"
	"github.com/nexten/smartmatch/internal/scoring"
	"github.com/nexten/smartmatch/internal/weights"
)

// resolveConfig layers the effective configuration: flags override the
// config file, the config file overrides the environment, and built-in
// defaults fill the rest.
func resolveConfig(configPath string) (config.Config, error) {
	cfg := config.FromEnv()

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildLogger builds the CLI logger from the resolved configuration.
func buildLogger(cfg config.Config) (*zap.Logger, error) {
	return logger.New(cfg.LogJSON, cfg.Verbose)
}

// buildEngine assembles the engine the way the server does: catalog plus
// optional profile file, distance client when a service URL is configured.
func buildEngine(cfg config.Config, log *zap.Logger) (*engine.Engine, *weights.Catalog, error) {
	catalog := weights.NewCatalog()
	if cfg.ProfilesFile != "" {
		if err := catalog.LoadProfilesFile(cfg.ProfilesFile); err != nil {
			return nil, nil, fmt.Errorf("failed to load weight profiles: %w", err)
		}
	}

	var distancer geo.Distancer
	if cfg.DistanceServiceURL != "" {
		client := geo.NewClient(geo.ClientConfig{
			BaseURL: cfg.DistanceServiceURL,
			Timeout: time.Duration(cfg.DistanceTimeoutMs) * time.Millisecond,
		})
		distancer = geo.NewCachedDistancer(client, geo.CacheConfig{})
	}

	eng := engine.New(engine.Options{
		Registry: scoring.DefaultRegistry(distancer),
		Catalog:  catalog,
		Logger:   log,
	})
	return eng, catalog, nil
}

// matchParams builds scoring params for the requested profile, falling back
// to the configured default.
func matchParams(profile string, cfg config.Config) *scoring.Params {
	params := scoring.DefaultParams()
	params.Profile = profile
	if params.Profile == "" {
		params.Profile = cfg.DefaultProfile
	}
	return params
}

// readCandidateFile reads and schema-validates one candidate JSON file.
func readCandidateFile(path string) (map[string]any, error) {
	return readPayloadFile(path, schemas.ValidateCandidate)
}

// readJobFile reads and schema-validates one job JSON file.
func readJobFile(path string) (map[string]any, error) {
	return readPayloadFile(path, schemas.ValidateJob)
}

func readPayloadFile(path string, validate func([]byte) error) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return payload, nil
}

// readPayloadDir reads every .json file of a directory in name order.
func readPayloadDir(dir string, validate func([]byte) error) ([]map[string]any, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, nil, fmt.Errorf("no .json files in %s", dir)
	}

	payloads := make([]map[string]any, 0, len(names))
	for _, name := range names {
		payload, err := readPayloadFile(filepath.Join(dir, name), validate)
		if err != nil {
			return nil, nil, err
		}
		payloads = append(payloads, payload)
	}
	return payloads, names, nil
}

// printJSON writes indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
