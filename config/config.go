// Package config loads the engine configuration from JSON or YAML files with
// optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/fieldcrew/dispatch/core/metrics"
	"github.com/fieldcrew/dispatch/core/model"
)

type Config struct {
	Scheduling  model.SchedulingPreferences `json:"scheduling"`
	Suggestions SuggestionsConfig           `json:"suggestions"`
	Metrics     metrics.Config              `json:"metrics"`
}

// Load reads the configuration file at path. Environment variables prefixed
// with FC_ override file values, with __ separating nested keys
// (FC_SCHEDULING__BUFFER_MINUTES=15).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("FC_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fc_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Scheduling.SetDefaults()
	cfg.Suggestions.SetDefaults()
	if err := cfg.Scheduling.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Suggestions.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration usable without a file.
func Default() *Config {
	cfg := &Config{}
	cfg.Scheduling.SetDefaults()
	cfg.Suggestions.SetDefaults()
	return cfg
}
