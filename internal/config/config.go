// Package config loads the small set of tunables the yarrow CLI exposes
// beyond the script path itself: currently just the GC's initial
// collection threshold. Values come from an optional YAML file, overridable
// by environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config holds the runtime knobs read at startup.
type Config struct {
	// GCInitialThreshold is the byte count allocated before the first
	// collection runs. Zero means let lang/gc pick its own default.
	GCInitialThreshold int64 `yaml:"gc_initial_threshold" env:"YARROW_GC_INITIAL_THRESHOLD"`
}

// Load reads path as YAML if it is non-empty and exists, then applies
// environment variable overrides on top. A missing path is not an error:
// callers run with environment-only (or default) configuration.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment config: %w", err)
	}
	return &cfg, nil
}
