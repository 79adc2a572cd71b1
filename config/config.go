// Package config reads and writes the dtsgen.yaml project file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "dtsgen.yaml"

const defaultInterval = 500 * time.Millisecond

var (
	ErrNoInputs      = errors.New("no input files configured")
	ErrMissingConfig = errors.New("config missing")
)

// Config describes one declaration file build.
type Config struct {
	// Inputs are concatenated in order before extraction. Relative paths are
	// resolved against the directory holding the config file.
	Inputs []string `yaml:"inputs"`
	// Output is the declaration file to write; empty means stdout.
	Output string `yaml:"output,omitempty"`
	Module bool   `yaml:"module,omitempty"`
	// Prelude defaults to true when unset.
	Prelude *bool `yaml:"prelude,omitempty"`
	// Interval is the polling interval of watch mode, e.g. "500ms".
	Interval string `yaml:"interval,omitempty"`

	dir string
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{}
}

// Load reads the config at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return &cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return ErrMissingConfig
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports configuration that cannot produce a build.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInputs
	}
	if c.Interval != "" {
		if _, err := time.ParseDuration(c.Interval); err != nil {
			return fmt.Errorf("invalid interval %q: %w", c.Interval, err)
		}
	}
	return nil
}

// PreludeEnabled reports whether the prelude is written.
func (c *Config) PreludeEnabled() bool {
	return c.Prelude == nil || *c.Prelude
}

// PollInterval returns the watch mode polling interval.
func (c *Config) PollInterval() time.Duration {
	if d, err := time.ParseDuration(c.Interval); err == nil && d > 0 {
		return d
	}
	return defaultInterval
}

// InputPaths returns the inputs resolved against the config file directory.
func (c *Config) InputPaths() []string {
	return c.resolve(c.Inputs)
}

// OutputPath returns the resolved output path, or "" for stdout.
func (c *Config) OutputPath() string {
	if c.Output == "" {
		return ""
	}
	return c.resolve([]string{c.Output})[0]
}

func (c *Config) resolve(paths []string) []string {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		if filepath.IsAbs(p) || c.dir == "" {
			resolved = append(resolved, p)
			continue
		}
		resolved = append(resolved, filepath.Join(c.dir, p))
	}
	return resolved
}
