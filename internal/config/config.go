// Package config loads knownsites settings from an optional YAML file and
// the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/wengx006/perseus-plugins/pkg/core"
	"github.com/wengx006/perseus-plugins/pkg/reader/psp"
)

// Environment variables read by applyEnvOverrides.
const (
	EnvPSPDir  = "KNOWNSITES_PSP_DIR"
	EnvWorkers = "KNOWNSITES_WORKERS"
)

// Config holds all knownsites configuration.
type Config struct {
	// Folder holding the PhosphoSitePlus <Modification>_site_dataset files
	PSPDir string `yaml:"psp_dir"`

	// Modification selected when none is given on the command line
	Modification string `yaml:"modification"`

	// Metadata lines before the dataset header
	SkipLines int `yaml:"skip_lines"`

	// Annotation workers; 1 annotates serially
	Workers int `yaml:"workers"`

	// Extra or overriding modification -> dataset path entries
	Datasets map[string]string `yaml:"datasets"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		PSPDir:       defaultPSPDir(),
		Modification: core.DefaultModification,
		SkipLines:    psp.DefaultSkipLines,
		Workers:      1,
		Logging:      LoggingConfig{Level: "info"},
	}
}

func defaultPSPDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "PSP"
	}
	return filepath.Join(dir, "knownsites", "PSP")
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if dir := os.Getenv(EnvPSPDir); dir != "" {
		c.PSPDir = dir
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.PSPDir == "" && len(c.Datasets) == 0 {
		return fmt.Errorf("psp_dir or datasets must be set")
	}
	if c.SkipLines < 0 {
		return fmt.Errorf("skip_lines must be non-negative, got %d", c.SkipLines)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Modification == "" {
		return fmt.Errorf("modification must be set")
	}
	return nil
}

// DatasetMap returns the default PhosphoSitePlus datasets under PSPDir with
// the configured entries applied on top.
func (c *Config) DatasetMap() *core.DatasetMap {
	m := core.DefaultDatasetMap(c.PSPDir)
	for mod, path := range c.Datasets {
		m.Add(mod, path)
	}
	return m
}
