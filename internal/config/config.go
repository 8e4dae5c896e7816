// Package config loads diagassist settings from a YAML file and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrsinham/diagassist/internal/analysis"
	"github.com/mrsinham/diagassist/internal/lexicon"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DIAGASSIST_"

// Config is the effective configuration.
type Config struct {
	SymptomDelay    Duration         `yaml:"symptom_delay"`
	ImageDelay      Duration         `yaml:"image_delay"`
	Timeout         Duration         `yaml:"timeout"`
	DefaultCategory lexicon.Category `yaml:"default_category"`
	TablesFile      string           `yaml:"tables_file,omitempty"`
	LogLevel        string           `yaml:"log_level"`
	LogFile         string           `yaml:"log_file,omitempty"`
}

// Duration is a time.Duration written as "1.5s" in YAML.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	if parsed < 0 {
		return fmt.Errorf("invalid duration %q: must not be negative", text)
	}
	*d = Duration(parsed)
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SymptomDelay:    Duration(analysis.DefaultSymptomDelay),
		ImageDelay:      Duration(analysis.DefaultImageDelay),
		DefaultCategory: lexicon.Chest,
		LogLevel:        "info",
	}
}

// Load returns the defaults overlaid with path (when not empty) and then
// with DIAGASSIST_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks values that YAML decoding cannot and normalizes the
// category and log level.
func (c *Config) Validate() error {
	category, err := lexicon.ParseCategory(string(c.DefaultCategory))
	if err != nil {
		return fmt.Errorf("default_category: %w", err)
	}
	c.DefaultCategory = category

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: invalid level %q (valid: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// Delays returns the simulated stage latencies.
func (c *Config) Delays() analysis.Delays {
	return analysis.Delays{
		Symptoms: time.Duration(c.SymptomDelay),
		Image:    time.Duration(c.ImageDelay),
	}
}

// Tables loads TablesFile, or returns the built-in tables when it is empty.
func (c *Config) Tables() (*lexicon.Tables, error) {
	if c.TablesFile == "" {
		return lexicon.DefaultTables(), nil
	}
	return lexicon.LoadTablesFromYAML(c.TablesFile)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	durations := map[string]*Duration{
		"SYMPTOM_DELAY": &c.SymptomDelay,
		"IMAGE_DELAY":   &c.ImageDelay,
		"TIMEOUT":       &c.Timeout,
	}
	for name, dst := range durations {
		if v, ok := lookup(EnvPrefix + name); ok {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
			}
		}
	}

	if v, ok := lookup(EnvPrefix + "DEFAULT_CATEGORY"); ok {
		category, err := lexicon.ParseCategory(v)
		if err != nil {
			return fmt.Errorf("%sDEFAULT_CATEGORY: %w", EnvPrefix, err)
		}
		c.DefaultCategory = category
	}
	if v, ok := lookup(EnvPrefix + "TABLES_FILE"); ok {
		c.TablesFile = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		c.LogFile = v
	}
	return nil
}
