// Package config holds the parameters used to run properties and draw samples,
// with fluent setters and YAML persistence.
package config

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/leanovate/gopter"
	"gopkg.in/yaml.v3"
)

// Config represents the parameters of a property run or a sampling session.
// The zero Seed means a fresh random seed per run.
type Config struct {
	// MinSuccessfulTests is the number of passing cases required for a property.
	MinSuccessfulTests int `yaml:"min_successful_tests"`

	// MinSize is the inclusive lower bound on generated sizes.
	MinSize int `yaml:"min_size"`

	// MaxSize is the exclusive upper bound on generated sizes.
	MaxSize int `yaml:"max_size"`

	// MaxShrinkCount limits shrinking of a failing case.
	MaxShrinkCount int `yaml:"max_shrink_count"`

	// Workers is the number of goroutines checking a property.
	Workers int `yaml:"workers"`

	// MaxDiscardRatio is the tolerated ratio of discarded to successful cases.
	MaxDiscardRatio float64 `yaml:"max_discard_ratio"`

	// Seed makes runs reproducible when non-zero.
	Seed int64 `yaml:"seed,omitempty"`
}

// Default returns gopter's default parameters as a Config.
func Default() Config {
	return Config{
		MinSuccessfulTests: 100,
		MinSize:            0,
		MaxSize:            100,
		MaxShrinkCount:     1000,
		Workers:            1,
		MaxDiscardRatio:    5,
	}
}

// WithMinSuccessfulTests returns a copy with MinSuccessfulTests set.
func (c Config) WithMinSuccessfulTests(n int) Config {
	c.MinSuccessfulTests = n
	return c
}

// WithMinSize returns a copy with MinSize set.
func (c Config) WithMinSize(n int) Config {
	c.MinSize = n
	return c
}

// WithMaxSize returns a copy with MaxSize set.
func (c Config) WithMaxSize(n int) Config {
	c.MaxSize = n
	return c
}

// WithMaxShrinkCount returns a copy with MaxShrinkCount set.
func (c Config) WithMaxShrinkCount(n int) Config {
	c.MaxShrinkCount = n
	return c
}

// WithWorkers returns a copy with Workers set.
func (c Config) WithWorkers(n int) Config {
	c.Workers = n
	return c
}

// WithMaxDiscardRatio returns a copy with MaxDiscardRatio set.
func (c Config) WithMaxDiscardRatio(r float64) Config {
	c.MaxDiscardRatio = r
	return c
}

// WithSeed returns a copy with Seed set.
func (c Config) WithSeed(seed int64) Config {
	c.Seed = seed
	return c
}

// Validate checks that every field is usable by gopter.
func (c Config) Validate() error {
	switch {
	case c.MinSuccessfulTests <= 0:
		return &ValidationError{Field: "min_successful_tests", Value: c.MinSuccessfulTests, Reason: "must be positive"}
	case c.MinSize < 0:
		return &ValidationError{Field: "min_size", Value: c.MinSize, Reason: "must not be negative"}
	case c.MaxSize < c.MinSize:
		return &ValidationError{Field: "max_size", Value: c.MaxSize, Reason: "must not be less than min_size"}
	case c.MaxShrinkCount < 0:
		return &ValidationError{Field: "max_shrink_count", Value: c.MaxShrinkCount, Reason: "must not be negative"}
	case c.Workers <= 0:
		return &ValidationError{Field: "workers", Value: c.Workers, Reason: "must be positive"}
	case c.MaxDiscardRatio < 0:
		return &ValidationError{Field: "max_discard_ratio", Value: c.MaxDiscardRatio, Reason: "must not be negative"}
	}
	return nil
}

// TestParameters converts the config into gopter test parameters.
func (c Config) TestParameters() *gopter.TestParameters {
	params := gopter.DefaultTestParameters()
	if c.Seed != 0 {
		params = gopter.DefaultTestParametersWithSeed(c.Seed)
	}

	params.MinSuccessfulTests = c.MinSuccessfulTests
	params.MinSize = c.MinSize
	params.MaxSize = c.MaxSize
	params.MaxShrinkCount = c.MaxShrinkCount
	params.Workers = c.Workers
	params.MaxDiscardRatio = c.MaxDiscardRatio
	return params
}

// GenParameters converts the config into parameters for drawing values from a
// generator directly.
func (c Config) GenParameters() *gopter.GenParameters {
	params := gopter.DefaultGenParameters()
	params.MinSize = c.MinSize
	params.MaxSize = c.MaxSize
	params.MaxShrinkCount = c.MaxShrinkCount
	if c.Seed != 0 {
		params.Rng = rand.New(gopter.NewLockedSource(c.Seed))
	}
	return params
}

// Load reads a config file. Fields missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, &NotFoundError{Path: path}
		}
		return cfg, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault reads path if it exists and falls back to Default otherwise.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if _, ok := err.(*NotFoundError); ok {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the config to path, creating parent directories.
func (c Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// Write atomically by writing to temp file first
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// ValidationError indicates a config field holds an unusable value.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config: %s %s, got %v", e.Field, e.Reason, e.Value)
}

// NotFoundError indicates the config file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file '%s' not found", e.Path)
}
