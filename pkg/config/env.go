package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables that override config file values.
const (
	EnvSeed               = "GENX_SEED"
	EnvMinSuccessfulTests = "GENX_MIN_SUCCESSFUL_TESTS"
	EnvMaxSize            = "GENX_MAX_SIZE"
	EnvWorkers            = "GENX_WORKERS"
)

// ApplyEnv returns a copy of c with environment overrides applied. Setting
// GENX_SEED replays a previous run.
func (c Config) ApplyEnv() (Config, error) {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		c.Seed = seed
	}

	ints := []struct {
		key string
		dst *int
	}{
		{EnvMinSuccessfulTests, &c.MinSuccessfulTests},
		{EnvMaxSize, &c.MaxSize},
		{EnvWorkers, &c.Workers},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("invalid %s: %w", e.key, err)
		}
		*e.dst = n
	}

	return c, c.Validate()
}
