package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the runtime configuration for one habit invocation.
type Config struct {
	StoragePath string `env:"HABIT_STORAGE" envDefault:"habits.json"`
	Verbose     bool   `env:"HABIT_VERBOSE" envDefault:"false"`
}

func Default() Config {
	return Config{StoragePath: "habits.json"}
}

// FromEnv reads HABIT_* variables over the defaults. A blank HABIT_STORAGE
// keeps the default path.
func FromEnv() (Config, error) {
	cfg := Default()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(cfg.StoragePath) == "" {
		cfg.StoragePath = Default().StoragePath
	}
	return cfg, nil
}
