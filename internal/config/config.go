// Package config resolves host-level defaults from the environment.
// The simulation core never reads these directly; they feed the facade's
// defaults and the CLI/server collaborators.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-derived settings.
type Config struct {
	// MaxSims is the default trial count for the Bag convenience API.
	MaxSims uint64 `env:"MENDEL_MAX_SIMS" envDefault:"100000"`
	// RedisURL, when set, enables the redis-backed result store in serve mode.
	RedisURL string `env:"MENDEL_REDIS_URL"`
	// ListenAddr is the default bind address for serve mode.
	ListenAddr string `env:"MENDEL_LISTEN_ADDR" envDefault:":8080"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.MaxSims == 0 {
		cfg.MaxSims = 100_000
	}
	return cfg, nil
}
