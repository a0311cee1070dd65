package config

import (
	"github.com/caarlos0/env/v10"
)

type legacyEnv struct {
	APIKey string `env:"API_KEY"`
}

// parseEnv overlays cfg with environment variables. Unset variables leave
// the current value alone. Malformed values (e.g. a bad duration) panic.
func parseEnv(cfg *Config) {
	var legacy legacyEnv
	if err := env.Parse(&legacy); err != nil {
		panic(err)
	}
	if legacy.APIKey != "" {
		cfg.AIAPIKey = legacy.APIKey
	}

	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
