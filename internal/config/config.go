package config

import "time"

// Config holds runtime settings for the MomVerse CLI.
//
// Fields:
//   - StoreDSN: where user and activity data lives (see storage.Open).
//   - RedisKeyPrefix: key prefix used by the redis:// store backend.
//   - AIModel, AIAPIKey, AITimeout: generative-AI collaborator settings.
//   - VerifyCredentials: check the password on login instead of accepting
//     any password for a known email.
//   - LogLevel, LogFormat: slog handler settings.
type Config struct {
	StoreDSN          string        `env:"MOMVERSE_STORE_DSN"`
	RedisKeyPrefix    string        `env:"MOMVERSE_REDIS_PREFIX"`
	AIModel           string        `env:"MOMVERSE_AI_MODEL"`
	AIAPIKey          string        `env:"GEMINI_API_KEY"`
	AITimeout         time.Duration `env:"MOMVERSE_AI_TIMEOUT"`
	VerifyCredentials bool          `env:"MOMVERSE_VERIFY_CREDENTIALS"`
	LogLevel          string        `env:"MOMVERSE_LOG_LEVEL"`
	LogFormat         string        `env:"MOMVERSE_LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreDSN = "file:momverse.db"
	c.RedisKeyPrefix = "momverse:"
	c.AIModel = "gemini-2.5-flash"
	c.AITimeout = 60 * time.Second
	c.VerifyCredentials = false
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), command-line flags and environment variables. Later
// sources take precedence over earlier ones. args excludes the program name.
//
// Invalid input in any source panics; main is expected to let it crash.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	parseEnv(cfg)
	return cfg
}
