package config

import (
	"encoding/json"
	"os"

	"github.com/momverse/momverse/internal/flagx"
	"github.com/momverse/momverse/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from an explicit zero value.
type JsonConfig struct {
	StoreDSN          *string         `json:"store_dsn"`
	RedisKeyPrefix    *string         `json:"redis_key_prefix"`
	AIModel           *string         `json:"ai_model"`
	AITimeout         *timex.Duration `json:"ai_timeout"`
	VerifyCredentials *bool           `json:"verify_credentials"`
	LogLevel          *string         `json:"log_level"`
	LogFormat         *string         `json:"log_format"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// No file flag means no changes. Read or decode errors panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StoreDSN != nil {
		cfg.StoreDSN = *jc.StoreDSN
	}
	if jc.RedisKeyPrefix != nil {
		cfg.RedisKeyPrefix = *jc.RedisKeyPrefix
	}
	if jc.AIModel != nil {
		cfg.AIModel = *jc.AIModel
	}
	if jc.AITimeout != nil {
		cfg.AITimeout = jc.AITimeout.Duration
	}
	if jc.VerifyCredentials != nil {
		cfg.VerifyCredentials = *jc.VerifyCredentials
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
}
