// Package config loads runtime configuration for the MomVerse CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags.
//  4. Environment variables.
//
// Supported flags
//
//	-d string   store DSN (file:momverse.db, memory:, postgres://..., redis://...)
//	-m string   generative model name
//	-t int      AI request timeout (seconds)
//	-v          verify passwords on login
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
//	{
//	  "store_dsn": "file:momverse.db",
//	  "redis_key_prefix": "momverse:",
//	  "ai_model": "gemini-2.5-flash",
//	  "ai_timeout": "60s",
//	  "verify_credentials": false,
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// # Environment
//
// MOMVERSE_STORE_DSN, MOMVERSE_REDIS_PREFIX, MOMVERSE_AI_MODEL,
// MOMVERSE_AI_TIMEOUT, MOMVERSE_VERIFY_CREDENTIALS, MOMVERSE_LOG_LEVEL,
// MOMVERSE_LOG_FORMAT. The API key is read from GEMINI_API_KEY, falling
// back to API_KEY. The key is never read from JSON or flags.
package config
