package config

import (
	"os"
	"strconv"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("DAILY_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("DAILY_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("DAILY_SEED_URL"); v != "" {
		cfg.SeedURL = v
	}
	if v := os.Getenv("DAILY_SEED_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SeedCount = n
		}
	}
	if v := os.Getenv("DAILY_SEED_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SeedTimeoutSeconds = n
		}
	}
	if v := os.Getenv("DAILY_REDIRECT_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedirectDelayMS = n
		}
	}
	if v := os.Getenv("DAILY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DAILY_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("DAILY_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
}
