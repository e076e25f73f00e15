// Package config handles configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/daily/internal/statedir"
)

// Default values.
const (
	DefaultStateDir        = "~/" + statedir.Dir
	DefaultStorage         = "file"
	DefaultSeedURL         = "https://jsonplaceholder.typicode.com"
	DefaultSeedCount       = 5
	DefaultSeedTimeout     = 10
	DefaultRedirectDelayMS = 1000
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
)

// Config holds the full configuration for daily.
type Config struct {
	// State directory for the task mirror and logs
	StateDir string `toml:"state_dir"`

	// Storage backend: file, sqlite or memory
	Storage string `toml:"storage"`

	// Seed source used when no task list is stored yet
	SeedURL            string `toml:"seed_url"`
	SeedCount          int    `toml:"seed_count"`
	SeedTimeoutSeconds int    `toml:"seed_timeout_seconds"`

	// Delay before the edit screen returns to the list after a save
	RedirectDelayMS int `toml:"redirect_delay_ms"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Config file that was applied last (computed)
	ConfigFile string `toml:"-"`
}

// SeedTimeout returns the seed request timeout.
func (c *Config) SeedTimeout() time.Duration {
	return time.Duration(c.SeedTimeoutSeconds) * time.Second
}

// RedirectDelay returns the post-save delay of the edit screen.
func (c *Config) RedirectDelay() time.Duration {
	return time.Duration(c.RedirectDelayMS) * time.Millisecond
}

// LogDir returns the directory that holds log files.
func (c *Config) LogDir() string {
	return statedir.LogDir(c.StateDir)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StateDir = DefaultStateDir
	cfg.Storage = DefaultStorage
	cfg.SeedURL = DefaultSeedURL
	cfg.SeedCount = DefaultSeedCount
	cfg.SeedTimeoutSeconds = DefaultSeedTimeout
	cfg.RedirectDelayMS = DefaultRedirectDelayMS
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = true
}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{statedir.ConfigFile, statedir.HiddenConfigFile}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.daily/daily.toml first, then falls back to OS-specific
// config directories.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := statedir.UserConfigPath(home)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, "daily", statedir.ConfigFile)
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// loadConfigFile loads TOML config from the given file. Unknown keys are
// rejected so typos surface instead of being ignored.
func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.ConfigFile = path
	return nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// validate checks values that cannot be repaired silently.
func validate(cfg *Config) error {
	switch strings.ToLower(cfg.Storage) {
	case "file", "sqlite", "memory":
		cfg.Storage = strings.ToLower(cfg.Storage)
	default:
		return fmt.Errorf("invalid storage %q (want file, sqlite or memory)", cfg.Storage)
	}
	if cfg.SeedCount < 0 {
		return fmt.Errorf("seed_count must not be negative, got %d", cfg.SeedCount)
	}
	if cfg.SeedTimeoutSeconds <= 0 {
		cfg.SeedTimeoutSeconds = DefaultSeedTimeout
	}
	if cfg.RedirectDelayMS < 0 {
		return fmt.Errorf("redirect_delay_ms must not be negative, got %d", cfg.RedirectDelayMS)
	}
	return nil
}
