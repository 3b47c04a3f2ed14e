package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.heimdallrc, $XDG_CONFIG_HOME/heimdall/config.toml, ~/.config/heimdall/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Path returns the config file in use, or the default location for a new one.
func Path() string {
	if p := findConfigFile(); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".heimdallrc"
	}
	return filepath.Join(home, ".heimdallrc")
}

// DataDir returns the directory for local state. HEIMDALL_DATA_DIR overrides
// the per-user config directory.
func DataDir() (string, error) {
	if dir := os.Getenv("HEIMDALL_DATA_DIR"); dir != "" {
		return dir, nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "heimdall"), nil
}

// TimeoutDuration returns the API timeout as a duration.
func (c *APIConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// ErrorHoldDuration returns how long a playback error stays visible.
func (c *PlayerConfig) ErrorHoldDuration() time.Duration {
	return time.Duration(c.ErrorHold) * time.Millisecond
}

// SearchDebounceDuration returns the search debounce delay.
func (c *TUIConfig) SearchDebounceDuration() time.Duration {
	return time.Duration(c.SearchDebounce) * time.Millisecond
}

// ToastDurationValue returns how long notifications stay visible.
func (c *TUIConfig) ToastDurationValue() time.Duration {
	return time.Duration(c.ToastDuration) * time.Millisecond
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".heimdallrc"),
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "heimdall", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies .env and environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	// API
	if v := os.Getenv("HEIMDALL_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("HEIMDALL_API_TIMEOUT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.API.Timeout = i
		}
	}

	// Player
	if v := os.Getenv("HEIMDALL_PLAYER_COMMAND"); v != "" {
		cfg.Player.Command = v
	}

	// Storage
	if v := os.Getenv("HEIMDALL_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("HEIMDALL_STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}

	// Log
	if v := os.Getenv("HEIMDALL_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HEIMDALL_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
