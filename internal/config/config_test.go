package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := `
[api]
base_url = "http://localhost:9000"

[player]
command = "ffplay"
args = ["-nodisp", "-autoexit"]

[storage]
backend = "sqlite"
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:9000" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Player.Command != "ffplay" {
		t.Errorf("Player.Command = %q", cfg.Player.Command)
	}
	if len(cfg.Player.Args) != 2 || cfg.Player.Args[0] != "-nodisp" {
		t.Errorf("Player.Args = %v, want explicit args kept", cfg.Player.Args)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Storage.Backend = %q", cfg.Storage.Backend)
	}
	// Defaults fill the rest
	if cfg.TUI.SearchDebounce != 500 {
		t.Errorf("TUI.SearchDebounce = %d, want 500", cfg.TUI.SearchDebounce)
	}
	if cfg.Player.ErrorHold != 3000 {
		t.Errorf("Player.ErrorHold = %d, want 3000", cfg.Player.ErrorHold)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HEIMDALL_API_URL", "https://heimdall.example")
	t.Setenv("HEIMDALL_LOG_LEVEL", "debug")

	cfg := &Config{}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	if cfg.API.BaseURL != "https://heimdall.example" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }, "api: invalid base_url"},
		{"negative timeout", func(c *Config) { c.API.Timeout = -1 }, "timeout must be non-negative"},
		{"bad backend", func(c *Config) { c.Storage.Backend = "redis" }, "invalid backend: redis"},
		{"bad theme", func(c *Config) { c.TUI.Theme = "neon" }, "invalid theme: neon"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "invalid log level: trace"},
		{"negative hold", func(c *Config) { c.Player.ErrorHold = -5 }, "error_hold must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDataDirOverride(t *testing.T) {
	t.Setenv("HEIMDALL_DATA_DIR", "/tmp/heimdall-test")
	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir() error = %v", err)
	}
	if dir != "/tmp/heimdall-test" {
		t.Errorf("DataDir() = %q", dir)
	}
}

func TestSet(t *testing.T) {
	cfg := Default()

	for key, value := range map[string]string{
		"api.base_url":      "https://heimdall.example",
		"api.rate_limit":    "2.5",
		"player.args":       "--no-video  --volume=50",
		"player.error_hold": "1500",
		"tui.theme":         "light",
	} {
		if err := cfg.Set(key, value); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	if cfg.API.BaseURL != "https://heimdall.example" {
		t.Errorf("API.BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RateLimit != 2.5 {
		t.Errorf("API.RateLimit = %v", cfg.API.RateLimit)
	}
	if len(cfg.Player.Args) != 2 || cfg.Player.Args[1] != "--volume=50" {
		t.Errorf("Player.Args = %v", cfg.Player.Args)
	}
	if cfg.Player.ErrorHold != 1500 {
		t.Errorf("Player.ErrorHold = %d", cfg.Player.ErrorHold)
	}
	if cfg.TUI.Theme != "light" {
		t.Errorf("TUI.Theme = %q", cfg.TUI.Theme)
	}
}

func TestSetErrors(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("spotify.client_id", "x"); err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Errorf("unknown key error = %v", err)
	}
	if err := cfg.Set("api.timeout", "soon"); err == nil || !strings.Contains(err.Error(), "api.timeout: value must be an integer") {
		t.Errorf("bad int error = %v", err)
	}
	if cfg.API.Timeout != Default().API.Timeout {
		t.Errorf("failed Set changed Timeout to %d", cfg.API.Timeout)
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
	if keys[0] != "api.base_url" {
		t.Errorf("first key = %q", keys[0])
	}
}
