package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   "http://127.0.0.1:8000",
			Timeout:   15,
			RateLimit: 5,
		},
		Player: PlayerConfig{
			Command:   "mpv",
			Args:      []string{"--no-video", "--really-quiet"},
			ErrorHold: 3000,
		},
		Storage: StorageConfig{
			Backend: "file",
		},
		TUI: TUIConfig{
			Theme:          "auto",
			SearchDebounce: 500,
			ToastDuration:  2000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// API
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = d.API.Timeout
	}

	// Player
	if c.Player.Command == "" {
		c.Player.Command = d.Player.Command
		if len(c.Player.Args) == 0 {
			c.Player.Args = d.Player.Args
		}
	}
	if c.Player.ErrorHold == 0 {
		c.Player.ErrorHold = d.Player.ErrorHold
	}

	// Storage
	if c.Storage.Backend == "" {
		c.Storage.Backend = d.Storage.Backend
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.SearchDebounce == 0 {
		c.TUI.SearchDebounce = d.TUI.SearchDebounce
	}
	if c.TUI.ToastDuration == 0 {
		c.TUI.ToastDuration = d.TUI.ToastDuration
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
