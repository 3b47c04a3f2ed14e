package config

// Config is the root configuration structure.
type Config struct {
	API     APIConfig     `toml:"api"`
	Player  PlayerConfig  `toml:"player"`
	Storage StorageConfig `toml:"storage"`
	TUI     TUIConfig     `toml:"tui"`
	Log     LogConfig     `toml:"log"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL   string  `toml:"base_url"`
	Timeout   int     `toml:"timeout"`    // seconds
	RateLimit float64 `toml:"rate_limit"` // requests per second, 0 disables
}

// PlayerConfig holds audio playback settings.
type PlayerConfig struct {
	Command   string   `toml:"command"`
	Args      []string `toml:"args"`
	ErrorHold int      `toml:"error_hold"` // milliseconds
}

// StorageConfig holds local state persistence settings.
type StorageConfig struct {
	Backend string `toml:"backend"`
	Path    string `toml:"path"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme          string `toml:"theme"`
	SearchDebounce int    `toml:"search_debounce"` // milliseconds
	ToastDuration  int    `toml:"toast_duration"`  // milliseconds
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
