package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type setter func(c *Config, value string) error

func intSetter(field func(c *Config) *int) setter {
	return func(c *Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("value must be an integer")
		}
		*field(c) = n
		return nil
	}
}

func stringSetter(field func(c *Config) *string) setter {
	return func(c *Config, value string) error {
		*field(c) = value
		return nil
	}
}

var setters = map[string]setter{
	"api.base_url": stringSetter(func(c *Config) *string { return &c.API.BaseURL }),
	"api.timeout":  intSetter(func(c *Config) *int { return &c.API.Timeout }),
	"api.rate_limit": func(c *Config, value string) error {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("value must be a number")
		}
		c.API.RateLimit = f
		return nil
	},
	"player.command": stringSetter(func(c *Config) *string { return &c.Player.Command }),
	"player.args": func(c *Config, value string) error {
		c.Player.Args = strings.Fields(value)
		return nil
	},
	"player.error_hold":   intSetter(func(c *Config) *int { return &c.Player.ErrorHold }),
	"storage.backend":     stringSetter(func(c *Config) *string { return &c.Storage.Backend }),
	"storage.path":        stringSetter(func(c *Config) *string { return &c.Storage.Path }),
	"tui.theme":           stringSetter(func(c *Config) *string { return &c.TUI.Theme }),
	"tui.search_debounce": intSetter(func(c *Config) *int { return &c.TUI.SearchDebounce }),
	"tui.toast_duration":  intSetter(func(c *Config) *int { return &c.TUI.ToastDuration }),
	"log.level":           stringSetter(func(c *Config) *string { return &c.Log.Level }),
	"log.file":            stringSetter(func(c *Config) *string { return &c.Log.File }),
}

// Keys returns the keys accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns a value by its dotted TOML key, e.g. "player.command". The
// result is not validated.
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown key %q", key)
	}
	if err := set(c, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}
