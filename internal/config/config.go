// Package config loads optional editor settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the editor settings.
type Config struct {
	// TabWidth is the column interval between tab stops.
	TabWidth int `toml:"tab_width"`

	// Welcome toggles the banner shown on an empty buffer.
	Welcome bool `toml:"welcome"`

	// MessageSecs is how long status messages stay visible, in seconds.
	MessageSecs int `toml:"message_secs"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TabWidth:    8,
		Welcome:     true,
		MessageSecs: 5,
	}
}

// MessageTimeout returns the status message lifetime as a duration.
func (c Config) MessageTimeout() time.Duration {
	return time.Duration(c.MessageSecs) * time.Second
}

// ParseError describes a malformed configuration file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads settings from the TOML file at path, layered over the
// defaults. A missing file is not an error; it yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), &ParseError{Path: path, Err: err}
	}

	if cfg.TabWidth < 1 {
		return Default(), &ParseError{Path: path, Err: fmt.Errorf("tab_width must be positive, got %d", cfg.TabWidth)}
	}
	if cfg.MessageSecs < 0 {
		return Default(), &ParseError{Path: path, Err: fmt.Errorf("message_secs must not be negative, got %d", cfg.MessageSecs)}
	}
	return cfg, nil
}

// DefaultPath returns the conventional location of the config file,
// $XDG_CONFIG_HOME/quill/quill.toml, or "" when no user config directory
// is available.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "quill.toml")
}
