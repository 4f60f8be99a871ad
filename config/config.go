package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds miditext preferences
type Config struct {
	IncludeTime  bool   // write timestamps when formatting
	HexSeparator string // between hex byte pairs
	Color        bool   // style output with the theme
	Palette      string // optional GPL palette path
	Debug        bool   // write ~/.config/go-midimsg/debug.log
	LogLevel     string
	StopOnError  bool // abort encode at the first bad line
}

type fileConfig struct {
	IncludeTime  bool   `toml:"include_time"`
	HexSeparator string `toml:"hex_separator"`
	Color        bool   `toml:"color"`
	Palette      string `toml:"palette"`
	Debug        bool   `toml:"debug"`
	LogLevel     string `toml:"log_level"`
	StopOnError  bool   `toml:"stop_on_error"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		HexSeparator: " ",
		Color:        true,
		LogLevel:     "debug",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-midimsg"), nil
}

// ConfigPath returns the full path to config.toml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at path, or at ConfigPath if path is empty. A
// missing default file yields defaults; a missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	cfg, err := loadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("include_time") {
		cfg.IncludeTime = raw.IncludeTime
	}
	if meta.IsDefined("hex_separator") {
		cfg.HexSeparator = raw.HexSeparator
	}
	if meta.IsDefined("color") {
		cfg.Color = raw.Color
	}
	if meta.IsDefined("palette") {
		cfg.Palette = strings.TrimSpace(raw.Palette)
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}
	if meta.IsDefined("log_level") {
		lvl := strings.ToLower(strings.TrimSpace(raw.LogLevel))
		if lvl == "" {
			return nil, fmt.Errorf("parse log_level: empty value")
		}
		cfg.LogLevel = lvl
	}
	if meta.IsDefined("stop_on_error") {
		cfg.StopOnError = raw.StopOnError
	}
	return cfg, nil
}

// Save writes the config as TOML to path, or ConfigPath if path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	raw := fileConfig{
		IncludeTime:  c.IncludeTime,
		HexSeparator: c.HexSeparator,
		Color:        c.Color,
		Palette:      c.Palette,
		Debug:        c.Debug,
		LogLevel:     c.LogLevel,
		StopOnError:  c.StopOnError,
	}
	return encodeConfig(f, raw)
}

// encodeConfig encodes raw to wc and closes it. The close error is returned
// when encoding succeeded.
func encodeConfig(wc io.WriteCloser, raw fileConfig) error {
	if err := toml.NewEncoder(wc).Encode(raw); err != nil {
		wc.Close()
		return fmt.Errorf("save config: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
