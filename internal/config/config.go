// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads the settings of the gestures demo program.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"gioui.org/x/multitouch/gesture"
)

// Gesture names accepted in [gestures] enabled.
const (
	Swipe     = "swipe"
	LongPress = "long-press"
	Rotate    = "rotate"
	Zoom      = "zoom"
)

// AllGestures lists every gesture in delivery order.
var AllGestures = []string{Swipe, LongPress, Rotate, Zoom}

type Config struct {
	Gestures  GesturesConfig  `toml:"gestures"`
	LongPress LongPressConfig `toml:"longpress"`
	Log       LogConfig       `toml:"log"`
	Server    ServerConfig    `toml:"server"`
}

type GesturesConfig struct {
	Enabled []string `toml:"enabled"`
}

type LongPressConfig struct {
	DelayMs   int     `toml:"delay_ms"`
	Threshold float64 `toml:"threshold"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type ServerConfig struct {
	Addr           string `toml:"addr"`
	AllowAnyOrigin bool   `toml:"allow_any_origin"`
}

// ErrUnknownKeys is returned for configuration keys that don't
// match any setting.
var ErrUnknownKeys = errors.New("unknown configuration keys")

// Default returns the configuration used without a file.
func Default() *Config {
	return &Config{
		Gestures: GesturesConfig{
			Enabled: append([]string(nil), AllGestures...),
		},
		LongPress: LongPressConfig{
			DelayMs:   500,
			Threshold: gesture.DefaultThreshold,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: "localhost:8085",
		},
	}
}

// Load reads the TOML file at path. Settings missing from the file
// keep their default.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(cfg, md)
}

// Parse decodes a TOML document.
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(cfg, md)
}

func finish(cfg *Config, md toml.MetaData) (*Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.LongPress.DelayMs <= 0 {
		return fmt.Errorf("longpress.delay_ms must be positive, got %d", c.LongPress.DelayMs)
	}
	if c.LongPress.Threshold < 0 {
		return fmt.Errorf("longpress.threshold must not be negative, got %v", c.LongPress.Threshold)
	}
	seen := make(map[string]bool)
	for _, name := range c.Gestures.Enabled {
		if !known(name) {
			return fmt.Errorf("unknown gesture %q in gestures.enabled", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate gesture %q in gestures.enabled", name)
		}
		seen[name] = true
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr must not be empty")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func known(name string) bool {
	for _, g := range AllGestures {
		if g == name {
			return true
		}
	}
	return false
}

// Enabled reports whether the named gesture is enabled.
func (c *Config) Enabled(name string) bool {
	for _, g := range c.Gestures.Enabled {
		if g == name {
			return true
		}
	}
	return false
}

// LongPressDelay returns the long press trigger delay.
func (c *Config) LongPressDelay() time.Duration {
	return time.Duration(c.LongPress.DelayMs) * time.Millisecond
}

// LogLevel returns the parsed log level. It falls back to info for
// configurations that were not validated.
func (c *Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
