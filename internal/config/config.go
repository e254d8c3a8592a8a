// Package config loads game settings from TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

// Config is the full set of game settings, one TOML table per section.
type Config struct {
	Render    RenderConfig    `toml:"render"`
	Player    PlayerConfig    `toml:"player"`
	Level     LevelConfig     `toml:"level"`
	Logging   LoggingConfig   `toml:"logging"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Audio     AudioConfig     `toml:"audio"`
}

// RenderConfig controls frame size, ray count and pacing.
type RenderConfig struct {
	Width   int           `toml:"width"`   // snapshot frame width; terminal mode uses the window
	Height  int           `toml:"height"`  // snapshot frame height
	Rays    int           `toml:"rays"`    // 0 = one ray per frame column
	FOV     float64       `toml:"fov"`     // radians
	Workers int           `toml:"workers"` // parallel sweep batches, 1 = sequential
	Ceiling string        `toml:"ceiling"` // hex override, empty = level color
	Floor   string        `toml:"floor"`   // hex override, empty = level color
	Tick    time.Duration `toml:"tick"`
	Minimap bool          `toml:"minimap"` // overlay in the first-person view
}

// PlayerConfig holds per-command step sizes.
type PlayerConfig struct {
	Speed         float64 `toml:"speed"`          // world units per step
	RotationSpeed float64 `toml:"rotation_speed"` // radians per step
}

// LevelConfig selects an embedded level or a generated one.
type LevelConfig struct {
	Name     string  `toml:"name"`
	Generate bool    `toml:"generate"`
	Seed     int64   `toml:"seed"` // 0 = random
	Size     int     `toml:"size"`
	Scale    float64 `toml:"scale"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // terminal mode logs here instead of stderr
}

// TelemetryConfig enables OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
}

// AudioConfig controls the door sound cue.
type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0-1.0
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in settings. Load overlays files on top of it.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:   250,
			Height:  250,
			FOV:     1.0,
			Workers: 1,
			Tick:    50 * time.Millisecond,
			Minimap: true,
		},
		Player: PlayerConfig{
			Speed:         8,
			RotationSpeed: 0.1,
		},
		Level: LevelConfig{
			Name:  "temple",
			Size:  32,
			Scale: 24,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "dungeoncaster.log",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "dungeoncaster",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// Validate rejects settings the renderer or level loader cannot use.
func (c *Config) Validate() error {
	r := c.Render
	switch {
	case r.Width < 1 || r.Height < 1:
		return fmt.Errorf("render size %dx%d: must be positive", r.Width, r.Height)
	case r.Rays < 0 || r.Rays > r.Width:
		return fmt.Errorf("render rays %d: must be between 0 and width %d", r.Rays, r.Width)
	case r.FOV <= 0:
		return fmt.Errorf("render fov %v: must be positive", r.FOV)
	case r.Workers < 1:
		return fmt.Errorf("render workers %d: must be at least 1", r.Workers)
	case r.Tick <= 0:
		return fmt.Errorf("render tick %v: must be positive", r.Tick)
	}
	for name, hex := range map[string]string{"ceiling": r.Ceiling, "floor": r.Floor} {
		if hex == "" {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("render %s %q: %w", name, hex, err)
		}
	}
	if c.Player.Speed < 0 || c.Player.RotationSpeed < 0 {
		return fmt.Errorf("player speeds must not be negative")
	}
	if c.Level.Generate && (c.Level.Size < 6 || c.Level.Scale <= 0) {
		return fmt.Errorf("level size %d scale %v: generated levels need size >= 6 and positive scale", c.Level.Size, c.Level.Scale)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %v: must be between 0 and 1", c.Audio.Volume)
	}
	return nil
}
