package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dungeoncaster.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Level.Name != "temple" || cfg.Player.Speed != 8 {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[render]
rays = 125
workers = 4
tick = "100ms"
ceiling = "#202040"

[level]
name = "hall"

[logging]
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Render.Rays != 125 || cfg.Render.Workers != 4 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Render.Tick != 100*time.Millisecond {
		t.Errorf("Tick = %v, want 100ms", cfg.Render.Tick)
	}
	if cfg.Render.Width != 250 || cfg.Render.FOV != 1.0 {
		t.Errorf("unset render fields lost their defaults: %+v", cfg.Render)
	}
	if cfg.Level.Name != "hall" || cfg.Logging.Format != "json" || cfg.Logging.Level != "info" {
		t.Errorf("level/logging = %+v %+v", cfg.Level, cfg.Logging)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"rays above width", "[render]\nwidth = 10\nrays = 11\n"},
		{"zero height", "[render]\nheight = 0\n"},
		{"no workers", "[render]\nworkers = 0\n"},
		{"bad color", "[render]\nfloor = \"grey\"\n"},
		{"loud", "[audio]\nvolume = 2.0\n"},
		{"tiny generated", "[level]\ngenerate = true\nsize = 3\n"},
		{"syntax", "[render\n"},
	}
	for _, tt := range tests {
		if _, err := Load(writeConfig(t, tt.body)); err == nil {
			t.Errorf("%s: Load() error = nil", tt.name)
		}
	}
}
