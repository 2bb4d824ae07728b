package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/recall-tui/recall/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.Game.Length != 5 {
		t.Errorf("Game.Length = %d, want 5", cfg.Game.Length)
	}
	if cfg.Game.RevealInterval != 800*time.Millisecond {
		t.Errorf("Game.RevealInterval = %v, want 800ms", cfg.Game.RevealInterval)
	}
	if cfg.Game.MaxTickStep != 100*time.Millisecond {
		t.Errorf("Game.MaxTickStep = %v, want 100ms", cfg.Game.MaxTickStep)
	}
	if cfg.Game.Mode != game.Lenient {
		t.Errorf("Game.Mode = %s, want lenient", cfg.Game.Mode)
	}
	if !cfg.Stats.Enabled {
		t.Error("Stats.Enabled = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
game:
  length: 7
  reveal_interval: 500ms
  mode: strict
stats:
  dir: /tmp/recall-stats
log:
  file: /tmp/recall.log
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Game.Length != 7 {
		t.Errorf("Game.Length = %d, want 7", cfg.Game.Length)
	}
	if cfg.Game.RevealInterval != 500*time.Millisecond {
		t.Errorf("Game.RevealInterval = %v, want 500ms", cfg.Game.RevealInterval)
	}
	if cfg.Game.Mode != game.Strict {
		t.Errorf("Game.Mode = %s, want strict", cfg.Game.Mode)
	}
	if cfg.Stats.Dir != "/tmp/recall-stats" {
		t.Errorf("Stats.Dir = %q", cfg.Stats.Dir)
	}
	if cfg.Log.File != "/tmp/recall.log" {
		t.Errorf("Log.File = %q", cfg.Log.File)
	}

	// Defaults should still be applied for unspecified fields.
	if cfg.Game.MaxTickStep != 100*time.Millisecond {
		t.Errorf("Game.MaxTickStep = %v, want default 100ms", cfg.Game.MaxTickStep)
	}
	if cfg.UI.FrameInterval != 16*time.Millisecond {
		t.Errorf("UI.FrameInterval = %v, want default 16ms", cfg.UI.FrameInterval)
	}
	if !cfg.Stats.Enabled {
		t.Error("Stats.Enabled should keep its default")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() on missing file should return error")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if cfg.Game.Length != game.DefaultLength {
		t.Errorf("Game.Length = %d, want default %d", cfg.Game.Length, game.DefaultLength)
	}
}

func TestLoadOrDefaultPropagatesParseErrors(t *testing.T) {
	path := writeConfig(t, ":::not valid yaml")
	if _, err := LoadOrDefault(path); err == nil {
		t.Fatal("LoadOrDefault() with invalid YAML should return error")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := writeConfig(t, ":::not valid yaml")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with invalid YAML should return error")
	}
}

func TestLoadUnknownMode(t *testing.T) {
	path := writeConfig(t, "game:\n  mode: nightmare\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() with unknown mode should return error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero length", func(c *Config) { c.Game.Length = 0 }},
		{"negative reveal", func(c *Config) { c.Game.RevealInterval = -time.Second }},
		{"zero tick step", func(c *Config) { c.Game.MaxTickStep = 0 }},
		{"zero frame", func(c *Config) { c.UI.FrameInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestGameOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.Game.Length = 3
	cfg.Game.Mode = game.Strict

	opts := cfg.GameOptions()
	if opts.Length != 3 || opts.Mode != game.Strict {
		t.Errorf("GameOptions() = %+v", opts)
	}
	if opts.RevealInterval != cfg.Game.RevealInterval {
		t.Errorf("RevealInterval = %v, want %v", opts.RevealInterval, cfg.Game.RevealInterval)
	}
}
