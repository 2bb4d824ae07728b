package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/recall-tui/recall/internal/game"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Game  GameConfig  `yaml:"game"`
	UI    UIConfig    `yaml:"ui"`
	Stats StatsConfig `yaml:"stats"`
	Log   LogConfig   `yaml:"log"`
}

type GameConfig struct {
	Length         int           `yaml:"length"`
	RevealInterval time.Duration `yaml:"reveal_interval"`
	MaxTickStep    time.Duration `yaml:"max_tick_step"`
	Mode           game.Mode     `yaml:"mode"`
}

type UIConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
	AltScreen     bool          `yaml:"alt_screen"`
}

// StatsConfig controls round statistics. An empty Dir uses the XDG state
// directory.
type StatsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// LogConfig routes the standard logger. The TUI owns stdout, so with an
// empty File log output is discarded.
type LogConfig struct {
	File string `yaml:"file"`
}

func defaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			Length:         game.DefaultLength,
			RevealInterval: game.DefaultRevealInterval,
			MaxTickStep:    game.DefaultMaxTickStep,
			Mode:           game.Lenient,
		},
		UI: UIConfig{
			FrameInterval: 16 * time.Millisecond,
			AltScreen:     true,
		},
		Stats: StatsConfig{
			Enabled: true,
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

// Load reads the YAML file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	return cfg, err
}

// Validate reports the first setting that cannot drive a game.
func (c *Config) Validate() error {
	switch {
	case c.Game.Length < 1:
		return fmt.Errorf("game.length must be at least 1, got %d", c.Game.Length)
	case c.Game.RevealInterval <= 0:
		return fmt.Errorf("game.reveal_interval must be positive, got %s", c.Game.RevealInterval)
	case c.Game.MaxTickStep <= 0:
		return fmt.Errorf("game.max_tick_step must be positive, got %s", c.Game.MaxTickStep)
	case c.UI.FrameInterval <= 0:
		return fmt.Errorf("ui.frame_interval must be positive, got %s", c.UI.FrameInterval)
	}
	return nil
}

// GameOptions projects the game section into session options.
func (c *Config) GameOptions() game.Options {
	return game.Options{
		Length:         c.Game.Length,
		RevealInterval: c.Game.RevealInterval,
		MaxTickStep:    c.Game.MaxTickStep,
		Mode:           c.Game.Mode,
	}
}
