package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/recall-tui/recall/internal/app"
	"github.com/recall-tui/recall/internal/config"
	"github.com/recall-tui/recall/internal/game"
	"github.com/recall-tui/recall/internal/stats"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "Path to config file")
	mode := flag.String("mode", "", "Validation mode: lenient (normal) or strict")
	length := flag.Int("length", 0, "Override sequence length")
	statsDir := flag.String("stats-dir", "", "Override stats directory")
	noStats := flag.Bool("no-stats", false, "Do not load or save round statistics")
	logFile := flag.String("log", "", "Write log output to this file")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(cfg, *mode, *length, *statsDir, *noStats, *logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The TUI owns the terminal, so the logger goes to a file or nowhere.
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "recall")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var tracker *stats.Tracker
	if cfg.Stats.Enabled {
		tracker, err = stats.NewTracker(stats.NewStore(cfg.Stats.Dir))
		if err != nil {
			// A broken stats file should not stop the game.
			log.Printf("Failed to load stats, continuing without: %v", err)
			tracker = nil
		}
	}

	session := game.NewSession(nil, cfg.GameOptions())
	m := app.New(session, tracker, cfg.UI.FrameInterval)

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, opts...)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if tracker != nil {
		if err := tracker.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: saving stats: %v\n", err)
		}
	}
}

// applyFlags layers command-line overrides on top of the loaded config.
func applyFlags(cfg *config.Config, mode string, length int, statsDir string, noStats bool, logFile string) error {
	if mode != "" {
		m, err := game.ParseMode(mode)
		if err != nil {
			return err
		}
		cfg.Game.Mode = m
	}
	if length > 0 {
		cfg.Game.Length = length
	}
	if statsDir != "" {
		cfg.Stats.Dir = statsDir
	}
	if noStats {
		cfg.Stats.Enabled = false
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	return cfg.Validate()
}

// defaultConfigPath returns ~/.config/recall/config.yaml, respecting
// XDG_CONFIG_HOME.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "recall", "config.yaml")
}
