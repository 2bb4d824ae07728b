package game

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/recall-tui/recall/internal/sequence"
)

// Phase is the stage of the current round.
type Phase int

const (
	NotStarted Phase = iota
	Showing
	AwaitingInput
	GameOver
	Success
)

var phaseNames = map[Phase]string{
	NotStarted:    "not_started",
	Showing:       "showing",
	AwaitingInput: "awaiting_input",
	GameOver:      "game_over",
	Success:       "success",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// IsTerminal reports whether the round has ended.
func (p Phase) IsTerminal() bool {
	return p == GameOver || p == Success
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Mode selects when mismatches are reported.
type Mode int

const (
	// Lenient checks the sequence only once it has been fully entered.
	Lenient Mode = iota
	// Strict ends the round on the first wrong symbol.
	Strict
)

var modeNames = map[Mode]string{
	Lenient: "lenient",
	Strict:  "strict",
}

var modeFromName = map[string]Mode{
	"lenient": Lenient,
	"normal":  Lenient,
	"strict":  Strict,
}

func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return "unknown"
}

// Label is the player-facing name of the mode.
func (m Mode) Label() string {
	switch m {
	case Strict:
		return "Strict"
	default:
		return "Normal"
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Strict {
		return Lenient
	}
	return Strict
}

// ParseMode accepts "lenient" (or "normal") and "strict", case-insensitively.
func ParseMode(s string) (Mode, error) {
	if m, ok := modeFromName[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return Lenient, fmt.Errorf("unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Options configures a Session.
type Options struct {
	Length         int
	RevealInterval time.Duration // time each symbol is on screen
	MaxTickStep    time.Duration // largest elapsed time a single Tick may add
	Mode           Mode
	Clock          func() time.Time
}

const (
	DefaultLength         = 5
	DefaultRevealInterval = 800 * time.Millisecond
	DefaultMaxTickStep    = 100 * time.Millisecond
)

// DefaultOptions returns the standard round settings.
func DefaultOptions() Options {
	return Options{
		Length:         DefaultLength,
		RevealInterval: DefaultRevealInterval,
		MaxTickStep:    DefaultMaxTickStep,
		Mode:           Lenient,
	}
}

func (o Options) normalized() Options {
	if o.Length < 1 {
		o.Length = DefaultLength
	}
	if o.RevealInterval <= 0 {
		o.RevealInterval = DefaultRevealInterval
	}
	if o.MaxTickStep <= 0 {
		o.MaxTickStep = DefaultMaxTickStep
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}

// Snapshot is a read-only projection of a Session for rendering. Its slices
// are copies owned by the caller.
type Snapshot struct {
	Phase     Phase
	Mode      Mode
	Direction sequence.Direction
	Round     int
	Length    int

	// Reveal progress, meaningful while Showing.
	Revealed       int
	RevealFraction float64
	Visible        []sequence.Symbol
	// Presenting is the symbol currently being revealed, zero if none.
	Presenting sequence.Symbol

	Entered   []sequence.Symbol
	Remaining int
	Error     string

	// Set only once the round is over. Expected is Target in the order the
	// player had to type it.
	Target   []sequence.Symbol
	Expected []sequence.Symbol
}

// Outcome summarizes a finished round.
type Outcome struct {
	Round      int
	Success    bool
	Mode       Mode
	Direction  sequence.Direction
	Length     int
	Entered    int
	InputTime  time.Duration
	FinishedAt time.Time
}
