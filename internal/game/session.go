// Package game holds the round state machine: showing a sequence, taking the
// player's input and validating it in lenient or strict mode.
package game

import (
	"fmt"
	"time"

	"github.com/recall-tui/recall/internal/sequence"
)

const incorrectMessage = "Sequence is incorrect!"

// Generator supplies the target sequence and direction for a new round.
type Generator interface {
	Generate(length int) ([]sequence.Symbol, sequence.Direction)
}

// Session is a single player's game. It is reused across rounds and is not
// safe for concurrent use; the driving UI loop owns it.
type Session struct {
	gen  Generator
	opts Options

	phase     Phase
	mode      Mode
	target    []sequence.Symbol
	entered   []sequence.Symbol
	direction sequence.Direction
	errMsg    string
	round     int

	revealElapsed time.Duration
	inputStarted  time.Time
	finishedAt    time.Time
}

// NewSession creates a session in the NotStarted phase. A nil gen uses a
// sequence.Generator over the default random source.
func NewSession(gen Generator, opts Options) *Session {
	if gen == nil {
		gen = sequence.NewGenerator(nil)
	}
	opts = opts.normalized()
	return &Session{
		gen:   gen,
		opts:  opts,
		phase: NotStarted,
		mode:  opts.Mode,
	}
}

// Start begins a new round from any phase.
func (s *Session) Start() {
	s.target, s.direction = s.gen.Generate(s.opts.Length)
	s.entered = s.entered[:0]
	s.errMsg = ""
	s.revealElapsed = 0
	s.inputStarted = time.Time{}
	s.finishedAt = time.Time{}
	s.round++
	s.phase = Showing
}

// Tick advances the reveal timer. It does nothing outside Showing. A single
// call contributes at most MaxTickStep so that a stalled frame does not skip
// part of the sequence.
func (s *Session) Tick(elapsed time.Duration) {
	if s.phase != Showing || elapsed <= 0 {
		return
	}
	if elapsed > s.opts.MaxTickStep {
		elapsed = s.opts.MaxTickStep
	}
	s.revealElapsed += elapsed
	if s.revealed() >= len(s.target) {
		s.phase = AwaitingInput
		s.inputStarted = s.opts.Clock()
	}
}

func (s *Session) revealed() int {
	n := int(s.revealElapsed / s.opts.RevealInterval)
	if n > len(s.target) {
		n = len(s.target)
	}
	return n
}

// Submit records one entered symbol and validates it against the target.
// It returns the phase after the entry; outside AwaitingInput it is a no-op.
func (s *Session) Submit(sym sequence.Symbol) Phase {
	if s.phase != AwaitingInput || len(s.entered) >= len(s.target) {
		return s.phase
	}
	s.entered = append(s.entered, sym)

	n := len(s.entered)
	idx := s.direction.ExpectedIndex(n, len(s.target))
	if want := s.target[idx]; want != sym && s.mode == Strict {
		s.errMsg = fmt.Sprintf("Wrong! Expected '%s' but got '%s'", want, sym)
		s.finish(GameOver)
		return s.phase
	}

	if n == len(s.target) {
		if s.allCorrect() {
			s.finish(Success)
		} else {
			if s.errMsg == "" {
				s.errMsg = incorrectMessage
			}
			s.finish(GameOver)
		}
	}
	return s.phase
}

func (s *Session) allCorrect() bool {
	for i, sym := range s.entered {
		if s.target[s.direction.Position(i, len(s.target))] != sym {
			return false
		}
	}
	return true
}

func (s *Session) finish(p Phase) {
	s.phase = p
	s.finishedAt = s.opts.Clock()
}

// DeleteLast removes the most recent entry. In strict mode the error message
// is cleared once the remaining input no longer ends in a mismatch.
func (s *Session) DeleteLast() {
	if s.phase != AwaitingInput || len(s.entered) == 0 {
		return
	}
	s.entered = s.entered[:len(s.entered)-1]
	if s.mode != Strict {
		return
	}

	n := len(s.entered)
	if n == 0 {
		s.errMsg = ""
		return
	}
	idx := s.direction.ExpectedIndex(n, len(s.target))
	if s.target[idx] == s.entered[n-1] {
		s.errMsg = ""
	}
}

// SetMode switches validation mode; it applies from the next entry on.
func (s *Session) SetMode(m Mode) {
	s.mode = m
}

// ToggleMode flips between lenient and strict and returns the new mode.
func (s *Session) ToggleMode() Mode {
	s.mode = s.mode.Toggle()
	return s.mode
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Phase() Phase {
	return s.phase
}

// Outcome reports how the last round ended. ok is false until the round
// reaches GameOver or Success.
func (s *Session) Outcome() (Outcome, bool) {
	if !s.phase.IsTerminal() {
		return Outcome{}, false
	}
	var inputTime time.Duration
	if !s.inputStarted.IsZero() {
		inputTime = s.finishedAt.Sub(s.inputStarted)
	}
	return Outcome{
		Round:      s.round,
		Success:    s.phase == Success,
		Mode:       s.mode,
		Direction:  s.direction,
		Length:     len(s.target),
		Entered:    len(s.entered),
		InputTime:  inputTime,
		FinishedAt: s.finishedAt,
	}, true
}

// Snapshot returns the render model for the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:     s.phase,
		Mode:      s.mode,
		Direction: s.direction,
		Round:     s.round,
		Length:    len(s.target),
		Entered:   clone(s.entered),
		Remaining: len(s.target) - len(s.entered),
		Error:     s.errMsg,
	}

	switch s.phase {
	case Showing:
		snap.Revealed = s.revealed()
		snap.Visible = clone(s.target[:snap.Revealed])
		if snap.Revealed < len(s.target) {
			snap.Presenting = s.target[snap.Revealed]
		}
		if total := s.opts.RevealInterval * time.Duration(len(s.target)); total > 0 {
			snap.RevealFraction = float64(s.revealElapsed) / float64(total)
			if snap.RevealFraction > 1 {
				snap.RevealFraction = 1
			}
		}
	case AwaitingInput:
		snap.Revealed = len(s.target)
		snap.RevealFraction = 1
	case GameOver, Success:
		snap.Revealed = len(s.target)
		snap.RevealFraction = 1
		snap.Target = clone(s.target)
		if s.direction == sequence.Reverse {
			snap.Expected = sequence.Reversed(s.target)
		} else {
			snap.Expected = clone(s.target)
		}
	}
	return snap
}

func clone(seq []sequence.Symbol) []sequence.Symbol {
	if seq == nil {
		return nil
	}
	out := make([]sequence.Symbol, len(seq))
	copy(out, seq)
	return out
}
