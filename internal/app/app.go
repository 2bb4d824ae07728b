package app

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/recall-tui/recall/internal/game"
	"github.com/recall-tui/recall/internal/sequence"
	"github.com/recall-tui/recall/internal/stats"
	"github.com/recall-tui/recall/internal/theme"
	"github.com/recall-tui/recall/internal/views/board"
	"github.com/recall-tui/recall/internal/views/dashboard"
	"github.com/recall-tui/recall/internal/views/debug"
	"github.com/recall-tui/recall/internal/views/help"
	"github.com/recall-tui/recall/internal/views/status"
)

// Overlay identifies which modal is active.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayDebug
	OverlayRecord
)

// DefaultFrameInterval is used when New is given a non-positive interval.
const DefaultFrameInterval = 16 * time.Millisecond

type frameMsg time.Time

type statsSavedMsg struct {
	err error
}

// Model is the root Bubble Tea model. It forwards key presses and frame
// time to the game session and renders its snapshot.
type Model struct {
	session *game.Session
	tracker *stats.Tracker // nil when stats are disabled

	keys   KeyMap
	width  int
	height int

	overlay Overlay

	// Frame loop.
	frameInterval time.Duration
	ticking       bool
	lastFrame     time.Time

	lastPhase game.Phase

	// Sub-views.
	statusBar status.Model
	board     board.Model
	dashboard dashboard.Model
	help      *help.Model
	debug     debug.Model
}

// New creates the root model.
func New(session *game.Session, tracker *stats.Tracker, frameInterval time.Duration) Model {
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	hv := help.New()
	m := Model{
		session:       session,
		tracker:       tracker,
		keys:          DefaultKeyMap(),
		frameInterval: frameInterval,
		statusBar:     status.New(),
		board:         board.New(int(time.Second / frameInterval)),
		dashboard:     dashboard.New(),
		help:          &hv,
		debug:         debug.New(),
		lastPhase:     session.Phase(),
	}
	if tracker != nil {
		if p := tracker.Path(); p != "" {
			m.debug.Addf(debug.KindStats, "stats file %s", p)
		}
	}
	m.sync()
	return m
}

// Init sets the window title.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Memory Game")
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.board.Width = msg.Width
		m.dashboard.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		return m.handleFrame(time.Time(msg))

	case statsSavedMsg:
		if msg.err != nil {
			m.debug.Addf(debug.KindError, "saving stats: %v", msg.err)
		} else {
			m.debug.Add(debug.KindStats, "stats saved")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.overlay != OverlayNone {
		return m.handleOverlayKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Start):
		m.session.Start()
		m.board.ResetMeter()
		round := m.session.Snapshot().Round
		m.debug.SetRound(round)
		m.debug.Addf(debug.KindGame, "round %d started", round)
		cmd := m.transition()
		return m, tea.Batch(cmd, m.startFrames())

	case key.Matches(msg, m.keys.Delete):
		m.session.DeleteLast()
		return m, m.transition()

	case key.Matches(msg, m.keys.ToggleMode):
		mode := m.session.ToggleMode()
		m.debug.Addf(debug.KindGame, "mode %s", mode)
		return m, m.transition()

	case key.Matches(msg, m.keys.Help):
		m.overlay = OverlayHelp
		return m, nil

	case key.Matches(msg, m.keys.Debug):
		m.overlay = OverlayDebug
		return m, nil

	case key.Matches(msg, m.keys.Record):
		m.overlay = OverlayRecord
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			sym, ok := sequence.ParseSymbol(r)
			if !ok {
				m.debug.Addf(debug.KindKey, "ignored %q", r)
				continue
			}
			if m.session.Phase() != game.AwaitingInput {
				m.debug.Addf(debug.KindKey, "%s ignored during %s", sym, m.session.Phase())
				continue
			}
			m.session.Submit(sym)
		}
		return m, m.transition()
	}

	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.overlay = OverlayNone
	case key.Matches(msg, m.keys.Help):
		m.toggleOverlay(OverlayHelp)
	case key.Matches(msg, m.keys.Debug):
		m.toggleOverlay(OverlayDebug)
	case key.Matches(msg, m.keys.Record):
		m.toggleOverlay(OverlayRecord)
	case m.overlay == OverlayDebug && key.Matches(msg, m.keys.ScrollUp):
		m.debug.Scroll(1)
	case m.overlay == OverlayDebug && key.Matches(msg, m.keys.ScrollDown):
		m.debug.Scroll(-1)
	case m.overlay == OverlayDebug && key.Matches(msg, m.keys.ToggleMode):
		m.debug.CycleFilter()
	}
	return m, nil
}

// toggleOverlay closes o if it is open, otherwise switches to it.
func (m *Model) toggleOverlay(o Overlay) {
	if m.overlay == o {
		m.overlay = OverlayNone
		return
	}
	m.overlay = o
}

// startFrames begins the frame loop unless one is already running.
func (m *Model) startFrames() tea.Cmd {
	m.lastFrame = time.Now()
	if m.ticking {
		return nil
	}
	m.ticking = true
	return m.nextFrame()
}

func (m Model) nextFrame() tea.Cmd {
	return tea.Tick(m.frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := now.Sub(m.lastFrame)
	m.lastFrame = now
	m.session.Tick(elapsed)

	snap := m.session.Snapshot()
	moving := m.board.Animate(snap.RevealFraction)
	cmd := m.transition()

	if snap.Phase == game.Showing || moving {
		return m, tea.Batch(cmd, m.nextFrame())
	}
	m.ticking = false
	return m, cmd
}

// transition refreshes sub-views and, when a round has just ended, records
// its outcome and returns a command that persists the stats.
func (m *Model) transition() tea.Cmd {
	phase := m.session.Phase()
	prev := m.lastPhase
	m.lastPhase = phase

	var cmd tea.Cmd
	if phase != prev {
		m.debug.Addf(debug.KindGame, "phase %s -> %s", prev, phase)
		if phase.IsTerminal() {
			cmd = m.recordOutcome()
		}
	}
	m.sync()
	return cmd
}

func (m *Model) recordOutcome() tea.Cmd {
	out, ok := m.session.Outcome()
	if !ok {
		return nil
	}
	log.Printf("round %d finished: success=%t mode=%s direction=%s input=%s",
		out.Round, out.Success, out.Mode, out.Direction, out.InputTime.Round(time.Millisecond))
	if m.tracker == nil {
		return nil
	}
	m.tracker.Record(out)
	tracker := m.tracker
	return func() tea.Msg {
		return statsSavedMsg{err: tracker.Save()}
	}
}

func (m *Model) sync() {
	m.statusBar.Snapshot = m.session.Snapshot()
	if m.tracker != nil {
		st := m.tracker.Stats()
		m.statusBar.SetRecord(st.RoundsPlayed, st.Successes, st.CurrentStreak, st.BestStreak)
		m.dashboard.SetStats(st)
	}
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var body string
	switch m.overlay {
	case OverlayHelp:
		body = m.help.View(m.width)
	case OverlayDebug:
		body = m.debug.View(m.width, m.height-4)
	case OverlayRecord:
		body = m.dashboard.View()
	default:
		body = m.board.View(m.session.Snapshot())
	}

	sections := []string{
		theme.StyleHeader.Render("  Memory Game"),
		m.statusBar.View(),
		body,
		theme.StyleDimmed.Render("  " + m.footer()),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) footer() string {
	parts := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, fmt.Sprintf("%s:%s", h.Key, h.Desc))
	}
	return strings.Join(parts, "  ")
}
