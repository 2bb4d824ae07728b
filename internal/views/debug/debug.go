// Package debug keeps an in-memory event log of the session and renders it
// as a scrollable, filterable overlay.
package debug

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/recall-tui/recall/internal/theme"
)

const maxEntries = 200

// Kind classifies a log entry.
type Kind int

const (
	KindGame  Kind = iota // phase transitions and round lifecycle
	KindKey               // ignored or rejected input
	KindStats             // stats load/save
	KindError
	numKinds
)

var kindLabels = [numKinds]string{"game", "key", "stat", "err"}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "?"
	}
	return kindLabels[k]
}

func (k Kind) color() lipgloss.Color {
	switch k {
	case KindGame:
		return theme.ColorForward
	case KindKey:
		return theme.ColorAccent
	case KindStats:
		return theme.ColorWarning
	case KindError:
		return theme.ColorDanger
	}
	return theme.ColorDimmed
}

// Entry is one logged event, tagged with the round it happened in.
type Entry struct {
	At      time.Time
	Kind    Kind
	Round   int
	Message string
}

// Model is the event log. The zero value is ready to use.
type Model struct {
	Entries []Entry
	// Offset counts filtered entries hidden below the viewport.
	Offset int

	round     int
	filter    Kind
	filtering bool
	now       func() time.Time
}

// New creates an empty log.
func New() Model {
	return Model{now: time.Now}
}

// SetRound sets the round number attached to subsequent entries.
func (m *Model) SetRound(round int) {
	m.round = round
}

// Add appends an entry, dropping the oldest past maxEntries, and jumps back
// to the newest entry.
func (m *Model) Add(kind Kind, message string) {
	clock := m.now
	if clock == nil {
		clock = time.Now
	}
	m.Entries = append(m.Entries, Entry{At: clock(), Kind: kind, Round: m.round, Message: message})
	if over := len(m.Entries) - maxEntries; over > 0 {
		m.Entries = append(m.Entries[:0:0], m.Entries[over:]...)
	}
	m.Offset = 0
}

// Addf is Add with fmt.Sprintf formatting.
func (m *Model) Addf(kind Kind, format string, args ...any) {
	m.Add(kind, fmt.Sprintf(format, args...))
}

// Scroll moves the viewport by delta entries; positive values go back in
// time.
func (m *Model) Scroll(delta int) {
	m.Offset = max(0, min(m.Offset+delta, len(m.visible())-1))
}

// CycleFilter steps through showing all kinds, then each kind on its own.
func (m *Model) CycleFilter() {
	switch {
	case !m.filtering:
		m.filtering, m.filter = true, 0
	case m.filter+1 < numKinds:
		m.filter++
	default:
		m.filtering = false
	}
	m.Offset = 0
}

// Filter returns the kind shown, ok is false when every kind is shown.
func (m Model) Filter() (Kind, bool) {
	return m.filter, m.filtering
}

func (m Model) visible() []Entry {
	if !m.filtering {
		return m.Entries
	}
	var out []Entry
	for _, e := range m.Entries {
		if e.Kind == m.filter {
			out = append(out, e)
		}
	}
	return out
}

// View renders the log panel sized to width and height.
func (m Model) View(width, height int) string {
	innerW := max(width-4, 20)
	rows := max(height-6, 3)

	filterName := "all"
	if m.filtering {
		filterName = m.filter.String()
	}
	title := theme.StyleHeader.Render(" DEBUG LOG ")
	footer := theme.StyleDimmed.Render(fmt.Sprintf(
		"up/down:scroll  tab:filter (%s)  esc:close  %d entries", filterName, len(m.Entries)))

	entries := m.visible()
	var body string
	if len(entries) == 0 {
		body = theme.StyleDimmed.Render("  No events recorded yet.")
	} else {
		end := len(entries) - m.Offset
		start := max(end-rows, 0)
		msgW := innerW - 24

		lines := make([]string, 0, end-start+1)
		for _, e := range entries[start:end] {
			msg := e.Message
			if msgW > 3 && len(msg) > msgW {
				msg = msg[:msgW-3] + "..."
			}
			lines = append(lines, fmt.Sprintf("%s %s %s %s",
				theme.StyleDimmed.Render(e.At.Format("15:04:05.000")),
				theme.StyleDimmed.Render(fmt.Sprintf("r%-3d", e.Round)),
				lipgloss.NewStyle().Foreground(e.Kind.color()).Width(4).Render(e.Kind.String()),
				msg))
		}
		if m.Offset > 0 {
			lines = append(lines, theme.StyleDimmed.Render(fmt.Sprintf(" ↓ %d newer", m.Offset)))
		}
		body = strings.Join(lines, "\n")
	}

	return lipgloss.NewStyle().
		Width(innerW).
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, body, "", footer))
}
