package status

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/recall-tui/recall/internal/game"
	"github.com/recall-tui/recall/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Snapshot   game.Snapshot
	Streak     int
	BestStreak int
	Played     int
	Successes  int
	Width      int
}

// New creates a status bar model.
func New() Model {
	return Model{}
}

// SetRecord updates the persistent streak and totals shown on the right.
func (m *Model) SetRecord(played, successes, streak, best int) {
	m.Played = played
	m.Successes = successes
	m.Streak = streak
	m.BestStreak = best
}

// View renders the status bar.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	modeStr := theme.Badge(m.Snapshot.Mode.Label(), theme.ModeColor(m.Snapshot.Mode.String()))

	dirStr := theme.StyleDimmed.Render("[-]")
	if m.Snapshot.Phase != game.NotStarted {
		dir := m.Snapshot.Direction
		dirStr = theme.Badge(dir.Label(), theme.DirectionColor(dir.String()))
	}

	round := theme.StyleDimmed.Render("no round yet")
	if m.Snapshot.Round > 0 {
		round = fmt.Sprintf("round %d", m.Snapshot.Round)
	}

	record := fmt.Sprintf("%d/%d won  streak %d  best %d",
		m.Successes, m.Played, m.Streak, m.BestStreak)

	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")
	content := modeStr + " " + dirStr + sep + round + sep + record

	bar := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)

	return bar
}
