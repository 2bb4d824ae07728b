// Package board renders the play area for each phase of a round.
package board

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/recall-tui/recall/internal/game"
	"github.com/recall-tui/recall/internal/sequence"
	"github.com/recall-tui/recall/internal/theme"
)

const (
	meterWidth = 30
	// settleEpsilon is how close the meter must be to rest before the
	// animation stops asking for frames.
	settleEpsilon = 0.002
)

// Model holds the board's animation state. The game state itself is passed
// to View as a snapshot.
type Model struct {
	Width int

	spring   harmonica.Spring
	meterPos float64
	meterVel float64
}

// New creates a board whose meter spring steps at the given frame rate.
func New(fps int) Model {
	if fps <= 0 {
		fps = 60
	}
	return Model{
		spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 0.9),
	}
}

// Animate steps the reveal meter toward target and reports whether it is
// still moving.
func (m *Model) Animate(target float64) bool {
	m.meterPos, m.meterVel = m.spring.Update(m.meterPos, m.meterVel, target)
	if math.Abs(m.meterPos-target) < settleEpsilon && math.Abs(m.meterVel) < settleEpsilon {
		m.meterPos, m.meterVel = target, 0
		return false
	}
	return true
}

// ResetMeter snaps the meter back to empty for a new round.
func (m *Model) ResetMeter() {
	m.meterPos, m.meterVel = 0, 0
}

// MeterPosition returns the animated fill fraction.
func (m Model) MeterPosition() float64 {
	return m.meterPos
}

// View renders the board for snap.
func (m Model) View(snap game.Snapshot) string {
	var lines []string
	switch snap.Phase {
	case game.NotStarted:
		lines = notStartedView()
	case game.Showing:
		lines = m.showingView(snap)
	case game.AwaitingInput:
		lines = inputView(snap)
	case game.GameOver:
		lines = gameOverView(snap)
	case game.Success:
		lines = successView(snap)
	}

	width := m.Width
	if width < 40 {
		width = 40
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func notStartedView() []string {
	return []string{
		theme.StyleHeader.Render("Press enter to begin!"),
		"",
		"Instructions:",
		"1. Remember the sequence of numbers and letters shown on screen",
		"2. Enter them in the required order when prompted",
		"3. Use Backspace/Delete to remove the last entry if you make a mistake",
	}
}

func (m Model) showingView(snap game.Snapshot) []string {
	tiles := make([]string, 0, snap.Length)
	for _, s := range snap.Visible {
		tiles = append(tiles, tile(s, false))
	}
	if snap.Presenting.IsValid() {
		tiles = append(tiles, tile(snap.Presenting, true))
	}
	for i := len(tiles); i < snap.Length; i++ {
		tiles = append(tiles, theme.StyleTile.Foreground(theme.ColorDimmed).Render("·"))
	}

	shown := snap.Revealed + 1
	if shown > snap.Length {
		shown = snap.Length
	}
	return []string{
		theme.StyleHeader.Render("Remember the sequence:"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, tiles...),
		"",
		meter(m.meterPos),
		theme.StyleDimmed.Render(fmt.Sprintf("Showing sequence... %d/%d", shown, snap.Length)),
	}
}

func inputView(snap game.Snapshot) []string {
	dir := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.DirectionColor(snap.Direction.String())).
		Render(snap.Direction.String() + " order")

	lines := []string{
		theme.StyleHeader.Render("Enter the sequence in ") + dir + theme.StyleHeader.Render(":"),
		"",
		theme.StyleHeader.Render(fmt.Sprintf("Your input: [%s]", sequence.Join(snap.Entered, " "))),
	}
	if snap.Mode == game.Strict && snap.Error != "" {
		lines = append(lines, theme.StyleError.Render(snap.Error))
	}
	lines = append(lines,
		"",
		"Press the corresponding keys on your keyboard",
		"Press Backspace/Delete to remove the last entry",
		theme.StyleDimmed.Render(strings.Repeat("─", 30)),
		fmt.Sprintf("Characters remaining: %d", snap.Remaining),
	)
	return lines
}

func gameOverView(snap game.Snapshot) []string {
	lines := []string{theme.StyleError.Render("Game Over!")}
	if snap.Error != "" {
		lines = append(lines, theme.StyleError.Render(snap.Error))
	}
	lines = append(lines,
		"",
		"Your input:",
		theme.StyleHeader.Render(sequence.Join(snap.Entered, ", ")),
		fmt.Sprintf("Correct sequence (in %s order):", snap.Direction),
		theme.StyleHeader.Render(sequence.Join(snap.Expected, ", ")),
	)
	if snap.Mode == game.Lenient {
		lines = append(lines, "",
			theme.StyleDimmed.Render("In Normal mode, the sequence was checked after you entered all characters."))
	}
	return lines
}

func successView(snap game.Snapshot) []string {
	return []string{
		theme.StyleSuccess.Render("Congratulations!"),
		theme.StyleSuccess.Render(fmt.Sprintf("You remembered the sequence correctly in %s order!", snap.Direction)),
		"",
		"The sequence was:",
		theme.StyleHeader.Render(sequence.Join(snap.Target, ", ")),
	}
}

func tile(s sequence.Symbol, current bool) string {
	st := theme.StyleTile.Foreground(theme.SymbolColor(s.Kind().String()))
	if current {
		st = st.BorderForeground(theme.ColorAccent)
	}
	return st.Render(s.String())
}

func meter(frac float64) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(math.Round(frac * meterWidth))
	bar := lipgloss.NewStyle().Foreground(theme.ColorAccent).Render(strings.Repeat("█", filled)) +
		theme.StyleDimmed.Render(strings.Repeat("░", meterWidth-filled))
	return bar
}
