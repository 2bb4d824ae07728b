// Package dashboard renders the player's record: a summary row and a
// breakdown table by mode and direction.
package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/recall-tui/recall/internal/stats"
	"github.com/recall-tui/recall/internal/theme"
)

// Model holds the dashboard state.
type Model struct {
	Width int
	stats *stats.Stats
}

// New creates a dashboard model.
func New() Model {
	return Model{}
}

// SetStats replaces the stats shown. The dashboard keeps the pointer, so
// callers pass a copy.
func (m *Model) SetStats(st *stats.Stats) {
	m.stats = st
}

// View renders the summary row, the breakdown table and best times.
func (m Model) View() string {
	width := m.Width
	if width < 40 {
		width = 40
	}

	title := theme.StyleHeader.Render(" RECORD ")
	if m.stats == nil {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			theme.StyleDimmed.Render("  Stats are disabled."),
		)
	}

	sections := []string{
		title,
		m.renderSummaryRow(width),
		m.renderBreakdown(width),
		m.renderBestTimes(),
		theme.StyleDimmed.Render("esc:close"),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderSummaryRow(width int) string {
	st := m.stats
	statStyle := lipgloss.NewStyle().Padding(0, 1)

	cells := []string{
		statStyle.Foreground(theme.ColorBright).Render(
			fmt.Sprintf("Played: %d", st.RoundsPlayed)),
		statStyle.Foreground(theme.ColorSuccess).Render(
			fmt.Sprintf("Won: %d", st.Successes)),
		statStyle.Foreground(theme.ColorFailure).Render(
			fmt.Sprintf("Lost: %d", st.Failures)),
		statStyle.Foreground(theme.ColorAccent).Render(
			fmt.Sprintf("Streak: %d", st.CurrentStreak)),
		statStyle.Foreground(theme.ColorWarning).Render(
			fmt.Sprintf("Best: %d", st.BestStreak)),
		statStyle.Foreground(theme.ColorLenient).Render(
			fmt.Sprintf("Rate: %.0f%%", st.SuccessRate()*100)),
	}

	content := strings.Join(cells, lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | "))

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}

func (m Model) renderBreakdown(width int) string {
	const (
		colName   = 10
		colPlayed = 8
		colWon    = 8
		colRate   = 22
	)
	dimStyle := lipgloss.NewStyle().Foreground(theme.ColorDimmed)

	header := fmt.Sprintf("  %-*s %*s %*s  %-*s", colName, "", colPlayed, "Played", colWon, "Won", colRate, "Success")
	lines := []string{
		dimStyle.Render(header),
		dimStyle.Render("  " + strings.Repeat("─", min(width-4, colName+colPlayed+colWon+colRate+4))),
	}

	rows := []struct {
		name  string
		tally stats.Tally
		color lipgloss.Color
	}{
		{"Normal", m.stats.PerMode["lenient"], theme.ModeColor("lenient")},
		{"Strict", m.stats.PerMode["strict"], theme.ModeColor("strict")},
		{"Forward", m.stats.PerDirection["forward"], theme.DirectionColor("forward")},
		{"Reverse", m.stats.PerDirection["reverse"], theme.DirectionColor("reverse")},
	}
	for _, r := range rows {
		name := lipgloss.NewStyle().Foreground(r.color).Width(colName).Render(r.name)
		line := fmt.Sprintf("  %s %*d %*d  %s",
			name, colPlayed, r.tally.Played, colWon, r.tally.Successes,
			renderRateBar(r.tally.Rate(), colRate))
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderBestTimes() string {
	if len(m.stats.BestInputMillis) == 0 {
		return theme.StyleDimmed.Render("  No winning times yet")
	}
	keys := make([]string, 0, len(m.stats.BestInputMillis))
	for k := range m.stats.BestInputMillis {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		d := time.Duration(m.stats.BestInputMillis[k]) * time.Millisecond
		parts = append(parts, fmt.Sprintf("%s symbols: %s", k, formatElapsed(d)))
	}
	return "  Fastest: " + strings.Join(parts, "  ")
}

// renderRateBar draws a small progress bar for a success ratio.
func renderRateBar(rate float64, barWidth int) string {
	labelWidth := 5
	fillWidth := barWidth - labelWidth
	if fillWidth < 3 {
		fillWidth = 3
	}

	filled := max(0, min(int(rate*float64(fillWidth)), fillWidth))
	empty := fillWidth - filled

	bar := lipgloss.NewStyle().Foreground(theme.ColorSuccess).Render(strings.Repeat("█", filled))
	bar += lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(strings.Repeat("░", empty))
	return bar + fmt.Sprintf(" %3.0f%%", rate*100)
}

// formatElapsed renders a duration as a compact string (e.g. "2.4s", "1m05s").
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}
