// Package theme provides the Lip Gloss color palette and reusable styles
// for the recall TUI. It is a leaf package with no internal imports to
// avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Direction colors.
var (
	ColorForward = lipgloss.Color("#0096ff")
	ColorReverse = lipgloss.Color("#ff6464")
)

// Mode colors.
var (
	ColorLenient = lipgloss.Color("#22c55e")
	ColorStrict  = lipgloss.Color("#d97706")
)

// Outcome colors.
var (
	ColorSuccess = lipgloss.Color("#16a34a")
	ColorFailure = lipgloss.Color("#dc2626")
)

// Symbol colors.
var (
	ColorDigit  = lipgloss.Color("#67e8f9")
	ColorLetter = lipgloss.Color("#a855f7")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorAccent  = lipgloss.Color("#7c3aed")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorDefault = lipgloss.Color("#9ca3af")
)

// DirectionColor returns the color for a direction name ("forward" or
// "reverse").
func DirectionColor(dir string) lipgloss.Color {
	switch dir {
	case "forward":
		return ColorForward
	case "reverse":
		return ColorReverse
	default:
		return ColorDefault
	}
}

// ModeColor returns the color for a mode name.
func ModeColor(mode string) lipgloss.Color {
	switch mode {
	case "lenient":
		return ColorLenient
	case "strict":
		return ColorStrict
	default:
		return ColorDefault
	}
}

// SymbolColor picks a color by symbol kind ("digit" or "letter").
func SymbolColor(kind string) lipgloss.Color {
	switch kind {
	case "digit":
		return ColorDigit
	case "letter":
		return ColorLetter
	default:
		return ColorDefault
	}
}

// Reusable styles.
var (
	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleError = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorFailure)

	StyleSuccess = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	// StyleTile frames a single symbol on the board.
	StyleTile = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)
)

// Badge renders text in the given color wrapped in brackets.
func Badge(text string, color lipgloss.Color) string {
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render("[" + text + "]")
}
