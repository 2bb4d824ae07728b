// Package help renders the game instructions overlay from Markdown.
package help

import (
	"log"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/recall-tui/recall/internal/theme"
)

// Instructions is the Markdown shown in the overlay.
const Instructions = `# Game Instructions

1. Remember the sequence of numbers and letters shown on screen
2. Enter them in the required order when prompted
3. Use **Backspace** or **Delete** to remove the last entry if you make a mistake
4. Be quick - you need to remember and enter the sequence correctly!

The required order is picked at random each round: **forward** or **reverse**.

## Modes

- **Normal**: enter the entire sequence, errors are checked at the end
- **Strict**: the game ends immediately if you make a mistake

## Keys

| Key | Action |
|---|---|
| enter / space | start a new game |
| 0-9, A-Z | enter a symbol |
| backspace / delete | remove the last entry |
| tab | switch Normal / Strict |
| ? | toggle this help |
| ctrl+r | your record |
| ctrl+l | debug log |
| ctrl+c | quit |
`

// Model caches the rendered instructions for the last width.
type Model struct {
	width    int
	rendered string
}

// New creates an empty help model.
func New() Model {
	return Model{}
}

// View renders the help overlay. Rendering is redone only when the width
// changes.
func (m *Model) View(width int) string {
	innerW := width - 8
	if innerW < 30 {
		innerW = 30
	}
	if m.rendered == "" || m.width != innerW {
		m.width = innerW
		m.rendered = render(innerW)
	}

	footer := theme.StyleDimmed.Render("esc/?:close")
	content := lipgloss.JoinVertical(lipgloss.Left, m.rendered, footer)

	return lipgloss.NewStyle().
		Width(innerW+4).
		Padding(0, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}

func render(wrap int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		log.Printf("help: creating renderer: %v", err)
		return Instructions
	}
	out, err := r.Render(Instructions)
	if err != nil {
		log.Printf("help: rendering instructions: %v", err)
		return Instructions
	}
	return out
}
