package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status indicators
var (
	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusDiverged = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")).
			Blink(true)

	// Damage bar colors, intact to heavily cracked
	barIntact  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	barPartial = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	barHeavy   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// ProgressBar renders a fixed-width bar filled to the given fraction,
// shifting green to red as the fraction grows.
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	if fraction > 0.6 {
		return barHeavy.Render(bar)
	} else if fraction > 0.2 {
		return barPartial.Render(bar)
	}
	return barIntact.Render(bar)
}
