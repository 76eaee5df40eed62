// Package ui renders bootstrap progress and the closing summary. All
// pipeline state comes in through core types; nothing here touches the
// filesystem.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thedotmack/memsetup/internal/core"
)

// Color palette.
var (
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#A78BFA") // Light purple
	colorSuccess   = lipgloss.Color("#10B981") // Green
	colorDanger    = lipgloss.Color("#EF4444") // Red
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Amber
)

// Shared styles.
var (
	// Title bar: "memsetup  claude-mem bootstrap"
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1)

	titleHintStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	stepNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D1D5DB"))

	activeStepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	pendingStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)
)

// outcomeGlyph returns the one-character status marker for a finished step.
func outcomeGlyph(o core.Outcome) string {
	switch o {
	case core.OutcomeOK:
		return successStyle.Render("✓")
	case core.OutcomeAlreadySatisfied:
		return mutedStyle.Render("✓")
	case core.OutcomeSkipped:
		return mutedStyle.Render("-")
	case core.OutcomeWarning:
		return warningStyle.Render("!")
	case core.OutcomeFailed:
		return errorStyle.Render("✗")
	}
	return " "
}

// plainGlyph is the unstyled counterpart used when stdout is not a TTY.
func plainGlyph(o core.Outcome) string {
	switch o {
	case core.OutcomeOK, core.OutcomeAlreadySatisfied:
		return "ok"
	case core.OutcomeSkipped:
		return "skip"
	case core.OutcomeWarning:
		return "warn"
	case core.OutcomeFailed:
		return "FAIL"
	}
	return "?"
}
