// Package style holds the colors and styles of moopad's terminal output
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	StageStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	ActionNameStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Width(12)

	NormalStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	CommandStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	// OutputStyle frames captured stdout/stderr
	OutputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(BorderColor).
			PaddingLeft(1)
)

// Outcome indicators
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	PendingIndicator = MutedStyle.Render("○")
)

// Indent pads every line of s by level*2 spaces
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}

// Bold renders s in bold
func Bold(s string) string {
	return lipgloss.NewStyle().Bold(true).Render(s)
}
