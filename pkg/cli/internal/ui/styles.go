package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions
var (
	// Colors
	primaryColor   = lipgloss.Color("#3b82f6")
	secondaryColor = lipgloss.Color("#64748b")
	successColor   = lipgloss.Color("#10b981")
	warningColor   = lipgloss.Color("#f59e0b")
	errorColor     = lipgloss.Color("#ef4444")
	mutedColor     = lipgloss.Color("#94a3b8")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	selectedStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(mutedColor)

	activeTabStyle = tabStyle.
			Foreground(primaryColor).
			Bold(true).
			Underline(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

// Success formats a success line
func Success(format string, args ...any) string {
	return successStyle.Render("✓ ") + fmt.Sprintf(format, args...)
}

// Warning formats a warning line
func Warning(format string, args ...any) string {
	return warningStyle.Render("! ") + fmt.Sprintf(format, args...)
}

// Error formats an error line
func Error(format string, args ...any) string {
	return errorStyle.Render("✗ ") + fmt.Sprintf(format, args...)
}

// Stat is one row of a summary box
type Stat struct {
	Label string
	Value string
}

// Summary renders a titled box of label/value rows followed by an
// optional list of items such as written files.
func Summary(title string, stats []Stat, items []string) string {
	width := 0
	for _, s := range stats {
		if len(s.Label) > width {
			width = len(s.Label)
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, s := range stats {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%-*s", width, s.Label)))
		b.WriteString("  ")
		b.WriteString(s.Value)
		b.WriteString("\n")
	}
	if len(items) > 0 {
		b.WriteString("\n")
		for _, it := range items {
			b.WriteString(mutedStyle.Render("  • "))
			b.WriteString(it)
			b.WriteString("\n")
		}
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
