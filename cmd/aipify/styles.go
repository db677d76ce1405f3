package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aipify/aipify-local/internal/domain"
)

// styles holds the lipgloss styles for one theme.
type styles struct {
	Heading   lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Warn      lipgloss.Style
	Success   lipgloss.Style
}

func newStyles(theme domain.Theme) styles {
	var (
		accent  = lipgloss.Color("63")  // indigo
		user    = lipgloss.Color("39")  // blue
		muted   = lipgloss.Color("245") // gray
		errCol  = lipgloss.Color("203")
		warnCol = lipgloss.Color("214")
		okCol   = lipgloss.Color("78")
	)
	if theme == domain.ThemeLight {
		accent = lipgloss.Color("57")
		user = lipgloss.Color("25")
		muted = lipgloss.Color("243")
		errCol = lipgloss.Color("160")
		warnCol = lipgloss.Color("130")
		okCol = lipgloss.Color("28")
	}

	return styles{
		Heading:   lipgloss.NewStyle().Bold(true).Foreground(accent),
		User:      lipgloss.NewStyle().Bold(true).Foreground(user),
		Assistant: lipgloss.NewStyle().Foreground(accent),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(errCol),
		Warn:      lipgloss.NewStyle().Foreground(warnCol),
		Success:   lipgloss.NewStyle().Foreground(okCol),
	}
}
