package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrymomot/contactform/svc/contactform"
)

var (
	colorAccent  = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	colorDim     = lipgloss.AdaptiveColor{Light: "240", Dark: "245"}
	colorSuccess = lipgloss.AdaptiveColor{Light: "2", Dark: "10"}
	colorWarning = lipgloss.AdaptiveColor{Light: "208", Dark: "214"}
	colorError   = lipgloss.AdaptiveColor{Light: "1", Dark: "9"}

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	dimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	bannerStyle  = lipgloss.NewStyle().Foreground(colorError).Border(lipgloss.RoundedBorder()).BorderForeground(colorError).Padding(0, 1)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Border(lipgloss.RoundedBorder()).BorderForeground(colorSuccess).Padding(1, 2)
)

// fieldBorder returns the input frame for a feedback style; focus wins over neutral.
func fieldBorder(style contactform.Style, focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	switch {
	case style == contactform.StyleError:
		return s.BorderForeground(colorError)
	case style == contactform.StyleSuccess:
		return s.BorderForeground(colorSuccess)
	case focused:
		return s.BorderForeground(colorAccent)
	}
	return s.BorderForeground(colorDim)
}

// counterStyle colours the message counter by level.
func counterStyle(level contactform.Level) lipgloss.Style {
	switch level {
	case contactform.LevelWarning:
		return lipgloss.NewStyle().Foreground(colorWarning)
	case contactform.LevelError:
		return lipgloss.NewStyle().Foreground(colorError)
	}
	return dimStyle
}

// buttonStyle renders the submit button; focused is highlighted.
func buttonStyle(focused, disabled bool) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	switch {
	case disabled:
		return s.Foreground(colorDim).BorderForeground(colorDim)
	case focused:
		return s.Bold(true).Foreground(colorAccent).BorderForeground(colorAccent)
	}
	return s.BorderForeground(colorDim)
}
