package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/justestif/go-mood-journal/internal/mood"
)

var (
	colorPositive = lipgloss.Color("42")
	colorNegative = lipgloss.Color("203")
	colorNeutral  = lipgloss.Color("220")
	colorMuted    = lipgloss.Color("244")

	labelStyle = lipgloss.NewStyle().Foreground(colorMuted)
	linkStyle  = lipgloss.NewStyle().Underline(true)
)

func moodStyle(l mood.Label) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch l {
	case mood.Positive:
		return s.Foreground(colorPositive)
	case mood.Negative:
		return s.Foreground(colorNegative)
	default:
		return s.Foreground(colorNeutral)
	}
}
