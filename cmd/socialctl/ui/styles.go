package ui

import "github.com/charmbracelet/lipgloss"

// Colors pick a light or dark variant from the terminal background.
var (
	accent = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#A8A2FF"}
	good   = lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#56D364"}
	warn   = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#E3B341"}
	bad    = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF7B72"}
	dim    = lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#8B949E"}
)

var (
	heading = lipgloss.NewStyle().Foreground(accent).Bold(true).Underline(true)
	done    = lipgloss.NewStyle().Foreground(good)
	muted   = lipgloss.NewStyle().Foreground(dim).Italic(true)
	waiting = lipgloss.NewStyle().Foreground(warn)
	failure = lipgloss.NewStyle().Foreground(bad).Bold(true)
)
