package utils

import "github.com/charmbracelet/lipgloss"

// ColourScheme maps UI roles to Catppuccin Mocha colours
type ColourScheme struct {
	Text      string
	Muted     string
	Accent    string
	Highlight string
	Success   string
	Warning   string
	Error     string
	Farewell  string
	Surface   string
}

// Colours is the scheme used by every view
var Colours = ColourScheme{
	Text:      "#cdd6f4",
	Muted:     "#7f849c",
	Accent:    "#89b4fa",
	Highlight: "#f9e2af",
	Success:   "#a6e3a1",
	Warning:   "#fab387",
	Error:     "#f38ba8",
	Farewell:  "#cba6f7",
	Surface:   "#313244",
}

// Fg returns a style with the given foreground colour.
func Fg(colour string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colour))
}
