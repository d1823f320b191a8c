// Package tui provides the interactive calculator: a selection form followed
// by a live view that re-estimates as the workload, region and hardware change.
package tui

import "github.com/charmbracelet/lipgloss"

// Colour palette (ANSI 256).
const (
	ColorHeader   = lipgloss.Color("42")
	ColorBorder   = lipgloss.Color("240")
	ColorOK       = lipgloss.Color("42")
	ColorWarning  = lipgloss.Color("214")
	ColorCritical = lipgloss.Color("196")
	ColorMuted    = lipgloss.Color("245")
	ColorAccent   = lipgloss.Color("86")
	ColorSelected = lipgloss.Color("57")
)

// Layout constants.
const (
	defaultWidth   = 80
	defaultHeight  = 24
	borderPadding  = 2
	tableHeight    = 6
	labelWidth     = 12
	minInputLength = 16
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorHeader).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	LabelStyle   = lipgloss.NewStyle().Foreground(ColorMuted).Width(labelWidth)
	ValueStyle   = lipgloss.NewStyle().Bold(true)
	GramsStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	SubtleStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	HelpStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	StatusStyle  = lipgloss.NewStyle().Foreground(ColorOK)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorWarning)
	CursorMarker = lipgloss.NewStyle().Foreground(ColorAccent).Render("▌")

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(ColorSelected)
)

// IntensityColor maps a grid intensity level to a colour.
func IntensityColor(level string) lipgloss.Color {
	switch level {
	case "low":
		return ColorOK
	case "medium":
		return ColorWarning
	case "high":
		return ColorCritical
	default:
		return ColorMuted
	}
}
