package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#00BFFF")
	colorAccent  = lipgloss.Color("#FFD700")
	colorMuted   = lipgloss.Color("#636363")
	colorText    = lipgloss.Color("#EEEEEE")
	colorSurface = lipgloss.Color("#1E1E2E")
)

var (
	styleMarker = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Underline(true)

	styleMarkerActive = lipgloss.NewStyle().
				Foreground(colorSurface).
				Background(colorAccent).
				Bold(true)

	styleHeading = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	styleCode = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleTooltip = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Foreground(colorText).
			Padding(0, 1)

	styleTooltipLoading = styleTooltip.
				BorderForeground(colorMuted).
				Italic(true)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted)
)
