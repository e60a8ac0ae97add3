package tui

import "github.com/charmbracelet/lipgloss"

var (
	frameStyle = lipgloss.NewStyle().Foreground(colorBorder)
	labelStyle = lipgloss.NewStyle().Foreground(colorOverlay1)

	// Selection highlights. Semi marks what a pending choice applies to,
	// selected marks what is in hand.
	semiStyle     = lipgloss.NewStyle().Background(colorSurface1)
	selectedStyle = lipgloss.NewStyle().Background(colorFocus).Foreground(colorBase).Bold(true)

	collectedStyle = lipgloss.NewStyle().Bold(true)
	flowerStyle    = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	statusErrBarStyle = lipgloss.NewStyle().
				Foreground(colorError).
				Background(colorSurface0).
				Bold(true)
	statusWinBarStyle = lipgloss.NewStyle().
				Foreground(colorYellow).
				Background(colorSurface0).
				Bold(true)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)
)
