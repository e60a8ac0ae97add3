package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/shenzhen/internal/solitaire"
)

// Catppuccin Mocha palette, https://catppuccin.com/palette
const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
)

// Semantic aliases.
const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorMuted   = colorSubtext0
	colorBorder  = colorSurface2
)

// PaletteColors returns every palette color the board uses.
func PaletteColors() []lipgloss.Color {
	return []lipgloss.Color{
		colorPink, colorMauve, colorRed, colorPeach, colorYellow,
		colorGreen, colorTeal, colorBlue, colorLavender,
		colorText, colorSubtext0, colorOverlay1,
		colorSurface2, colorSurface1, colorSurface0,
		colorBase, colorMantle,
	}
}

// cardColor picks the foreground for a card face. Suit letters follow the
// physical deck: green bamboo, black characters, red coins.
func cardColor(c solitaire.Card) lipgloss.Color {
	switch c.Kind {
	case solitaire.KindFlower:
		return colorMauve
	case solitaire.KindDragon:
		return dragonColor(c.Dragon)
	}
	switch c.Suit {
	case solitaire.Bamboo:
		return colorGreen
	case solitaire.Coin:
		return colorRed
	}
	return colorText
}

func dragonColor(d solitaire.DragonColor) lipgloss.Color {
	switch d {
	case solitaire.Green:
		return colorTeal
	case solitaire.Red:
		return colorPeach
	}
	return colorYellow
}
