package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/shenzhen/internal/game"
	"github.com/jask/shenzhen/internal/keys"
)

const winMessage = "Solved! Press n to deal again"

func (a *App) renderFooter(width int) string {
	scope := game.Scope(a.machine.Selection())
	var bindings []key.Binding
	switch scope {
	case keys.ScopeNeutral, keys.ScopeHeld:
		bindings = append(bindings, a.keys.SlotHelpBindings()...)
	case keys.ScopeCount:
		bindings = append(bindings, key.NewBinding(key.WithKeys(), key.WithHelp("1-9", "depth")))
	}
	bindings = append(bindings, a.keys.HelpBindings(scope)...)
	bindings = append(bindings, a.keys.HelpBindings(keys.ScopeGlobal)...)

	bg := colorMantle
	keyStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Background(bg)
	descStyle := lipgloss.NewStyle().Foreground(colorMuted).Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+space+descStyle.Render(h.Desc))
	}
	return renderBar(footerStyle, width, strings.Join(parts, sep), bg)
}

// statusLine picks the single message the status bar shows. A notice from the
// last key wins over everything else.
func (a *App) statusLine() (string, lipgloss.Style) {
	if n := a.machine.Notice(); n != "" {
		return n, statusErrBarStyle
	}
	if a.status != "" {
		return a.status, statusErrBarStyle
	}
	if a.won {
		return winMessage, statusWinBarStyle
	}
	msg := fmt.Sprintf("Remaining: %d  %s  seed %d", a.machine.Remaining(), formatElapsed(a.elapsed()), a.seed)
	return msg, statusBarStyle
}

func (a *App) renderStatusBar(width int) string {
	msg, style := a.statusLine()
	return renderBar(style, width, msg, colorSurface0)
}

func renderBar(style lipgloss.Style, width int, text string, bg lipgloss.TerminalColor) string {
	width = max(1, width)
	line := strings.ReplaceAll(text, "\n", " ")
	line = ansi.Truncate(line, width, "")
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}
	return style.
		Background(bg).
		Width(width).
		MaxWidth(width).
		Render(line)
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}
