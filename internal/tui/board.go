package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/shenzhen/internal/game"
	"github.com/jask/shenzhen/internal/keys"
	"github.com/jask/shenzhen/internal/solitaire"
)

const (
	boardRule  = "+--+--+--+-----+--+--+--+"
	boardWidth = len(boardRule)
	blankCard  = "  "
)

type boardView struct {
	board *solitaire.Board
	sel   game.Selection
	keys  *keys.Registry
}

func (v boardView) render() string {
	var sb strings.Builder
	sb.WriteString(v.labels(keys.CellActions))
	sb.WriteByte('\n')
	sb.WriteString(frameStyle.Render(boardRule))
	sb.WriteByte('\n')
	sb.WriteString(v.topRow())
	sb.WriteByte('\n')
	sb.WriteString(frameStyle.Render(boardRule))
	for row := range v.board.Height() {
		sb.WriteByte('\n')
		sb.WriteString(v.trayRow(row))
	}
	sb.WriteByte('\n')
	sb.WriteString(v.labels(keys.TrayActions))
	return sb.String()
}

// labels prints the first key bound to each slot action under its column.
func (v boardView) labels(actions []keys.Action) string {
	var sb strings.Builder
	for _, a := range actions {
		label := "  "
		if ks := v.keys.KeysFor(keys.ScopeSlots, a); len(ks) > 0 {
			label = ks[0]
		}
		sb.WriteByte(' ')
		sb.WriteString(labelStyle.Render(padCard(label)))
	}
	return sb.String()
}

func (v boardView) topRow() string {
	bar := frameStyle.Render("|")
	var sb strings.Builder
	for i := range solitaire.FreeCells {
		sb.WriteString(bar)
		sb.WriteString(v.cell(i))
	}
	sb.WriteString(bar)
	sb.WriteByte(' ')
	if v.board.Flower() {
		sb.WriteString(flowerStyle.Render("F L"))
	} else {
		sb.WriteString("   ")
	}
	sb.WriteByte(' ')
	for _, s := range solitaire.Suits {
		sb.WriteString(bar)
		pile := fmt.Sprintf("%s%d", s.Letter(), v.board.Out(s))
		sb.WriteString(lipgloss.NewStyle().Foreground(cardColor(solitaire.Number(s, 1))).Render(pile))
	}
	sb.WriteString(bar)
	return sb.String()
}

func (v boardView) cell(i int) string {
	cell := v.board.Cell(i)
	switch {
	case cell.Collected:
		return collectedStyle.Foreground(dragonColor(cell.Dragon)).Render("##")
	case cell.Card == nil:
		return v.cellStyle(i, lipgloss.NewStyle()).Render(blankCard)
	}
	return v.cellStyle(i, lipgloss.NewStyle().Foreground(cardColor(*cell.Card))).Render(cell.Card.String())
}

func (v boardView) cellStyle(i int, base lipgloss.Style) lipgloss.Style {
	switch sel := v.sel.(type) {
	case game.CollectingDragon:
		return base.Inherit(semiStyle)
	case game.Held:
		if sel.From.Slot == solitaire.FreeCell(i) {
			return selectedStyle
		}
	}
	return base
}

func (v boardView) trayRow(row int) string {
	var sb strings.Builder
	for t := range solitaire.Trays {
		sb.WriteByte(' ')
		c, ok := v.board.Get(solitaire.Tray(t), row)
		if !ok {
			sb.WriteString(blankCard)
			continue
		}
		sb.WriteString(v.trayStyle(t, row, c).Render(c.String()))
	}
	return sb.String()
}

func (v boardView) trayStyle(tray, row int, c solitaire.Card) lipgloss.Style {
	base := lipgloss.NewStyle().Foreground(cardColor(c))
	switch sel := v.sel.(type) {
	case game.PartialStack:
		if sel.Tray == tray {
			return base.Inherit(semiStyle)
		}
	case game.Held:
		// Depth is 1-based, so row Depth-1 is the base of the held run.
		if sel.From.Slot == solitaire.Tray(tray) && row >= sel.From.Depth-1 {
			return selectedStyle
		}
	}
	return base
}

func padCard(s string) string {
	if len(s) >= 2 {
		return s[:2]
	}
	return s + strings.Repeat(" ", 2-len(s))
}
