package solitaire

import "fmt"

const (
	FreeCells       = 3
	Trays           = 8
	DeckSize        = 40
	DragonsPerColor = 4
)

// SlotKind separates free cells from tray columns.
type SlotKind uint8

const (
	KindFreeCell SlotKind = iota
	KindTray
)

// Slot addresses a free cell or a tray column.
type Slot struct {
	Kind  SlotKind
	Index int
}

func FreeCell(i int) Slot { return Slot{Kind: KindFreeCell, Index: i} }
func Tray(i int) Slot     { return Slot{Kind: KindTray, Index: i} }

// Valid reports whether the index is in range for the slot kind.
func (s Slot) Valid() bool {
	switch s.Kind {
	case KindFreeCell:
		return s.Index >= 0 && s.Index < FreeCells
	case KindTray:
		return s.Index >= 0 && s.Index < Trays
	}
	return false
}

func (s Slot) String() string {
	if s.Kind == KindFreeCell {
		return fmt.Sprintf("cell %c", 'a'+rune(s.Index))
	}
	return fmt.Sprintf("tray %d", s.Index+1)
}

// Location is an occupied position. For a tray, Depth is the 1-based position
// from the bottom: the card there and everything above it form the selection.
// Depth is unused for free cells.
type Location struct {
	Slot  Slot
	Depth int
}

func FreeCellAt(i int) Location { return Location{Slot: FreeCell(i)} }

func TrayAt(i, depth int) Location {
	return Location{Slot: Tray(i), Depth: depth}
}

func (l Location) String() string {
	if l.Slot.Kind == KindFreeCell {
		return l.Slot.String()
	}
	return fmt.Sprintf("%s depth %d", l.Slot, l.Depth)
}
