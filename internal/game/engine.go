package game

import "github.com/jask/shenzhen/internal/solitaire"

// Engine is the part of the card engine the selection layer relies on.
// *solitaire.Board satisfies it.
type Engine interface {
	Len(s solitaire.Slot) int
	// Get returns the card at 0-based depth from the bottom of s.
	Get(s solitaire.Slot, depth int) (solitaire.Card, bool)
	CanStackOnto(upper, lower solitaire.Card) bool
	Appendable(s solitaire.Slot, c solitaire.Card) bool
	Pop(s solitaire.Slot) (solitaire.Card, bool)
	Push(s solitaire.Slot, c solitaire.Card)
	Simplify()
	CollectDragon(d solitaire.DragonColor) bool
	Remaining() int
}

var _ Engine = (*solitaire.Board)(nil)
