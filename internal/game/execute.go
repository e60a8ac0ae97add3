package game

import (
	"fmt"
	"slices"

	"github.com/jask/shenzhen/internal/solitaire"
)

// Execute moves the card or run at from onto to. Nothing is mutated unless
// the move is legal. A legal move is followed by the engine's Simplify.
func Execute(e Engine, from solitaire.Location, to solitaire.Slot) error {
	base, count, err := resolveSource(e, from)
	if err != nil {
		return err
	}
	if !to.Valid() || to == from.Slot {
		return fmt.Errorf("%w: %s onto %s", ErrIllegalDestination, base, to)
	}
	// Free cells hold a single card.
	if to.Kind == solitaire.KindFreeCell && count > 1 {
		return fmt.Errorf("%w: %d cards onto %s", ErrIllegalDestination, count, to)
	}
	if !e.Appendable(to, base) {
		return fmt.Errorf("%w: %s onto %s", ErrIllegalDestination, base, to)
	}

	cards := make([]solitaire.Card, 0, count)
	for range count {
		c, ok := e.Pop(from.Slot)
		if !ok {
			restore(e, from.Slot, cards)
			return fmt.Errorf("%w: %s emptied after %d of %d cards", ErrEngine, from.Slot, len(cards), count)
		}
		cards = append(cards, c)
	}
	slices.Reverse(cards)
	for _, c := range cards {
		e.Push(to, c)
	}
	e.Simplify()
	return nil
}

// resolveSource returns the base card of the selection and how many cards
// move with it.
func resolveSource(e Engine, from solitaire.Location) (solitaire.Card, int, error) {
	if !from.Slot.Valid() {
		return solitaire.Card{}, 0, fmt.Errorf("%w: %s", ErrEmptySource, from)
	}
	switch from.Slot.Kind {
	case solitaire.KindFreeCell:
		c, ok := e.Get(from.Slot, 0)
		if !ok {
			return solitaire.Card{}, 0, fmt.Errorf("%w: %s is empty", ErrEmptySource, from.Slot)
		}
		return c, 1, nil
	default:
		n := e.Len(from.Slot)
		if from.Depth < 1 || from.Depth > n {
			return solitaire.Card{}, 0, fmt.Errorf("%w: %s holds %d cards", ErrEmptySource, from, n)
		}
		c, ok := e.Get(from.Slot, from.Depth-1)
		if !ok {
			return solitaire.Card{}, 0, fmt.Errorf("%w: %s", ErrEmptySource, from)
		}
		return c, n - from.Depth + 1, nil
	}
}

// restore pushes popped cards (top first) back onto s.
func restore(e Engine, s solitaire.Slot, popped []solitaire.Card) {
	for i := len(popped) - 1; i >= 0; i-- {
		e.Push(s, popped[i])
	}
}

// ValidateRun checks that the cards from 1-based depth to the top of tray
// form a stack. It returns ErrInvalidCount for a depth outside the column.
func ValidateRun(e Engine, tray, depth int) error {
	s := solitaire.Tray(tray)
	n := e.Len(s)
	if depth < 1 || depth > n {
		return fmt.Errorf("%w: depth %d of %d", ErrInvalidCount, depth, n)
	}
	for i := depth; i < n; i++ {
		upper, _ := e.Get(s, i)
		lower, _ := e.Get(s, i-1)
		if !e.CanStackOnto(upper, lower) {
			return fmt.Errorf("%w: %s on %s in %s", ErrIllegalRun, upper, lower, s)
		}
	}
	return nil
}
