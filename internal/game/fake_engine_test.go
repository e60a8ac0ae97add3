package game

import (
	"slices"

	"github.com/jask/shenzhen/internal/solitaire"
)

// fakeEngine stacks by rank alone (any suit, one lower) and collects only the
// dragon colors listed in collectable.
type fakeEngine struct {
	cells       [solitaire.FreeCells]*solitaire.Card
	trays       [solitaire.Trays][]solitaire.Card
	collectable map[solitaire.DragonColor]bool
	collected   []solitaire.DragonColor
	simplified  int
	popBudget   int // <0 means unlimited
}

func newFakeEngine(trays ...[]solitaire.Card) *fakeEngine {
	f := &fakeEngine{collectable: map[solitaire.DragonColor]bool{}, popBudget: -1}
	for i, t := range trays {
		f.trays[i] = slices.Clone(t)
	}
	return f
}

func (f *fakeEngine) Len(s solitaire.Slot) int {
	if s.Kind == solitaire.KindFreeCell {
		if f.cells[s.Index] != nil {
			return 1
		}
		return 0
	}
	return len(f.trays[s.Index])
}

func (f *fakeEngine) Get(s solitaire.Slot, depth int) (solitaire.Card, bool) {
	if s.Kind == solitaire.KindFreeCell {
		if depth != 0 || f.cells[s.Index] == nil {
			return solitaire.Card{}, false
		}
		return *f.cells[s.Index], true
	}
	t := f.trays[s.Index]
	if depth < 0 || depth >= len(t) {
		return solitaire.Card{}, false
	}
	return t[depth], true
}

func (f *fakeEngine) CanStackOnto(upper, lower solitaire.Card) bool {
	return upper.IsNumber() && lower.IsNumber() && upper.Rank+1 == lower.Rank
}

func (f *fakeEngine) Appendable(s solitaire.Slot, c solitaire.Card) bool {
	if s.Kind == solitaire.KindFreeCell {
		return f.cells[s.Index] == nil
	}
	t := f.trays[s.Index]
	if len(t) == 0 {
		return true
	}
	return f.CanStackOnto(c, t[len(t)-1])
}

func (f *fakeEngine) Pop(s solitaire.Slot) (solitaire.Card, bool) {
	if f.popBudget == 0 {
		return solitaire.Card{}, false
	}
	if f.popBudget > 0 {
		f.popBudget--
	}
	if s.Kind == solitaire.KindFreeCell {
		c := f.cells[s.Index]
		if c == nil {
			return solitaire.Card{}, false
		}
		f.cells[s.Index] = nil
		return *c, true
	}
	t := f.trays[s.Index]
	if len(t) == 0 {
		return solitaire.Card{}, false
	}
	f.trays[s.Index] = t[:len(t)-1]
	return t[len(t)-1], true
}

func (f *fakeEngine) Push(s solitaire.Slot, c solitaire.Card) {
	if s.Kind == solitaire.KindFreeCell {
		f.cells[s.Index] = &c
		return
	}
	f.trays[s.Index] = append(f.trays[s.Index], c)
}

func (f *fakeEngine) Simplify() { f.simplified++ }

func (f *fakeEngine) CollectDragon(d solitaire.DragonColor) bool {
	if !f.collectable[d] {
		return false
	}
	f.collected = append(f.collected, d)
	return true
}

func (f *fakeEngine) Remaining() int {
	n := 0
	for _, t := range f.trays {
		n += len(t)
	}
	for _, c := range f.cells {
		if c != nil {
			n++
		}
	}
	return n
}

// snapshot copies the slot contents for before/after comparisons.
type snapshot struct {
	cells [solitaire.FreeCells]string
	trays [solitaire.Trays][]solitaire.Card
}

func (f *fakeEngine) snapshot() snapshot {
	var s snapshot
	for i, c := range f.cells {
		if c != nil {
			s.cells[i] = c.String()
		}
	}
	for i, t := range f.trays {
		s.trays[i] = slices.Clone(t)
	}
	return s
}
