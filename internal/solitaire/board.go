package solitaire

import (
	"math/rand/v2"
	"slices"
)

// Cell is a free cell: empty, holding one card, or collected (a finished
// dragon group parked for the rest of the game).
type Cell struct {
	Card      *Card
	Collected bool
	Dragon    DragonColor
}

func (c Cell) Empty() bool { return c.Card == nil && !c.Collected }

// Board is the authoritative game state.
type Board struct {
	cells  [FreeCells]Cell
	flower bool
	out    [len(Suits)]uint8
	trays  [Trays][]Card
	seed   uint64
}

// NewRandom deals a shuffled board. The same seed always yields the same deal.
func NewRandom(seed uint64) *Board {
	cards := Deck()
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	b := &Board{seed: seed}
	for i, c := range cards {
		t := i % Trays
		b.trays[t] = append(b.trays[t], c)
	}
	b.Simplify()
	return b
}

// NewFromTrays builds a board with the given tray contents and empty cells.
// Simplify is not run, so fixtures keep exactly the cards they were given.
func NewFromTrays(trays [Trays][]Card) *Board {
	b := &Board{}
	for i := range trays {
		b.trays[i] = slices.Clone(trays[i])
	}
	return b
}

func (b *Board) Seed() uint64 { return b.seed }

// Cell returns a copy of free cell i.
func (b *Board) Cell(i int) Cell { return b.cells[i] }

// SetCell places c in free cell i. It is meant for building fixtures.
func (b *Board) SetCell(i int, c Card) {
	b.cells[i] = Cell{Card: &c}
}

// Flower reports whether the flower has been played.
func (b *Board) Flower() bool { return b.flower }

// Out returns the highest completed rank of suit s.
func (b *Board) Out(s Suit) uint8 { return b.out[s] }

// Len returns the number of cards in slot.
func (b *Board) Len(s Slot) int {
	switch s.Kind {
	case KindFreeCell:
		if b.cells[s.Index].Card != nil {
			return 1
		}
		return 0
	case KindTray:
		return len(b.trays[s.Index])
	}
	return 0
}

// Get returns the card at 0-based depth from the bottom of slot.
func (b *Board) Get(s Slot, depth int) (Card, bool) {
	switch s.Kind {
	case KindFreeCell:
		if depth != 0 || b.cells[s.Index].Card == nil {
			return Card{}, false
		}
		return *b.cells[s.Index].Card, true
	case KindTray:
		tray := b.trays[s.Index]
		if depth < 0 || depth >= len(tray) {
			return Card{}, false
		}
		return tray[depth], true
	}
	return Card{}, false
}

func (b *Board) top(s Slot) (Card, bool) {
	return b.Get(s, b.Len(s)-1)
}

// CanStackOnto reports whether upper may rest directly on lower.
func (b *Board) CanStackOnto(upper, lower Card) bool {
	return upper.CanStackOnto(lower)
}

// Appendable reports whether c may be placed on slot as it stands.
func (b *Board) Appendable(s Slot, c Card) bool {
	switch s.Kind {
	case KindFreeCell:
		return b.cells[s.Index].Empty()
	case KindTray:
		top, ok := b.top(s)
		if !ok {
			return true
		}
		return c.CanStackOnto(top)
	}
	return false
}

// Pop removes the top card of slot.
func (b *Board) Pop(s Slot) (Card, bool) {
	switch s.Kind {
	case KindFreeCell:
		cell := &b.cells[s.Index]
		if cell.Card == nil {
			return Card{}, false
		}
		c := *cell.Card
		cell.Card = nil
		return c, true
	case KindTray:
		tray := b.trays[s.Index]
		if len(tray) == 0 {
			return Card{}, false
		}
		c := tray[len(tray)-1]
		b.trays[s.Index] = tray[:len(tray)-1]
		return c, true
	}
	return Card{}, false
}

// Push appends c to slot. Callers check Appendable first.
func (b *Board) Push(s Slot, c Card) {
	switch s.Kind {
	case KindFreeCell:
		b.cells[s.Index] = Cell{Card: &c}
	case KindTray:
		b.trays[s.Index] = append(b.trays[s.Index], c)
	}
}

// Simplify moves every card that can no longer be useful on the table to its
// completion pile, repeating until nothing moves.
func (b *Board) Simplify() {
	for b.simplifyOnce() {
	}
}

func (b *Board) simplifyOnce() bool {
	for i := range b.trays {
		s := Tray(i)
		top, ok := b.top(s)
		if !ok {
			continue
		}
		if top.IsFlower() {
			b.Pop(s)
			b.flower = true
			return true
		}
		if b.autoComplete(top) {
			b.Pop(s)
			b.out[top.Suit] = top.Rank
			return true
		}
	}
	for i := range b.cells {
		c := b.cells[i].Card
		if c != nil && c.IsFlower() {
			b.cells[i].Card = nil
			b.flower = true
			return true
		}
		if c != nil && b.autoComplete(*c) {
			b.out[c.Suit] = c.Rank
			b.cells[i].Card = nil
			return true
		}
	}
	return false
}

func (b *Board) autoComplete(c Card) bool {
	if !c.IsNumber() || b.out[c.Suit]+1 != c.Rank {
		return false
	}
	if c.Rank <= 2 {
		return true
	}
	for _, s := range Suits {
		if s != c.Suit && b.out[s]+1 < c.Rank {
			return false
		}
	}
	return true
}

// CollectDragon gathers all four exposed dragons of color d into one free
// cell. It fails without touching the board when any dragon is buried or no
// cell can receive the group.
func (b *Board) CollectDragon(d DragonColor) bool {
	want := Dragon(d)
	var exposed []Slot
	target := -1
	for i, cell := range b.cells {
		if cell.Card != nil && *cell.Card == want {
			exposed = append(exposed, FreeCell(i))
			if target < 0 {
				target = i
			}
		}
	}
	for i := range b.trays {
		if top, ok := b.top(Tray(i)); ok && top == want {
			exposed = append(exposed, Tray(i))
		}
	}
	if len(exposed) != DragonsPerColor {
		return false
	}
	if target < 0 {
		for i, cell := range b.cells {
			if cell.Empty() {
				target = i
				break
			}
		}
	}
	if target < 0 {
		return false
	}
	for _, s := range exposed {
		b.Pop(s)
	}
	b.cells[target] = Cell{Collected: true, Dragon: d}
	return true
}

// Remaining counts cards still in play: tray cards and loose free-cell cards.
func (b *Board) Remaining() int {
	n := 0
	for i := range b.trays {
		n += len(b.trays[i])
	}
	for _, cell := range b.cells {
		if cell.Card != nil {
			n++
		}
	}
	return n
}

// Accounted counts every card the board knows about, in play or completed.
// It is DeckSize for any board dealt by NewRandom.
func (b *Board) Accounted() int {
	n := b.Remaining()
	for _, r := range b.out {
		n += int(r)
	}
	if b.flower {
		n++
	}
	for _, cell := range b.cells {
		if cell.Collected {
			n += DragonsPerColor
		}
	}
	return n
}

// Won reports whether every card has been completed.
func (b *Board) Won() bool { return b.Remaining() == 0 }

// Height returns the tallest tray length.
func (b *Board) Height() int {
	h := 0
	for i := range b.trays {
		h = max(h, len(b.trays[i]))
	}
	return h
}
