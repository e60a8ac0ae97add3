package solitaire

import "fmt"

// Suit identifies the three number suits.
type Suit uint8

const (
	Bamboo Suit = iota
	Characters
	Coin
)

// Suits lists the number suits in completion-pile order.
var Suits = [...]Suit{Bamboo, Characters, Coin}

func (s Suit) String() string {
	switch s {
	case Bamboo:
		return "bamboo"
	case Characters:
		return "characters"
	case Coin:
		return "coin"
	}
	return fmt.Sprintf("suit(%d)", uint8(s))
}

// Letter is the single-letter suit marker used in card glyphs.
func (s Suit) Letter() string {
	switch s {
	case Bamboo:
		return "G"
	case Characters:
		return "B"
	case Coin:
		return "R"
	}
	return "?"
}

// DragonColor identifies the three dragon groups.
type DragonColor uint8

const (
	Green DragonColor = iota
	White
	Red
)

// DragonColors lists every dragon color.
var DragonColors = [...]DragonColor{Green, White, Red}

func (d DragonColor) String() string {
	switch d {
	case Green:
		return "green"
	case White:
		return "white"
	case Red:
		return "red"
	}
	return fmt.Sprintf("dragon(%d)", uint8(d))
}

// Kind separates number cards from dragons and the flower.
type Kind uint8

const (
	KindNumber Kind = iota
	KindDragon
	KindFlower
)

// Card is an immutable card value. Suit and Rank are meaningful for number
// cards, Dragon for dragon cards.
type Card struct {
	Kind   Kind
	Suit   Suit
	Rank   uint8
	Dragon DragonColor
}

// Number returns the number card of suit s and rank 1..9.
func Number(s Suit, rank uint8) Card {
	return Card{Kind: KindNumber, Suit: s, Rank: rank}
}

// Dragon returns a dragon card of color d.
func Dragon(d DragonColor) Card {
	return Card{Kind: KindDragon, Dragon: d}
}

// Flower returns the flower card.
func Flower() Card {
	return Card{Kind: KindFlower}
}

func (c Card) IsNumber() bool { return c.Kind == KindNumber }
func (c Card) IsDragon() bool { return c.Kind == KindDragon }
func (c Card) IsFlower() bool { return c.Kind == KindFlower }

// CanStackOnto reports whether c may rest directly on lower inside a tray run.
func (c Card) CanStackOnto(lower Card) bool {
	if !c.IsNumber() || !lower.IsNumber() {
		return false
	}
	return c.Suit != lower.Suit && c.Rank+1 == lower.Rank
}

// String renders the two-cell glyph drawn on the board.
func (c Card) String() string {
	switch c.Kind {
	case KindNumber:
		return fmt.Sprintf("%s%d", c.Suit.Letter(), c.Rank)
	case KindDragon:
		switch c.Dragon {
		case Green:
			return "DG"
		case White:
			return "DW"
		case Red:
			return "DR"
		}
	case KindFlower:
		return "FL"
	}
	return "??"
}

// Deck returns all 40 cards in a fixed order.
func Deck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := uint8(1); r <= 9; r++ {
			cards = append(cards, Number(s, r))
		}
	}
	for _, d := range DragonColors {
		for range DragonsPerColor {
			cards = append(cards, Dragon(d))
		}
	}
	return append(cards, Flower())
}
