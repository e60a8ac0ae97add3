package game

import (
	"fmt"

	"github.com/jask/shenzhen/internal/keys"
	"github.com/jask/shenzhen/internal/solitaire"
)

// Selection is one of Neutral, CollectingDragon, PartialStack or Held.
type Selection interface {
	selection()
}

// Neutral means nothing is selected.
type Neutral struct{}

// CollectingDragon waits for a dragon color.
type CollectingDragon struct{}

// PartialStack waits for the depth to pick up from Tray.
type PartialStack struct {
	Tray int
}

// Held carries the picked-up card or run until a destination is chosen.
type Held struct {
	From solitaire.Location
}

func (Neutral) selection()          {}
func (CollectingDragon) selection() {}
func (PartialStack) selection()     {}
func (Held) selection()             {}

// Scope returns the key scope that is active while sel is current.
func Scope(sel Selection) string {
	switch sel.(type) {
	case CollectingDragon:
		return keys.ScopeDragon
	case PartialStack:
		return keys.ScopeCount
	case Held:
		return keys.ScopeHeld
	}
	return keys.ScopeNeutral
}

func describe(sel Selection) string {
	switch s := sel.(type) {
	case CollectingDragon:
		return "collecting dragon"
	case PartialStack:
		return fmt.Sprintf("choosing depth on %s", solitaire.Tray(s.Tray))
	case Held:
		return "holding " + s.From.String()
	}
	return "neutral"
}
