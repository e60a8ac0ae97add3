package game

import (
	"slices"

	"github.com/jask/shenzhen/internal/keys"
	"github.com/jask/shenzhen/internal/solitaire"
)

// Mapper resolves slot selector keys to board slots.
type Mapper struct {
	keys *keys.Registry
}

func NewMapper(r *keys.Registry) Mapper {
	return Mapper{keys: r}
}

// MapKey returns the slot bound to key, or ErrNoMapping.
func (m Mapper) MapKey(key string) (solitaire.Slot, error) {
	b := m.keys.LookupOnly(key, keys.ScopeSlots)
	if b == nil {
		return solitaire.Slot{}, ErrNoMapping
	}
	if i := slices.Index(keys.CellActions, b.Action); i >= 0 {
		return solitaire.FreeCell(i), nil
	}
	if i := slices.Index(keys.TrayActions, b.Action); i >= 0 {
		return solitaire.Tray(i), nil
	}
	return solitaire.Slot{}, ErrNoMapping
}
