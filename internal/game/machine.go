package game

import (
	"log/slog"

	"github.com/jask/shenzhen/internal/keys"
	"github.com/jask/shenzhen/internal/solitaire"
)

// Event reports what a key press did.
type Event int

const (
	EventNone Event = iota
	EventSelected
	EventCancelled
	EventMoved
	EventCollected
	EventRejected
)

func (e Event) String() string {
	switch e {
	case EventSelected:
		return "selected"
	case EventCancelled:
		return "cancelled"
	case EventMoved:
		return "moved"
	case EventCollected:
		return "collected"
	case EventRejected:
		return "rejected"
	}
	return "none"
}

var dragonByAction = map[keys.Action]solitaire.DragonColor{
	keys.ActionDragonGreen: solitaire.Green,
	keys.ActionDragonWhite: solitaire.White,
	keys.ActionDragonRed:   solitaire.Red,
}

// Machine is the selection state machine. It is not safe for concurrent use;
// the UI loop owns it.
type Machine struct {
	engine Engine
	keys   *keys.Registry
	mapper Mapper
	sel    Selection
	notice string
	log    *slog.Logger
}

func NewMachine(e Engine, r *keys.Registry, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Machine{
		engine: e,
		keys:   r,
		mapper: NewMapper(r),
		sel:    Neutral{},
		log:    log,
	}
}

func (m *Machine) Selection() Selection { return m.sel }
func (m *Machine) Notice() string       { return m.notice }
func (m *Machine) Remaining() int       { return m.engine.Remaining() }

// Reset swaps in a new engine and drops any selection and notice.
func (m *Machine) Reset(e Engine) {
	m.engine = e
	m.sel = Neutral{}
	m.notice = ""
}

// HandleKey applies one key press. The notice is always cleared first.
func (m *Machine) HandleKey(key string) Event {
	m.notice = ""
	var ev Event
	switch sel := m.sel.(type) {
	case Neutral:
		ev = m.fromNeutral(key)
	case CollectingDragon:
		ev = m.fromCollectingDragon(key)
	case PartialStack:
		ev = m.fromPartialStack(sel, key)
	case Held:
		ev = m.fromHeld(sel, key)
	}
	if ev != EventNone {
		m.log.Debug("key handled", "key", key, "event", ev.String(), "selection", describe(m.sel))
	}
	return ev
}

func (m *Machine) fromNeutral(key string) Event {
	if slot, err := m.mapper.MapKey(key); err == nil {
		if slot.Kind == solitaire.KindFreeCell {
			m.sel = Held{From: solitaire.FreeCellAt(slot.Index)}
		} else {
			m.sel = PartialStack{Tray: slot.Index}
		}
		return EventSelected
	}
	if b := m.keys.LookupOnly(key, keys.ScopeNeutral); b != nil && b.Action == keys.ActionCollectDragon {
		m.sel = CollectingDragon{}
		return EventSelected
	}
	return EventNone
}

func (m *Machine) fromCollectingDragon(key string) Event {
	b := m.keys.LookupOnly(key, keys.ScopeDragon)
	if b == nil {
		return EventNone
	}
	if b.Action == keys.ActionCancel {
		m.sel = Neutral{}
		return EventCancelled
	}
	color, ok := dragonByAction[b.Action]
	if !ok {
		return EventNone
	}
	if err := m.CollectDragon(color); err != nil {
		m.reject(err)
		return EventRejected
	}
	m.sel = Neutral{}
	m.log.Info("dragons collected", "color", color.String(), "remaining", m.engine.Remaining())
	return EventCollected
}

// CollectDragon asks the engine to collect color. The board is simplified
// after a successful collection since freed cards may now complete.
func (m *Machine) CollectDragon(color solitaire.DragonColor) error {
	if !m.engine.CollectDragon(color) {
		return ErrDragonCollectionFailed
	}
	m.engine.Simplify()
	return nil
}

func (m *Machine) fromPartialStack(sel PartialStack, key string) Event {
	if b := m.keys.LookupOnly(key, keys.ScopeCount); b != nil && b.Action == keys.ActionCancel {
		m.sel = Neutral{}
		return EventCancelled
	}
	depth, ok := parseDigit(key)
	if !ok {
		return EventNone
	}
	if err := ValidateRun(m.engine, sel.Tray, depth); err != nil {
		m.reject(err)
		if NoticeFor(err) == "" {
			return EventNone
		}
		return EventRejected
	}
	m.sel = Held{From: solitaire.TrayAt(sel.Tray, depth)}
	return EventSelected
}

func (m *Machine) fromHeld(sel Held, key string) Event {
	if b := m.keys.LookupOnly(key, keys.ScopeHeld); b != nil && b.Action == keys.ActionCancel {
		m.sel = Neutral{}
		return EventCancelled
	}
	to, err := m.mapper.MapKey(key)
	if err != nil {
		return EventNone
	}
	// The selection is dropped whether or not the move lands.
	m.sel = Neutral{}
	if err := Execute(m.engine, sel.From, to); err != nil {
		m.reject(err)
		return EventRejected
	}
	m.log.Info("move", "from", sel.From.String(), "to", to.String(), "remaining", m.engine.Remaining())
	return EventMoved
}

func (m *Machine) reject(err error) {
	m.notice = NoticeFor(err)
	if m.notice != "" {
		m.log.Debug("rejected", "err", err)
	}
}

func parseDigit(key string) (int, bool) {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '0'), true
}
