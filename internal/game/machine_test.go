package game

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/jask/shenzhen/internal/keys"
	"github.com/jask/shenzhen/internal/solitaire"
)

var (
	coin5    = solitaire.Number(solitaire.Coin, 5)
	bamboo6  = solitaire.Number(solitaire.Bamboo, 6)
	bamboo4  = solitaire.Number(solitaire.Bamboo, 4)
	coin3    = solitaire.Number(solitaire.Coin, 3)
	chars9   = solitaire.Number(solitaire.Characters, 9)
	greenDrg = solitaire.Dragon(solitaire.Green)
)

func newTestMachine(e Engine) *Machine {
	return NewMachine(e, keys.NewRegistry(), nil)
}

func press(m *Machine, ks ...string) Event {
	var ev Event
	for _, k := range ks {
		ev = m.HandleKey(k)
	}
	return ev
}

func TestMapKey(t *testing.T) {
	mp := NewMapper(keys.NewRegistry())

	for i, k := range []string{"a", "b", "c"} {
		got, err := mp.MapKey(k)
		if err != nil || got != solitaire.FreeCell(i) {
			t.Fatalf("MapKey(%q) = %v, %v; want %v", k, got, err, solitaire.FreeCell(i))
		}
	}
	for i, k := range []string{"1", "2", "3", "4", "5", "6", "7", "8"} {
		got, err := mp.MapKey(k)
		if err != nil || got != solitaire.Tray(i) {
			t.Fatalf("MapKey(%q) = %v, %v; want %v", k, got, err, solitaire.Tray(i))
		}
	}
	for _, k := range []string{"9", "0", "d", "esc", "q", "", "A"} {
		if _, err := mp.MapKey(k); !errors.Is(err, ErrNoMapping) {
			t.Fatalf("MapKey(%q) err = %v, want ErrNoMapping", k, err)
		}
	}
}

func TestScenarioPickTopCardThenDropOnFreeCell(t *testing.T) {
	f := newFakeEngine(nil, nil, []solitaire.Card{coin5})
	m := newTestMachine(f)

	if ev := press(m, "3"); ev != EventSelected {
		t.Fatalf("tray key event = %v, want selected", ev)
	}
	if got := m.Selection(); got != (PartialStack{Tray: 2}) {
		t.Fatalf("selection = %#v, want PartialStack{2}", got)
	}

	press(m, "1")
	if got := m.Selection(); got != (Held{From: solitaire.TrayAt(2, 1)}) {
		t.Fatalf("selection = %#v, want Held tray 3 depth 1", got)
	}
	if m.Notice() != "" {
		t.Fatalf("unexpected notice %q", m.Notice())
	}

	if ev := press(m, "a"); ev != EventMoved {
		t.Fatalf("drop event = %v, want moved", ev)
	}
	if _, ok := m.Selection().(Neutral); !ok {
		t.Fatalf("selection = %#v, want Neutral", m.Selection())
	}
	if f.Len(solitaire.Tray(2)) != 0 {
		t.Fatalf("tray 3 should be empty, has %d", f.Len(solitaire.Tray(2)))
	}
	if c, ok := f.Get(solitaire.FreeCell(0), 0); !ok || c != coin5 {
		t.Fatalf("cell a = %v, %v; want %v", c, ok, coin5)
	}
	if f.simplified != 1 {
		t.Fatalf("simplify calls = %d, want 1", f.simplified)
	}
}

func TestScenarioDragonCollectionFailureKeepsMode(t *testing.T) {
	f := newFakeEngine([]solitaire.Card{greenDrg})
	f.collectable[solitaire.Red] = true
	m := newTestMachine(f)
	before := f.snapshot()

	press(m, "d")
	if _, ok := m.Selection().(CollectingDragon); !ok {
		t.Fatalf("selection = %#v, want CollectingDragon", m.Selection())
	}
	if ev := press(m, "g"); ev != EventRejected {
		t.Fatalf("green event = %v, want rejected", ev)
	}
	if _, ok := m.Selection().(CollectingDragon); !ok {
		t.Fatalf("failed collection should stay in CollectingDragon, got %#v", m.Selection())
	}
	if m.Notice() != "Cannot collect dragon" {
		t.Fatalf("notice = %q", m.Notice())
	}
	if !reflect.DeepEqual(before, f.snapshot()) {
		t.Fatal("failed collection must not mutate slots")
	}

	if ev := press(m, "r"); ev != EventCollected {
		t.Fatalf("red event = %v, want collected", ev)
	}
	if _, ok := m.Selection().(Neutral); !ok {
		t.Fatalf("selection = %#v, want Neutral", m.Selection())
	}
	if m.Notice() != "" {
		t.Fatalf("notice should clear on retry, got %q", m.Notice())
	}
	if len(f.collected) != 1 || f.collected[0] != solitaire.Red {
		t.Fatalf("collected = %v", f.collected)
	}
	if f.simplified != 1 {
		t.Fatalf("simplify calls = %d, want 1", f.simplified)
	}
}

func TestCollectingDragonIgnoresOtherKeys(t *testing.T) {
	m := newTestMachine(newFakeEngine())
	press(m, "d")
	for _, k := range []string{"a", "1", "x", "d"} {
		if ev := m.HandleKey(k); ev != EventNone {
			t.Fatalf("key %q event = %v, want none", k, ev)
		}
		if _, ok := m.Selection().(CollectingDragon); !ok {
			t.Fatalf("key %q left CollectingDragon: %#v", k, m.Selection())
		}
	}
}

func TestPartialStackCountBounds(t *testing.T) {
	f := newFakeEngine([]solitaire.Card{bamboo6, coin5})
	m := newTestMachine(f)
	press(m, "1")

	for _, k := range []string{"0", "3", "9"} {
		if ev := m.HandleKey(k); ev != EventNone {
			t.Fatalf("count %q event = %v, want none", k, ev)
		}
		if m.Notice() != "" {
			t.Fatalf("count %q should not set a notice, got %q", k, m.Notice())
		}
		if got := m.Selection(); got != (PartialStack{Tray: 0}) {
			t.Fatalf("count %q changed selection to %#v", k, got)
		}
	}
	if ev := m.HandleKey("x"); ev != EventNone {
		t.Fatalf("non-digit event = %v, want none", ev)
	}
}

func TestPartialStackRejectsBrokenRunAndAllowsRetry(t *testing.T) {
	// chars9 / bamboo6 is not a run; bamboo6 / coin5 / bamboo4 is.
	f := newFakeEngine([]solitaire.Card{chars9, bamboo6, coin5, bamboo4})
	m := newTestMachine(f)
	press(m, "1")

	if ev := press(m, "1"); ev != EventRejected {
		t.Fatalf("depth 1 event = %v, want rejected", ev)
	}
	if m.Notice() != "Not a valid stack" {
		t.Fatalf("notice = %q", m.Notice())
	}
	if got := m.Selection(); got != (PartialStack{Tray: 0}) {
		t.Fatalf("selection = %#v, want to stay in PartialStack", got)
	}

	press(m, "2")
	if got := m.Selection(); got != (Held{From: solitaire.TrayAt(0, 2)}) {
		t.Fatalf("selection = %#v, want Held depth 2", got)
	}
	if m.Notice() != "" {
		t.Fatalf("notice should be cleared, got %q", m.Notice())
	}
}

func TestCancelReturnsToNeutralWithoutTouchingBoard(t *testing.T) {
	setups := map[string][]string{
		"collecting dragon": {"d"},
		"partial stack":     {"1"},
		"held from tray":    {"1", "2"},
		"held from cell":    {"a"},
	}
	for name, keysPressed := range setups {
		f := newFakeEngine([]solitaire.Card{bamboo6, coin5})
		m := newTestMachine(f)
		before := f.snapshot()
		press(m, keysPressed...)
		if _, ok := m.Selection().(Neutral); ok {
			t.Fatalf("%s: setup did not leave Neutral", name)
		}
		if ev := press(m, "esc"); ev != EventCancelled {
			t.Fatalf("%s: esc event = %v, want cancelled", name, ev)
		}
		if _, ok := m.Selection().(Neutral); !ok {
			t.Fatalf("%s: selection = %#v, want Neutral", name, m.Selection())
		}
		if !reflect.DeepEqual(before, f.snapshot()) {
			t.Fatalf("%s: cancel mutated the board", name)
		}
	}
}

func TestRejectedMoveResetsToNeutralAndKeepsBoard(t *testing.T) {
	f := newFakeEngine([]solitaire.Card{coin5}, []solitaire.Card{coin3})
	m := newTestMachine(f)
	before := f.snapshot()

	press(m, "1", "1")
	if ev := press(m, "2"); ev != EventRejected {
		t.Fatalf("event = %v, want rejected", ev)
	}
	if _, ok := m.Selection().(Neutral); !ok {
		t.Fatalf("selection = %#v, want Neutral", m.Selection())
	}
	if m.Notice() != "Cannot stack onto that" {
		t.Fatalf("notice = %q", m.Notice())
	}
	if !reflect.DeepEqual(before, f.snapshot()) {
		t.Fatal("rejected move changed the board")
	}
	if f.simplified != 0 {
		t.Fatalf("simplify ran %d times on a rejected move", f.simplified)
	}

	// The next key clears the notice before anything else.
	press(m, "z")
	if m.Notice() != "" {
		t.Fatalf("notice survived the next key: %q", m.Notice())
	}
}

func TestHeldIgnoresUnmappedKeys(t *testing.T) {
	f := newFakeEngine([]solitaire.Card{coin5})
	m := newTestMachine(f)
	press(m, "1", "1")
	for _, k := range []string{"z", "9", "d", "g"} {
		if ev := m.HandleKey(k); ev != EventNone {
			t.Fatalf("key %q event = %v, want none", k, ev)
		}
		if got := m.Selection(); got != (Held{From: solitaire.TrayAt(0, 1)}) {
			t.Fatalf("key %q changed selection to %#v", k, got)
		}
	}
}

func TestRunMovesInOrder(t *testing.T) {
	f := newFakeEngine(
		[]solitaire.Card{chars9, coin5, bamboo4, coin3},
		[]solitaire.Card{bamboo6},
	)
	m := newTestMachine(f)

	if ev := press(m, "1", "2", "2"); ev != EventMoved {
		t.Fatalf("event = %v, want moved", ev)
	}
	want0 := []solitaire.Card{chars9}
	want1 := []solitaire.Card{bamboo6, coin5, bamboo4, coin3}
	if !reflect.DeepEqual(f.trays[0], want0) {
		t.Fatalf("source tray = %v, want %v", f.trays[0], want0)
	}
	if !reflect.DeepEqual(f.trays[1], want1) {
		t.Fatalf("destination tray = %v, want %v", f.trays[1], want1)
	}
}

func TestMoveFromEmptyCellIsRejected(t *testing.T) {
	f := newFakeEngine(nil, []solitaire.Card{coin5})
	m := newTestMachine(f)

	press(m, "b")
	if got := m.Selection(); got != (Held{From: solitaire.FreeCellAt(1)}) {
		t.Fatalf("selection = %#v, want Held cell b", got)
	}
	if ev := press(m, "1"); ev != EventRejected {
		t.Fatalf("event = %v, want rejected", ev)
	}
	if m.Notice() != "Nothing to move" {
		t.Fatalf("notice = %q", m.Notice())
	}
}

func TestNewGameResetClearsSelection(t *testing.T) {
	m := newTestMachine(newFakeEngine([]solitaire.Card{coin5}))
	press(m, "1")
	next := newFakeEngine(nil, []solitaire.Card{bamboo6})
	m.Reset(next)
	if _, ok := m.Selection().(Neutral); !ok {
		t.Fatalf("selection = %#v, want Neutral", m.Selection())
	}
	if m.Remaining() != 1 {
		t.Fatalf("remaining = %d, want 1", m.Remaining())
	}
}

// Every state answers every class of key with a defined outcome.
func TestExecuteRestoresSourceWhenEngineStopsPopping(t *testing.T) {
	f := newFakeEngine([]solitaire.Card{bamboo6, coin5, bamboo4})
	f.popBudget = 1
	before := f.snapshot()

	err := Execute(f, solitaire.TrayAt(0, 1), solitaire.Tray(1))
	if !errors.Is(err, ErrEngine) {
		t.Fatalf("err = %v, want ErrEngine", err)
	}
	if !reflect.DeepEqual(before, f.snapshot()) {
		t.Fatalf("board changed after a failed transfer: %+v", f.snapshot())
	}
	if f.simplified != 0 {
		t.Fatalf("simplify ran %d times after a failed transfer", f.simplified)
	}
}

func TestTransitionTable(t *testing.T) {
	type state struct {
		name  string
		setup []string
	}
	states := []state{
		{"neutral", nil},
		{"collecting", []string{"d"}},
		{"partial", []string{"1"}},
		{"held", []string{"1", "1"}},
	}
	classes := []string{"a", "1", "d", "g", "esc", "0", "z"}
	want := map[string]map[string]string{
		"neutral":    {"a": "held", "1": "partial", "d": "collecting", "g": "neutral", "esc": "neutral", "0": "neutral", "z": "neutral"},
		"collecting": {"a": "collecting", "1": "collecting", "d": "collecting", "g": "collecting", "esc": "neutral", "0": "collecting", "z": "collecting"},
		"partial":    {"a": "partial", "1": "held", "d": "partial", "g": "partial", "esc": "neutral", "0": "partial", "z": "partial"},
		"held":       {"a": "neutral", "1": "neutral", "d": "held", "g": "held", "esc": "neutral", "0": "held", "z": "held"},
	}
	name := func(sel Selection) string {
		switch sel.(type) {
		case Neutral:
			return "neutral"
		case CollectingDragon:
			return "collecting"
		case PartialStack:
			return "partial"
		case Held:
			return "held"
		}
		t.Fatalf("unknown selection %#v", sel)
		return ""
	}

	for _, st := range states {
		for _, k := range classes {
			f := newFakeEngine([]solitaire.Card{coin5})
			m := newTestMachine(f)
			press(m, st.setup...)
			m.HandleKey(k)
			if got := name(m.Selection()); got != want[st.name][k] {
				t.Errorf("%s + %q -> %s, want %s", st.name, k, got, want[st.name][k])
			}
		}
	}
}

func TestCardConservationOnRealBoard(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	pool := []string{"a", "b", "c", "1", "2", "3", "4", "5", "6", "7", "8", "d", "g", "w", "r", "esc", "9", "0"}
	for seed := uint64(1); seed <= 5; seed++ {
		b := solitaire.NewRandom(seed)
		m := newTestMachine(b)
		for range 2000 {
			m.HandleKey(pool[rng.IntN(len(pool))])
			if got := b.Accounted(); got != solitaire.DeckSize {
				t.Fatalf("seed %d: accounted %d cards, want %d", seed, got, solitaire.DeckSize)
			}
		}
	}
}
