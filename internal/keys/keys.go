package keys

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/bubbles/key"
)

type Action string

type Binding struct {
	Action Action
	Keys   []string
	Help   string
	Scopes []string
}

// Override replaces the keys of one action in one scope.
type Override struct {
	Scope  string
	Action string
	Keys   []string
}

type Registry struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

const (
	ScopeGlobal  = "global"
	ScopeSlots   = "slots"
	ScopeNeutral = "neutral"
	ScopeDragon  = "dragon"
	ScopeCount   = "count"
	ScopeHeld    = "held"
)

const (
	ActionQuit          Action = "quit"
	ActionNewGame       Action = "new_game"
	ActionCancel        Action = "cancel"
	ActionCollectDragon Action = "collect_dragon"
	ActionDragonGreen   Action = "dragon_green"
	ActionDragonWhite   Action = "dragon_white"
	ActionDragonRed     Action = "dragon_red"
	ActionCellA         Action = "cell_a"
	ActionCellB         Action = "cell_b"
	ActionCellC         Action = "cell_c"
	ActionTray1         Action = "tray_1"
	ActionTray2         Action = "tray_2"
	ActionTray3         Action = "tray_3"
	ActionTray4         Action = "tray_4"
	ActionTray5         Action = "tray_5"
	ActionTray6         Action = "tray_6"
	ActionTray7         Action = "tray_7"
	ActionTray8         Action = "tray_8"
)

// CellActions and TrayActions are ordered by slot index.
var (
	CellActions = []Action{ActionCellA, ActionCellB, ActionCellC}
	TrayActions = []Action{
		ActionTray1, ActionTray2, ActionTray3, ActionTray4,
		ActionTray5, ActionTray6, ActionTray7, ActionTray8,
	}
)

// Scopes that are consulted for the same key press must not share keys.
var sharedScopes = [][]string{
	{ScopeGlobal, ScopeSlots, ScopeNeutral},
	{ScopeGlobal, ScopeSlots, ScopeHeld},
	{ScopeGlobal, ScopeDragon},
	{ScopeGlobal, ScopeCount},
}

func NewRegistry() *Registry {
	r := &Registry{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}

	reg := func(scope string, action Action, keys []string, help string) {
		r.Register(Binding{Action: action, Keys: keys, Help: help, Scopes: []string{scope}})
	}

	reg(ScopeGlobal, ActionQuit, []string{"q", "ctrl+c"}, "quit")
	reg(ScopeGlobal, ActionNewGame, []string{"n"}, "new game")

	// Slot selectors double as move destinations.
	reg(ScopeSlots, ActionCellA, []string{"a"}, "cell a")
	reg(ScopeSlots, ActionCellB, []string{"b"}, "cell b")
	reg(ScopeSlots, ActionCellC, []string{"c"}, "cell c")
	for i, a := range TrayActions {
		k := fmt.Sprintf("%d", i+1)
		reg(ScopeSlots, a, []string{k}, "tray "+k)
	}

	reg(ScopeNeutral, ActionCollectDragon, []string{"d"}, "dragons")

	reg(ScopeDragon, ActionDragonGreen, []string{"g"}, "green")
	reg(ScopeDragon, ActionDragonWhite, []string{"w"}, "white")
	reg(ScopeDragon, ActionDragonRed, []string{"r"}, "red")
	reg(ScopeDragon, ActionCancel, []string{"esc"}, "cancel")

	reg(ScopeCount, ActionCancel, []string{"esc"}, "cancel")

	reg(ScopeHeld, ActionCancel, []string{"esc"}, "cancel")

	return r
}

func (r *Registry) Register(b Binding) {
	if r == nil {
		return
	}
	for _, scope := range b.Scopes {
		scope = strings.TrimSpace(scope)
		if scope == "" || len(b.Keys) == 0 {
			continue
		}
		if _, ok := r.indexByScope[scope]; !ok {
			r.indexByScope[scope] = make(map[string]*Binding)
		}
		normKeys := normalizeKeyList(b.Keys)
		if len(normKeys) == 0 {
			continue
		}
		if r.scopeHasAnyKey(scope, normKeys) {
			continue
		}

		copyBinding := b
		copyBinding.Keys = normKeys
		copyBinding.Scopes = []string{scope}
		r.bindingsByScope[scope] = append(r.bindingsByScope[scope], &copyBinding)
		for _, k := range copyBinding.Keys {
			r.indexByScope[scope][k] = &copyBinding
		}
	}
}

func (r *Registry) BindingsForScope(scope string) []Binding {
	if r == nil {
		return nil
	}
	items := r.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// Lookup resolves a key in scope, falling back to the global scope.
func (r *Registry) Lookup(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	keyName = NormalizeKeyName(keyName)
	if b := r.lookupInScope(keyName, scope); b != nil {
		return b
	}
	if scope != ScopeGlobal {
		return r.lookupInScope(keyName, ScopeGlobal)
	}
	return nil
}

// LookupOnly resolves a key in scope without the global fallback.
func (r *Registry) LookupOnly(keyName, scope string) *Binding {
	if r == nil || keyName == "" {
		return nil
	}
	return r.lookupInScope(NormalizeKeyName(keyName), scope)
}

// IsAction reports whether keyName triggers action in scope.
func (r *Registry) IsAction(keyName string, action Action, scope string) bool {
	b := r.Lookup(keyName, scope)
	return b != nil && b.Action == action
}

// KeysFor returns the keys bound to action in scope.
func (r *Registry) KeysFor(scope string, action Action) []string {
	if r == nil {
		return nil
	}
	for _, b := range r.bindingsByScope[scope] {
		if b.Action == action {
			return append([]string(nil), b.Keys...)
		}
	}
	return nil
}

func (r *Registry) HelpBindings(scope string) []key.Binding {
	items := r.BindingsForScope(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		if len(b.Keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(b.Keys[0], b.Help)))
	}
	return out
}

// SlotHelpBindings folds the per-slot bindings into one cell entry and one
// tray entry.
func (r *Registry) SlotHelpBindings() []key.Binding {
	group := func(actions []Action, sep, desc string) key.Binding {
		var all, first []string
		for _, a := range actions {
			ks := r.KeysFor(ScopeSlots, a)
			if len(ks) == 0 {
				continue
			}
			all = append(all, ks...)
			first = append(first, ks[0])
		}
		label := strings.Join(first, sep)
		if len(first) > 2 && sep == "" {
			label = first[0] + "-" + first[len(first)-1]
		}
		return key.NewBinding(key.WithKeys(all...), key.WithHelp(label, desc))
	}
	return []key.Binding{
		group(CellActions, "/", "cell"),
		group(TrayActions, "", "tray"),
	}
}

func (r *Registry) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := r.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}

func (r *Registry) scopeHasAnyKey(scope string, keys []string) bool {
	lookup := r.indexByScope[scope]
	for _, k := range keys {
		if _, exists := lookup[k]; exists {
			return true
		}
	}
	return false
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := NormalizeKeyName(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// NormalizeKeyName maps spelling variants of a key to the form bubbletea
// reports in tea.KeyMsg.String.
func NormalizeKeyName(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) == 1 {
		ch := trimmed[0]
		if ch >= 'A' && ch <= 'Z' {
			// Preserve single uppercase rune so uppercase/lowercase bindings
			// can be distinct actions within the same scope.
			return trimmed
		}
	}
	s := strings.ToLower(trimmed)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "control+", "ctrl+")
	s = strings.ReplaceAll(s, "ctl+", "ctrl+")
	s = strings.ReplaceAll(s, "escape", "esc")
	s = strings.ReplaceAll(s, "return", "enter")
	s = strings.ReplaceAll(s, "spacebar", "space")
	return s
}

func (r *Registry) ApplyOverrides(items []Override) error {
	if r == nil || len(items) == 0 {
		return nil
	}
	type pair struct {
		scope  string
		action Action
	}
	seenPair := make(map[pair]bool)
	for _, o := range items {
		scope := strings.TrimSpace(o.Scope)
		if scope == "" {
			return fmt.Errorf("keybinding override: scope is required")
		}
		action := Action(strings.TrimSpace(o.Action))
		if action == "" {
			return fmt.Errorf("keybinding override scope=%q: action is required", scope)
		}
		keys := normalizeKeyList(o.Keys)
		if len(keys) == 0 {
			return fmt.Errorf("keybinding override scope=%q action=%q: keys are required", scope, action)
		}

		bindings := r.bindingsByScope[scope]
		if len(bindings) == 0 {
			return fmt.Errorf("keybinding override scope=%q action=%q: unknown scope%s", scope, action, suggest(scope, r.scopeNames()))
		}
		var target *Binding
		names := make([]string, 0, len(bindings))
		for _, b := range bindings {
			names = append(names, string(b.Action))
			if b.Action == action {
				target = b
			}
		}
		if target == nil {
			return fmt.Errorf("keybinding override scope=%q action=%q: unknown action in scope%s", scope, action, suggest(string(action), names))
		}
		p := pair{scope: scope, action: action}
		if seenPair[p] {
			return fmt.Errorf("keybinding override scope=%q action=%q: duplicated override entry", scope, action)
		}
		seenPair[p] = true
		target.Keys = keys
	}

	r.rebuildIndex()
	return r.checkConflicts()
}

func (r *Registry) checkConflicts() error {
	for _, group := range sharedScopes {
		seen := make(map[string]string)
		for _, scope := range group {
			for _, b := range r.bindingsByScope[scope] {
				for _, k := range b.Keys {
					id := scope + "." + string(b.Action)
					if prev, ok := seen[k]; ok && prev != id {
						return fmt.Errorf("keybinding conflict: key %q used by both %s and %s", k, prev, id)
					}
					seen[k] = id
				}
			}
		}
	}
	for _, b := range r.bindingsByScope[ScopeCount] {
		for _, k := range b.Keys {
			if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
				return fmt.Errorf("keybinding conflict: digit %q is reserved for stack counts", k)
			}
		}
	}
	return nil
}

func (r *Registry) ExportOverrides() []Override {
	if r == nil {
		return nil
	}
	var out []Override
	for scope, bindings := range r.bindingsByScope {
		for _, b := range bindings {
			out = append(out, Override{
				Scope:  scope,
				Action: string(b.Action),
				Keys:   append([]string(nil), b.Keys...),
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Action < out[j].Action
	})
	return out
}

func (r *Registry) scopeNames() []string {
	out := make([]string, 0, len(r.bindingsByScope))
	for scope := range r.bindingsByScope {
		out = append(out, scope)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) rebuildIndex() {
	r.indexByScope = make(map[string]map[string]*Binding, len(r.bindingsByScope))
	for scope, bindings := range r.bindingsByScope {
		r.indexByScope[scope] = make(map[string]*Binding)
		for _, b := range bindings {
			for _, k := range b.Keys {
				r.indexByScope[scope][k] = b
			}
		}
	}
}

// suggest returns a " (did you mean ...)" hint for the closest candidate
// within edit distance 3, or "".
func suggest(got string, candidates []string) string {
	best, bestDist := "", 4
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(got, c)
		if d < bestDist || (d == bestDist && c < best) {
			best, bestDist = c, d
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf(" (did you mean %q?)", best)
}
