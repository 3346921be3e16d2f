package screen

import (
	"fmt"

	"github.com/oodx/room/event"
	"github.com/oodx/room/internal/share"
	"github.com/oodx/room/plugin"
	"github.com/oodx/room/zone"
)

// NavigationOrder resolves the Open Question in §4.6 over whether the
// active strategy or the manager's own hotkeys get first refusal on an
// event.
type NavigationOrder int

const (
	// HotkeysFirst is the spec's stated default: manager hotkeys consume
	// Ctrl+Tab/Ctrl+Shift+Tab before the strategy ever sees the event.
	HotkeysFirst NavigationOrder = iota
	StrategyFirst
)

// Options configures a Manager at construction.
type Options struct {
	NavigationOrder NavigationOrder
}

// WithNavigationOrder overrides the default hotkeys-first routing order.
func WithNavigationOrder(order NavigationOrder) share.Option[Options] {
	return func(o *Options) { o.NavigationOrder = order }
}

// ErrUnknownScreen is returned when activating or looking up an
// unregistered screen id.
var ErrUnknownScreen = fmt.Errorf("screen: unknown id")

// Activation reports that HandleEvent (or Activate) swapped the active
// screen, and carries the new layout the caller must apply to the zone
// registry, mark fully dirty, and redraw (§4.6: activation itself never
// renders).
type Activation struct {
	ID     ID
	Layout zone.Solver
}

// Manager is the screen registry and navigator (C6): it owns every
// registered Definition, the currently active screen, and each screen's
// persistent State.
type Manager struct {
	opts     Options
	order    []ID
	defs     map[ID]Definition
	states   map[ID]*State
	activeID *ID
}

// New builds a Manager with no screens registered.
func New(opts ...share.Option[Options]) *Manager {
	o := Options{NavigationOrder: HotkeysFirst}
	share.ApplyOptions(&o, opts...)
	return &Manager{
		opts:   o,
		defs:   make(map[ID]Definition),
		states: make(map[ID]*State),
	}
}

// Register adds def to the registry in call order; registration order is
// what hotkey cycling uses.
func (m *Manager) Register(def Definition) {
	if _, exists := m.defs[def.ID]; !exists {
		m.order = append(m.order, def.ID)
	}
	m.defs[def.ID] = def
}

// ScreenState returns the persistent state for id, creating it on first
// access, for cross-screen data seeding (§4.6).
func (m *Manager) ScreenState(id ID) (*State, bool) {
	if _, known := m.defs[id]; !known {
		return nil, false
	}
	st, ok := m.states[id]
	if !ok {
		st = newState(id)
		m.states[id] = st
	}
	return st, true
}

// ActiveID returns the currently active screen id, or nil if none is active
// yet.
func (m *Manager) ActiveID() *ID {
	return m.activeID
}

// ActiveState returns the active screen's State, or nil if none is active.
func (m *Manager) ActiveState() *State {
	if m.activeID == nil {
		return nil
	}
	st, _ := m.ScreenState(*m.activeID)
	return st
}

// Activate swaps in def's layout, running the WillDisappear/WillAppear/
// DidAppear bracket and RegisterPanels (§4.6). It returns the new screen's
// layout solver; the caller (the coordinator) is responsible for applying
// it to the zone registry, marking every zone dirty, and forcing a redraw —
// activation itself does not render.
func (m *Manager) Activate(ctx plugin.RuntimeContext, id ID) (*Activation, error) {
	def, ok := m.defs[id]
	if !ok {
		return nil, fmt.Errorf("screen: activate %q: %w", id, ErrUnknownScreen)
	}

	if prev := m.ActiveState(); prev != nil && m.activeID != nil {
		m.defs[*m.activeID].Strategy.WillDisappear(prev)
	}

	next, _ := m.ScreenState(id)
	activeID := id
	m.activeID = &activeID

	def.Strategy.WillAppear(next)
	if err := def.Strategy.RegisterPanels(ctx, next); err != nil {
		return nil, fmt.Errorf("screen: register panels for %q: %w", id, err)
	}
	def.Strategy.DidAppear(next)

	return &Activation{ID: id, Layout: def.Strategy.Layout()}, nil
}

// HandleEvent routes evt to navigation hotkeys and/or the active strategy,
// per m.opts.NavigationOrder (§4.6), then drains any navigation request the
// strategy enqueued via State.Navigator(), activating the last one enqueued
// if present. The returned *Activation is non-nil whenever a hotkey or a
// drained navigation request actually swapped the active screen.
func (m *Manager) HandleEvent(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, *Activation, error) {
	var flow event.Flow
	var activation *Activation
	var err error

	hotkeys := func() (event.Flow, error) {
		target, ok := m.hotkeyTarget(evt)
		if !ok {
			return event.NotConsumed, nil
		}
		act, aerr := m.Activate(ctx, target)
		if aerr != nil {
			return event.Consumed, aerr
		}
		activation = act
		return event.Consumed, nil
	}
	strategy := func() (event.Flow, error) {
		return m.delegateToStrategy(ctx, evt)
	}

	if m.opts.NavigationOrder == StrategyFirst {
		flow, err = strategy()
		if flow != event.Consumed && err == nil {
			flow, err = hotkeys()
		}
	} else {
		flow, err = hotkeys()
		if flow != event.Consumed && err == nil {
			flow, err = strategy()
		}
	}

	if err == nil {
		if act, derr := m.drainNavigation(ctx); derr != nil {
			err = derr
		} else if act != nil {
			activation = act
		}
	}

	return flow, activation, err
}

func (m *Manager) delegateToStrategy(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error) {
	active := m.ActiveState()
	if active == nil || m.activeID == nil {
		return event.NotConsumed, nil
	}
	return m.defs[*m.activeID].Strategy.HandleEvent(ctx, active, evt)
}

func (m *Manager) drainNavigation(ctx plugin.RuntimeContext) (*Activation, error) {
	active := m.ActiveState()
	if active == nil {
		return nil, nil
	}
	req := active.Navigator().Drain()
	if req == nil {
		return nil, nil
	}
	return m.Activate(ctx, *req)
}

// hotkeyTarget reports the screen id Ctrl+Tab/Ctrl+Shift+Tab would switch
// to, cycling by registration order (§4.6), and whether evt is such a
// hotkey at all.
func (m *Manager) hotkeyTarget(evt event.Event) (ID, bool) {
	if evt.Kind != event.KeyKind || evt.Key.Code != '\t' || !evt.Key.Mods.Has(event.ModCtrl) {
		return "", false
	}
	if len(m.order) == 0 {
		return "", false
	}

	backward := evt.Key.Mods.Has(event.ModShift)
	idx := m.activeIndex()
	var next int
	if idx < 0 {
		next = 0
	} else if backward {
		next = (idx - 1 + len(m.order)) % len(m.order)
	} else {
		next = (idx + 1) % len(m.order)
	}
	return m.order[next], true
}

func (m *Manager) activeIndex() int {
	if m.activeID == nil {
		return -1
	}
	for i, id := range m.order {
		if id == *m.activeID {
			return i
		}
	}
	return -1
}
