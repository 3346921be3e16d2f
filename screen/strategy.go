package screen

import (
	"github.com/oodx/room/event"
	"github.com/oodx/room/plugin"
	"github.com/oodx/room/zone"
)

// Strategy owns a screen's layout and lifecycle hooks (§4.6). A screen
// registers one strategy; the manager invokes it across activation and
// per-event delegation.
type Strategy interface {
	// Layout returns the solver to install for this screen when activated.
	Layout() zone.Solver

	// RegisterPanels runs once, right after activation swaps the layout in,
	// before the forced redraw. It may seed zone content via ctx.
	RegisterPanels(ctx plugin.RuntimeContext, state *State) error

	// WillAppear/DidAppear bracket the new screen becoming active;
	// WillDisappear brackets the previous screen going inactive. All three
	// default to no-ops via EmbedStrategy.
	WillAppear(state *State)
	DidAppear(state *State)
	WillDisappear(state *State)

	// HandleEvent lets the strategy consume an event before (or after,
	// depending on NavigationOrder) the manager's own hotkey handling.
	HandleEvent(ctx plugin.RuntimeContext, state *State, evt event.Event) (event.Flow, error)
}

// EmbedStrategy gives a concrete Strategy implementation no-op defaults for
// every lifecycle hook, so callers only implement what they need — the same
// "embed for free defaults" idiom the teacher uses for its Visual/Interactive
// split.
type EmbedStrategy struct{}

func (EmbedStrategy) WillAppear(*State)    {}
func (EmbedStrategy) DidAppear(*State)     {}
func (EmbedStrategy) WillDisappear(*State) {}
func (EmbedStrategy) RegisterPanels(plugin.RuntimeContext, *State) error { return nil }
func (EmbedStrategy) HandleEvent(plugin.RuntimeContext, *State, event.Event) (event.Flow, error) {
	return event.NotConsumed, nil
}

// LegacyStrategy simply hosts a caller-supplied layout with no multi-screen
// semantics (§4.6): it exists so callers can opt into the screen layer
// without adopting screen-switching behavior.
type LegacyStrategy struct {
	EmbedStrategy
	solver zone.Solver
}

// NewLegacyStrategy wraps solver as a single always-active screen's layout.
func NewLegacyStrategy(solver zone.Solver) *LegacyStrategy {
	return &LegacyStrategy{solver: solver}
}

func (l *LegacyStrategy) Layout() zone.Solver {
	return l.solver
}
