package screen

import (
	"github.com/oodx/room/event"
	"github.com/oodx/room/plugin"
)

// Adapter wires a Manager into the coordinator's plugin pipeline (§4.6) as
// an ordinary EventHandler/Initializer, rather than giving the coordinator a
// dedicated C6 dispatch path. Register it with RegisterPlugin at a low
// priority number so screen navigation hotkeys see events before feature
// plugins do, matching the hotkeys-first default.
type Adapter struct {
	mgr     *Manager
	initial *ID
}

// NewAdapter wraps mgr. If initial is non-nil, that screen is activated
// during Boot, before the coordinator's bootstrap render.
func NewAdapter(mgr *Manager, initial *ID) *Adapter {
	return &Adapter{mgr: mgr, initial: initial}
}

// Manager returns the wrapped screen manager.
func (a *Adapter) Manager() *Manager {
	return a.mgr
}

// Init activates the initial screen, if one was given, swapping in its
// layout before anything renders.
func (a *Adapter) Init(ctx plugin.RuntimeContext) error {
	if a.initial == nil {
		return nil
	}
	act, err := a.mgr.Activate(ctx, *a.initial)
	if err != nil {
		return err
	}
	return ctx.SwitchLayout(act.Layout)
}

// OnEvent routes evt through the manager's navigation hotkeys and active
// strategy, applying any resulting screen activation's layout immediately
// so the next render pass draws the new screen in full.
func (a *Adapter) OnEvent(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error) {
	flow, act, err := a.mgr.HandleEvent(ctx, evt)
	if err != nil {
		return flow, err
	}
	if act != nil {
		if err := ctx.SwitchLayout(act.Layout); err != nil {
			return flow, err
		}
	}
	return flow, nil
}
