package plugin

import (
	"github.com/oodx/room/event"
	"github.com/oodx/room/rterr"
)

// Plugin is the empty base type every capability interface extends. A
// plugin implements any subset of the hooks below; the pipeline type-asserts
// each registered plugin against each capability before invoking it (§4.5).
type Plugin interface{}

// Initializer runs once during Boot, in priority order.
type Initializer interface {
	Init(ctx RuntimeContext) error
}

// EventHandler runs for each incoming runtime event, in priority order,
// stopping at the first plugin that returns event.Consumed.
type EventHandler interface {
	OnEvent(ctx RuntimeContext, evt event.Event) (event.Flow, error)
}

// BootHandler runs after every Initializer.Init call completes, still within
// Boot.
type BootHandler interface {
	OnBoot(ctx RuntimeContext) error
}

// UserReadyHandler runs once, right after the bootstrap render succeeds.
type UserReadyHandler interface {
	OnUserReady(ctx RuntimeContext) error
}

// UserEndHandler runs once should_exit has been honored, before Cleanup.
type UserEndHandler interface {
	OnUserEnd(ctx RuntimeContext) error
}

// FocusChangeHandler runs synchronously when the coordinator applies
// RuntimeConfig.DefaultFocusZone during bootstrap. Focus changes made
// through a focus.Controller afterwards (by a plugin, or by the
// coordinator's own release during teardown) do not invoke it.
type FocusChangeHandler interface {
	OnFocusChange(ctx RuntimeContext, from, to *string) error
}

// CursorChangeHandler runs synchronously whenever the cursor hint changes.
type CursorChangeHandler interface {
	OnCursorChange(ctx RuntimeContext, moved, shown, hidden bool) error
}

// ErrorHandler runs during RecoverOrFatal, in priority order; it may mutate
// err.Recoverable and err.Data.
type ErrorHandler interface {
	OnError(ctx RuntimeContext, err *rterr.RuntimeError) error
}

// BeforeRenderHandler runs immediately before a render pass and may mutate
// zones.
type BeforeRenderHandler interface {
	BeforeRender(ctx RuntimeContext) error
}

// AfterRenderHandler runs immediately after a render pass; it is read-only
// by convention (§4.5), though nothing in the type system enforces that.
type AfterRenderHandler interface {
	AfterRender(ctx RuntimeContext) error
}

// TickHandler runs for synthetic Tick events distinct from on_event, for
// plugins that want tick cadence without participating in consumption.
type TickHandler interface {
	OnTick(ctx RuntimeContext) error
}
