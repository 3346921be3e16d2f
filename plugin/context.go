package plugin

import (
	"github.com/oodx/room/focus"
	"github.com/oodx/room/resources"
	"github.com/oodx/room/rterr"
	"github.com/oodx/room/zone"
)

// RuntimeContext is the side-effect surface a plugin hook receives (§4.5).
// The coordinator implements it; plugin code never constructs one.
type RuntimeContext interface {
	// SetZone writes zone content, marking it dirty iff the content changed.
	SetZone(id zone.ID, lines []string, preRendered bool) error

	// SetCursorHint records the cursor position/visibility to restore after
	// the next render pass.
	SetCursorHint(cursor focus.Cursor)

	// Focus returns the focus controller this plugin may use to request or
	// release focus ownership.
	Focus() *focus.Controller

	// Resources exposes the shared resource map (C1) for insertion/lookup,
	// via the package-level generic resources.Get/Insert/GetOrInsertWith
	// functions (Go interface methods cannot be type-parameterized).
	Resources() *resources.Map

	// RequestRender asks the coordinator to run a render pass after the
	// current hook returns. Idempotent: calling it more than once in the
	// same event has no additional effect.
	RequestRender()

	// RequestExit sets should_exit; takes effect once the current event
	// finishes draining (§4.7).
	RequestExit()

	// RaiseError surfaces a RuntimeError through the coordinator's error
	// path instead of returning it from the hook.
	RaiseError(err *rterr.RuntimeError)

	// SwitchLayout replaces the active layout solver, re-solves it against
	// the current terminal size, applies the result to the zone registry,
	// and marks every zone dirty so the next render pass redraws the whole
	// screen. Used by the screen manager (C6) after activating a new
	// screen (§4.6): activation itself never renders.
	SwitchLayout(solver zone.Solver) error
}
