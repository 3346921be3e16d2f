package runtime

import (
	"github.com/oodx/room/audit"
	"github.com/oodx/room/focus"
	"github.com/oodx/room/resources"
	"github.com/oodx/room/rterr"
	"github.com/oodx/room/zone"
)

// Coordinator satisfies plugin.RuntimeContext: it is the only concrete type
// ever passed as a hook's ctx argument (§4.5).

// SetZone writes zone content through to the registry.
func (c *Coordinator) SetZone(id zone.ID, lines []string, preRendered bool) error {
	return c.zones.SetZone(id, lines, preRendered)
}

// SetCursorHint records the cursor to restore after the next render pass and
// emits exactly one of CursorMoved/CursorShown/CursorHidden for any actual
// change in the Cursor shared resource (§8), in the same event.
func (c *Coordinator) SetCursorHint(cur focus.Cursor) {
	prev := c.prevCursor
	next := cur
	c.cursorHint = &next
	c.prevCursor = &next

	var stage Stage
	switch {
	case prev == nil || prev.Visible != cur.Visible:
		if cur.Visible {
			stage = CursorShown
		} else {
			stage = CursorHidden
		}
	case cur.Moved(*prev):
		stage = CursorMoved
	default:
		return
	}

	c.emit(stage, audit.NewFields("cursor", cursorFields(cur)))
	_ = c.pipeline.CursorChanged(c, stage == CursorMoved, stage == CursorShown, stage == CursorHidden)
}

func cursorFields(cur focus.Cursor) audit.Fields {
	return audit.NewFields("row", cur.Row, "col", cur.Col, "visible", cur.Visible)
}

// Focus returns the runtime-owned focus controller.
func (c *Coordinator) Focus() *focus.Controller {
	return c.focusCtl
}

// Resources exposes the shared resource map.
func (c *Coordinator) Resources() *resources.Map {
	return c.resources
}

// RequestRender marks a render pending. It is idempotent in effect: the
// coordinator already runs one render pass per event (§4.5), so repeated
// calls within the same event never trigger more than that single pass.
func (c *Coordinator) RequestRender() {
	c.pendingRender = true
}

// RequestExit sets should_exit; honored once the current event drains (§4.7).
func (c *Coordinator) RequestExit() {
	c.shouldExit = true
}

// RaiseError surfaces err through the coordinator's Error/RecoverOrFatal
// path instead of the hook returning it directly. Only the first raised
// error in a given event is kept; later ones are dropped.
func (c *Coordinator) RaiseError(err *rterr.RuntimeError) {
	if c.raised == nil {
		c.raised = err
	}
}

// SwitchLayout re-solves solver against the current terminal size and
// applies it as the new active layout, becoming the solver future resizes
// re-solve against.
func (c *Coordinator) SwitchLayout(solver zone.Solver) error {
	solved, err := solver.Solve(c.size)
	if err != nil {
		return err
	}
	c.solver = solver
	c.zones.ApplyLayout(solved)
	c.zones.MarkAllDirty()
	c.pendingRender = true
	return nil
}
