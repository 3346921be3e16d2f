package runtime

import (
	"github.com/oodx/room/event"
	"github.com/oodx/room/render"
	"github.com/oodx/room/rterr"
)

// RunScripted consumes an ordered list of events to completion (§4.7
// "Scripted" mode), used for tests. It is a config error to combine
// scripted mode with RuntimeConfig.SimulatedLoop (§7 "Config"): the fatal
// path still runs so every session ends in exactly one terminal stage (§8).
func (c *Coordinator) RunScripted(events []event.Event, sink render.Sink) error {
	if c.cfg.SimulatedLoop != nil {
		return c.fail(rterr.New(rterr.CategoryConfig, "run_scripted", "scripted mode is incompatible with a configured SimulatedLoop"), sink)
	}
	if !c.bootstrapped {
		return ErrNotBootstrapped
	}

	for _, evt := range events {
		if c.state.Terminal() {
			return nil
		}
		if err := c.Step(evt, sink); err != nil {
			return err
		}
	}
	return nil
}
