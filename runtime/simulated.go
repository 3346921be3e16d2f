package runtime

import (
	"time"

	"github.com/oodx/room/audit"
	"github.com/oodx/room/event"
	"github.com/oodx/room/render"
	"github.com/oodx/room/rterr"
)

// RunSimulated drives RuntimeConfig.SimulatedLoop to completion, rendering to
// the given sink (§4.7 "Simulated" mode): silent{n} iterations carry no
// payload, ticks{n} iterations carry synthetic, monotonically increasing
// Tick timestamps. Both respect LoopIterationLimit. Calling it without a
// configured SimulatedLoop is a config error (§7 "Config") and drives the
// fatal path rather than returning a bare error, so every session still
// ends in exactly one terminal stage (§8).
func (c *Coordinator) RunSimulated(sink render.Sink) error {
	if !c.bootstrapped {
		return ErrNotBootstrapped
	}
	if c.cfg.SimulatedLoop == nil {
		return c.fail(rterr.New(rterr.CategoryConfig, "run_simulated", "RunSimulated called without a configured SimulatedLoop"), sink)
	}

	loop := *c.cfg.SimulatedLoop
	c.emit(LoopSimulated, audit.NewFields("kind", simulatedKindName(loop.Kind), "n", loop.N))

	start := time.Now()
	for i := uint64(0); i < loop.N; i++ {
		if c.state.Terminal() {
			return nil
		}

		var evt event.Event
		if loop.Kind == SimulatedTicksKind {
			evt = event.NewTick(start.Add(time.Duration(i) * c.cfg.TickInterval))
		} else {
			evt = event.NewSilent()
		}

		if err := c.Step(evt, sink); err != nil {
			return err
		}
		if c.state.Terminal() {
			if c.loopAborted {
				c.emit(LoopSimulatedAborted, audit.NewFields())
			}
			return nil
		}
	}

	c.emit(LoopSimulatedComplete, audit.NewFields())
	return c.teardown(sink)
}

func simulatedKindName(k SimulatedKind) string {
	if k == SimulatedTicksKind {
		return "ticks"
	}
	return "silent"
}
