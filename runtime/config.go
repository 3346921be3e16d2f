package runtime

import (
	"time"

	"github.com/oodx/room/internal/share"
	"github.com/oodx/room/zone"
)

// SimulatedKind distinguishes the two simulated loop flavors (§6.3).
type SimulatedKind int

const (
	SimulatedSilentKind SimulatedKind = iota
	SimulatedTicksKind
)

// SimulatedLoop configures simulated run mode: silent{n} drives n iterations
// with no events, ticks{n} drives n synthetic Tick events.
type SimulatedLoop struct {
	Kind SimulatedKind
	N    uint64
}

// SimulatedSilent builds a silent{n} simulated loop config.
func SimulatedSilent(n uint64) SimulatedLoop {
	return SimulatedLoop{Kind: SimulatedSilentKind, N: n}
}

// SimulatedTicks builds a ticks{n} simulated loop config.
func SimulatedTicks(n uint64) SimulatedLoop {
	return SimulatedLoop{Kind: SimulatedTicksKind, N: n}
}

// RuntimeConfig is the coordinator's caller-facing configuration (§6.3),
// built the way the teacher builds its Config: a plain struct, a
// DefaultRuntimeConfig constructor, and a set of share.Option[RuntimeConfig]
// functional options.
type RuntimeConfig struct {
	TickInterval        time.Duration
	DefaultFocusZone     *zone.ID
	LoopIterationLimit   *uint64
	SimulatedLoop        *SimulatedLoop
}

// DefaultRuntimeConfig returns a RuntimeConfig with no focus zone, no
// iteration limit, and interactive (non-simulated) loop mode.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{TickInterval: 16 * time.Millisecond}
}

// WithTickInterval sets the informative tick cadence (§6.3).
func WithTickInterval(d time.Duration) share.Option[RuntimeConfig] {
	return func(c *RuntimeConfig) { c.TickInterval = d }
}

// WithDefaultFocusZone sets the zone focused right after Boot.
func WithDefaultFocusZone(id zone.ID) share.Option[RuntimeConfig] {
	return func(c *RuntimeConfig) { c.DefaultFocusZone = &id }
}

// WithLoopIterationLimit caps loop iterations across all loop modes.
func WithLoopIterationLimit(n uint64) share.Option[RuntimeConfig] {
	return func(c *RuntimeConfig) { c.LoopIterationLimit = &n }
}

// WithSimulatedLoop switches run mode to simulated.
func WithSimulatedLoop(loop SimulatedLoop) share.Option[RuntimeConfig] {
	return func(c *RuntimeConfig) { c.SimulatedLoop = &loop }
}
