// Package room is the top-level facade wiring the zone registry, diff
// renderer, plugin pipeline, focus/cursor substrate, screen manager, and
// runtime coordinator (C1-C7) into a single construct-and-run entry point.
// It follows the teacher's multipath construction convention: a
// zero-config path, a config-struct path, a functional-options path, and a
// fluent builder, all landing on the same underlying build.
package room

import (
	"time"

	"github.com/oodx/room/driver"
	"github.com/oodx/room/internal/share"
	"github.com/oodx/room/plugin"
	"github.com/oodx/room/runtime"
	"github.com/oodx/room/screen"
	"github.com/oodx/room/zone"
)

// PluginRegistration pairs a plugin with the priority to register it at.
type PluginRegistration struct {
	Plugin   plugin.Plugin
	Priority int
}

// Config is room's construction config (§10.3): a plain struct consumed by
// every multipath entry point below.
type Config struct {
	Runtime runtime.RuntimeConfig

	// Solver is the initial layout solver. When Screens is set with an
	// InitialScreen, that screen's layout replaces it during Boot, before the
	// bootstrap render; until a screen is activated, Solver stays in use.
	Solver zone.Solver

	// Screens, when set, registers a screen.Adapter (C6) into the plugin
	// pipeline ahead of every plugin below, activating InitialScreen (if
	// any) during Boot.
	Screens       *screen.Manager
	InitialScreen *screen.ID

	Plugins []PluginRegistration
}

// screenPluginPriority puts screen navigation hotkeys ahead of every plugin
// registered through Config.Plugins at a priority above -1000, matching the
// hotkeys-first default (§4.6).
const screenPluginPriority = -1000

// DefaultConfig returns a Config with the runtime's own defaults and no
// solver, screens, or plugins. Start builds from it as is; with no Solver
// and no Screens the layout is empty.
func DefaultConfig() Config {
	return Config{Runtime: runtime.DefaultRuntimeConfig()}
}

// WithSolver sets the initial layout solver for callers not using the
// screen manager.
func WithSolver(solver zone.Solver) share.Option[Config] {
	return func(c *Config) { c.Solver = solver }
}

// WithScreens registers mgr as the screen manager (C6), activating initial
// during Boot if non-nil.
func WithScreens(mgr *screen.Manager, initial *screen.ID) share.Option[Config] {
	return func(c *Config) {
		c.Screens = mgr
		c.InitialScreen = initial
	}
}

// WithPlugin registers p at priority alongside the other runtime plugins.
func WithPlugin(p plugin.Plugin, priority int) share.Option[Config] {
	return func(c *Config) {
		c.Plugins = append(c.Plugins, PluginRegistration{Plugin: p, Priority: priority})
	}
}

// WithTickInterval sets the informative tick cadence.
func WithTickInterval(d time.Duration) share.Option[Config] {
	return func(c *Config) { c.Runtime.TickInterval = d }
}

// WithDefaultFocusZone sets the zone focused right after Boot.
func WithDefaultFocusZone(id zone.ID) share.Option[Config] {
	return func(c *Config) { c.Runtime.DefaultFocusZone = &id }
}

// WithLoopIterationLimit caps loop iterations across all loop modes.
func WithLoopIterationLimit(n uint64) share.Option[Config] {
	return func(c *Config) { c.Runtime.LoopIterationLimit = &n }
}

// WithSimulatedLoop switches run mode to simulated.
func WithSimulatedLoop(loop runtime.SimulatedLoop) share.Option[Config] {
	return func(c *Config) { c.Runtime.SimulatedLoop = &loop }
}

// Room wraps a constructed, not-yet-bootstrapped Coordinator, ready for a
// driver to bootstrap and run it.
type Room struct {
	Coordinator *runtime.Coordinator
	cfg         Config
}

// Start builds a Room. BEGINNER path — supports two usage patterns:
//
//	room.Start()      // zero-config, empty layout until a screen/solver is set
//	room.Start(cfg)    // config struct
func Start(args ...any) (*Room, error) {
	cfg := share.Overload(args, DefaultConfig())
	return build(cfg)
}

// StartWith builds a Room from functional options only. EXPERIMENTAL path.
func StartWith(opts ...share.Option[Config]) (*Room, error) {
	cfg := DefaultConfig()
	share.ApplyOptions(&cfg, opts...)
	return build(cfg)
}

func build(cfg Config) (*Room, error) {
	// When Screens is set, the screen.Adapter's Init hook (registered
	// below) activates InitialScreen during Boot and swaps in its layout
	// before the bootstrap render runs (§4.6). The solver handed to
	// runtime.New here serves the initial solve and every render and resize
	// until a screen is activated; with no Solver configured, an empty layout
	// stands in.
	solver := cfg.Solver
	if solver == nil {
		solver = zone.SolverFunc(func(zone.Size) (map[zone.ID]zone.Rect, error) {
			return map[zone.ID]zone.Rect{}, nil
		})
	}

	coord, err := runtime.New(solver, cfg.Runtime)
	if err != nil {
		return nil, err
	}

	if cfg.Screens != nil {
		coord.RegisterPlugin(screen.NewAdapter(cfg.Screens, cfg.InitialScreen), screenPluginPriority)
	}
	for _, pr := range cfg.Plugins {
		coord.RegisterPlugin(pr.Plugin, pr.Priority)
	}

	return &Room{Coordinator: coord, cfg: cfg}, nil
}

// RunInteractive bootstraps the room against drv and blocks running its
// event loop until the coordinator reaches a terminal state, a driver
// error occurs, or the process is interrupted (§6.1). It always calls
// drv.Finalize before returning, even on error.
func (r *Room) RunInteractive(drv *driver.Terminal, controls *runtime.BootstrapControls) error {
	size, err := drv.Bootstrap()
	defer drv.Finalize()
	if err != nil {
		return err
	}

	if err := r.Coordinator.Bootstrap(size, drv.Sink(), controls); err != nil {
		return err
	}
	return drv.Run(r.Coordinator)
}

// Builder provides a fluent DSL over Config. HARDCORE path:
//
//	room.New().TickInterval(100*time.Millisecond).Start()
type Builder struct {
	cfg Config
}

// New creates a Builder with default configuration.
func New() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// TickInterval sets the informative tick cadence.
func (b *Builder) TickInterval(d time.Duration) *Builder {
	b.cfg.Runtime.TickInterval = d
	return b
}

// DefaultFocusZone sets the zone focused right after Boot.
func (b *Builder) DefaultFocusZone(id zone.ID) *Builder {
	b.cfg.Runtime.DefaultFocusZone = &id
	return b
}

// LoopIterationLimit caps loop iterations across all loop modes.
func (b *Builder) LoopIterationLimit(n uint64) *Builder {
	b.cfg.Runtime.LoopIterationLimit = &n
	return b
}

// Solver sets the initial layout solver.
func (b *Builder) Solver(solver zone.Solver) *Builder {
	b.cfg.Solver = solver
	return b
}

// Screens registers mgr as the screen manager, activating initial during
// Boot if non-nil.
func (b *Builder) Screens(mgr *screen.Manager, initial *screen.ID) *Builder {
	b.cfg.Screens = mgr
	b.cfg.InitialScreen = initial
	return b
}

// Plugin registers p at priority.
func (b *Builder) Plugin(p plugin.Plugin, priority int) *Builder {
	b.cfg.Plugins = append(b.cfg.Plugins, PluginRegistration{Plugin: p, Priority: priority})
	return b
}

// Start builds the configured Room.
func (b *Builder) Start() (*Room, error) {
	return build(b.cfg)
}
