// Package runtime implements the runtime coordinator (C7): the lifecycle
// state machine that wires together the zone registry, diff renderer,
// plugin pipeline, focus/cursor substrate, and audit bus into a single
// cooperative event loop (§4.7).
package runtime

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/oodx/room/audit"
	"github.com/oodx/room/event"
	"github.com/oodx/room/focus"
	"github.com/oodx/room/plugin"
	"github.com/oodx/room/render"
	"github.com/oodx/room/resources"
	"github.com/oodx/room/rterr"
	"github.com/oodx/room/zone"
)

// Coordinator is the C7 runtime: single-threaded and cooperative (§5).
// Every exported method except the constructors must be called from the
// same goroutine; there is no internal synchronization because the spec
// guarantees the coordinator never runs concurrently with itself.
type Coordinator struct {
	cfg RuntimeConfig

	zones  *zone.Registry
	solver zone.Solver
	size   zone.Size

	focusMgr *focus.Manager
	focusCtl *focus.Controller

	resources *resources.Map

	plugins  *plugin.Registry
	pipeline *plugin.Pipeline

	auditBus  *audit.Bus
	auditGate *audit.BootstrapAudit

	renderer *render.Renderer

	state          State
	shouldExit     bool
	iteration      uint64
	userReadyFired bool
	bootstrapped   bool
	startedAt      time.Time

	cursorHint    *focus.Cursor
	prevCursor    *focus.Cursor
	pendingRender bool
	raised        *rterr.RuntimeError
	loopAborted   bool
}

// New builds a Coordinator over solver with cfg, ready for Bootstrap.
func New(solver zone.Solver, cfg RuntimeConfig) (*Coordinator, error) {
	c := &Coordinator{
		cfg:       cfg,
		zones:     zone.New(),
		solver:    solver,
		resources: resources.New(),
		plugins:   plugin.NewRegistry(),
		auditBus:  audit.NewBus(),
		renderer:  render.New(),
		state:     StateInit,
	}
	c.focusMgr = focus.NewManager()
	c.focusCtl = focus.NewController(c.focusMgr, uuid.NewString())
	_ = resources.Insert(c.resources, c.focusMgr)
	c.pipeline = plugin.New(c.plugins)
	// FatalCleanup releases the gate so a fatal before UserReady still
	// flushes every buffered record to the sinks.
	c.auditGate = audit.NewBootstrapAudit(c.auditBus, FatalCleanup)
	return c, nil
}

// RegisterPlugin adds p to the plugin pipeline at priority.
func (c *Coordinator) RegisterPlugin(p plugin.Plugin, priority int) {
	c.plugins.Register(p, priority)
}

// RegisterAuditSink adds sink to the audit bus.
func (c *Coordinator) RegisterAuditSink(sink audit.Sink) {
	c.auditBus.Register(sink)
}

// State returns the coordinator's current lifecycle state.
func (c *Coordinator) State() State {
	return c.state
}

// emit routes (stage, fields) through the bootstrap gate, which buffers
// until UserReady and then passes through (§4.4).
func (c *Coordinator) emit(stage Stage, fields audit.Fields) {
	_ = c.auditGate.Emit(audit.Stage(stage), fields)
}

// Stage is an alias so callers of this package don't need to import audit
// just to name a stage when asserting against a test sink.
type Stage = audit.Stage

func (c *Coordinator) transition(to State) {
	c.state = to
}

// Bootstrap runs the bootstrap algorithm (§4.7): Open, initial layout
// solve, Boot (init hooks), default focus, Setup (bootstrap controls),
// then a forced render that latches UserReady on success.
func (c *Coordinator) Bootstrap(size zone.Size, sink render.Sink, controls *BootstrapControls) error {
	if c.bootstrapped {
		return ErrAlreadyBootstrapped
	}
	c.bootstrapped = true
	c.startedAt = time.Now()
	c.size = size

	c.transition(StateOpen)
	c.emit(Open, audit.NewFields())

	solved, err := c.solver.Solve(size)
	if err != nil {
		return c.fail(rterr.Wrap(rterr.CategoryLayout, "bootstrap", err), sink)
	}
	c.zones.ApplyLayout(solved)

	c.transition(StateBoot)
	c.emit(Boot, audit.NewFields())
	if err := c.pipeline.Init(c); err != nil {
		return c.fail(rterr.Wrap(rterr.CategoryPlugin, "init", err), sink)
	}
	if err := c.pipeline.Boot(c); err != nil {
		return c.fail(rterr.Wrap(rterr.CategoryPlugin, "on_boot", err), sink)
	}

	if c.cfg.DefaultFocusZone != nil {
		prev := c.focusCtl.Focus(*c.cfg.DefaultFocusZone, "")
		c.emitFocusChanged(prev)
	}

	c.transition(StateSetup)
	c.emit(Setup, audit.NewFields())
	if controls != nil {
		if err := c.runBootstrapControls(controls, sink); err != nil {
			return c.fail(rterr.Wrap(rterr.CategoryPlugin, "bootstrap_controls", err), sink)
		}
	}

	renderSink := sink
	if controls != nil && controls.CaptureFirstFrame != nil {
		renderSink = &teeSink{Sink: sink, tee: controls.CaptureFirstFrame}
	}
	if err := c.renderPass(renderSink); err != nil {
		return c.fail(rterr.Wrap(rterr.CategoryRender, "bootstrap_render", err), sink)
	}
	if err := c.latchUserReady(); err != nil {
		return c.fail(rterr.Wrap(rterr.CategoryPlugin, "on_user_ready", err), sink)
	}

	c.transition(StateLoop)
	return nil
}

func (c *Coordinator) runBootstrapControls(controls *BootstrapControls, sink render.Sink) error {
	for i := uint64(0); i < controls.PumpTicks; i++ {
		if _, err := c.runEvent(event.NewTick(time.Now()), sink); err != nil {
			return err
		}
	}
	return nil
}

func (c *Coordinator) latchUserReady() error {
	if c.userReadyFired {
		return nil
	}
	c.userReadyFired = true
	c.emit(UserReady, audit.NewFields())
	return c.pipeline.UserReady(c)
}

// teeSink mirrors every write to tee in addition to the real sink, used to
// satisfy BootstrapControls.CaptureFirstFrame without the renderer needing
// to know about capture at all.
type teeSink struct {
	render.Sink
	tee *bytes.Buffer
}

func (t *teeSink) Write(p []byte) (int, error) {
	t.tee.Write(p)
	return t.Sink.Write(p)
}

// Step feeds a single event through the coordinator (§6.1 interactive
// mode). Resize events reshape the layout; all other events run the normal
// plugin dispatch + render cycle. should_exit, once set by any plugin, is
// honored after this event fully drains.
func (c *Coordinator) Step(evt event.Event, sink render.Sink) error {
	if !c.bootstrapped {
		return ErrNotBootstrapped
	}
	if c.state.Terminal() {
		return ErrTerminated
	}

	if evt.Kind == event.ResizeKind {
		if err := c.handleResize(evt, sink); err != nil {
			return err
		}
	} else {
		if _, rerr := c.runEvent(evt, sink); rerr != nil {
			if rerr == errLoopGuard {
				c.loopAborted = true
				return c.teardown(sink)
			}
			return c.fail(rerr, sink)
		}
	}

	if c.shouldExit {
		return c.teardown(sink)
	}
	return nil
}

func (c *Coordinator) handleResize(evt event.Event, sink render.Sink) error {
	solved, err := c.solver.Solve(evt.Size)
	if err != nil {
		rerr := rterr.Wrap(rterr.CategoryLayout, "resize", err)
		c.offerRecovery(rerr)
		if rerr.Recoverable {
			return nil
		}
		return c.fail(rerr, sink)
	}
	c.size = evt.Size
	c.zones.ApplyLayout(solved)
	c.zones.MarkAllDirty()

	if _, rerr := c.runEvent(evt, sink); rerr != nil {
		if rerr == errLoopGuard {
			c.loopAborted = true
			return c.teardown(sink)
		}
		return c.fail(rerr, sink)
	}
	return nil
}

// runEvent is the shared per-event cycle: LoopIn, plugin dispatch, a render
// pass, LoopOut. Both Step and the bootstrap tick pump and simulated mode
// funnel through this so the bookend/iteration-count invariants hold
// everywhere an event is processed (§8). Any error is fully resolved
// through Error/RecoverOrFatal before it returns: a non-nil *rterr.RuntimeError
// result always has Recoverable == false (the caller's only remaining job is
// to enter the fatal path), and errLoopGuard is returned verbatim as a
// sentinel distinct from a RuntimeError.
func (c *Coordinator) runEvent(evt event.Event, sink render.Sink) (event.Flow, *rterr.RuntimeError) {
	if limit := c.cfg.LoopIterationLimit; limit != nil && c.iteration >= *limit {
		c.emit(LoopGuardTriggered, audit.NewFields("iteration", c.iteration))
		c.emit(LoopAborted, audit.NewFields())
		return event.NotConsumed, errLoopGuard
	}

	c.iteration++
	fields := func(flow event.Flow) audit.Fields {
		return audit.NewFields("event", string(evt.Kind), "iteration", c.iteration, "consumed", flow == event.Consumed)
	}
	c.emit(LoopIn, audit.NewFields("event", string(evt.Kind), "iteration", c.iteration))

	flow, err := c.pipeline.Dispatch(c, evt)
	if err != nil {
		rerr := c.resolveError(rterr.Wrap(rterr.CategoryPlugin, "on_event", err))
		c.emit(LoopOut, fields(flow))
		if rerr.Recoverable {
			return flow, nil
		}
		return flow, rerr
	}

	if raised := c.raised; raised != nil {
		c.raised = nil
		rerr := c.resolveError(raised)
		if !rerr.Recoverable {
			c.emit(LoopOut, fields(flow))
			return flow, rerr
		}
	}

	if rerr := c.renderIfNeeded(sink); rerr != nil {
		c.emit(LoopOut, fields(flow))
		return flow, rerr
	}

	c.emit(LoopOut, fields(flow))
	return flow, nil
}

// resolveError emits Error, offers the error to on_error hooks, and returns
// it with Recoverable reflecting whatever those hooks decided.
func (c *Coordinator) resolveError(rerr *rterr.RuntimeError) *rterr.RuntimeError {
	c.emit(Error, audit.NewFields("error", errorFields(rerr)))
	c.offerRecovery(rerr)
	return rerr
}

func (c *Coordinator) offerRecovery(rerr *rterr.RuntimeError) {
	c.emit(RecoverOrFatal, audit.NewFields("error", errorFields(rerr)))
	_ = c.pipeline.RecoverOrFatal(c, rerr)
}

// renderIfNeeded runs before_render, the diff pass, and after_render, then
// marks every rendered zone clean. It latches UserReady exactly once
// regardless of whether any zone was actually dirty (§4.7). A render/IO
// failure is resolved through the same Error/RecoverOrFatal path as any
// other runtime error (§7: fatal by default, unless a hook overrides it).
func (c *Coordinator) renderIfNeeded(sink render.Sink) *rterr.RuntimeError {
	if err := c.renderPass(sink); err != nil {
		rerr := c.resolveError(rterr.Wrap(rterr.CategoryRender, "render_pass", err))
		if rerr.Recoverable {
			return nil
		}
		return rerr
	}
	if err := c.latchUserReady(); err != nil {
		rerr := c.resolveError(rterr.Wrap(rterr.CategoryPlugin, "on_user_ready", err))
		if rerr.Recoverable {
			return nil
		}
		return rerr
	}
	return nil
}

func (c *Coordinator) renderPass(sink render.Sink) error {
	if err := c.pipeline.BeforeRender(c); err != nil {
		return err
	}

	dirty := c.zones.IterDirty()
	hint := c.cursorHint
	if err := c.renderer.Pass(sink, dirty, hint); err != nil {
		return err
	}
	for _, z := range dirty {
		c.zones.MarkClean(z.ID, z.ContentHash)
	}

	if err := c.pipeline.AfterRender(c); err != nil {
		return err
	}
	return nil
}

// fail drives the fatal path: Fatal, FatalCleanup (restore cursor/focus,
// flush audit), FatalClose (§4.7, §7).
func (c *Coordinator) fail(rerr *rterr.RuntimeError, sink render.Sink) error {
	c.transition(StateFatal)
	c.emit(Fatal, audit.NewFields("error", errorFields(rerr)))

	c.transition(StateFatalCleanup)
	c.emit(FatalCleanup, audit.NewFields())
	// should_exit set during FatalCleanup has no effect: the fatal path
	// always wins once entered (§12.4).
	c.shouldExit = false
	c.cursorHint = &focus.Cursor{Visible: true}
	c.focusCtl.Release()
	if sink != nil {
		_ = c.renderer.Pass(sink, nil, c.cursorHint)
	}

	c.transition(StateFatalClose)
	c.emit(FatalClose, audit.NewFields("uptime_ms", c.uptimeMS()))
	return rerr
}

// teardown drives the graceful path: UserEnd, Cleanup, End, Close (§4.7).
func (c *Coordinator) teardown(sink render.Sink) error {
	c.transition(StateUserEnd)
	c.emit(UserEnd, audit.NewFields())
	if err := c.pipeline.UserEnd(c); err != nil {
		return c.fail(rterr.Wrap(rterr.CategoryPlugin, "on_user_end", err), sink)
	}

	c.transition(StateCleanup)
	c.emit(Cleanup, audit.NewFields())
	c.cursorHint = &focus.Cursor{Visible: true}
	c.focusCtl.Release()
	if sink != nil {
		_ = c.renderer.Pass(sink, nil, c.cursorHint)
	}

	c.transition(StateEnd)
	c.emit(End, audit.NewFields())

	c.transition(StateClose)
	c.emit(Close, audit.NewFields("uptime_ms", c.uptimeMS()))
	return nil
}

func (c *Coordinator) uptimeMS() int64 {
	return time.Since(c.startedAt).Milliseconds()
}

func (c *Coordinator) emitFocusChanged(prev *focus.Target) {
	var from, to *string
	if prev != nil {
		s := string(prev.Zone)
		from = &s
	}
	if cur := c.focusMgr.Current(); cur != nil {
		s := string(cur.Zone)
		to = &s
	}
	f := audit.NewFields()
	if from != nil {
		f.Set("from", *from)
	}
	if to != nil {
		f.Set("to", *to)
	}
	c.emit(FocusChanged, f)
	_ = c.pipeline.FocusChanged(c, from, to)
}

func errorFields(rerr *rterr.RuntimeError) audit.Fields {
	return audit.NewFields(
		"category", string(rerr.Category),
		"source", rerr.Source,
		"message", rerr.Message,
		"recoverable", rerr.Recoverable,
	)
}

// errLoopGuard is a sentinel *rterr.RuntimeError identified by pointer
// equality: runEvent returns exactly this value (never a copy) when the
// iteration cap trips, so callers can distinguish "loop guard" from any
// other fatal RuntimeError without inspecting its fields.
var errLoopGuard = &rterr.RuntimeError{
	Category: rterr.CategoryState,
	Source:   "loop_guard",
	Message:  "loop iteration limit reached",
}
