package runtime

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oodx/room/audit"
	"github.com/oodx/room/event"
	"github.com/oodx/room/focus"
	"github.com/oodx/room/plugin"
	"github.com/oodx/room/rterr"
	"github.com/oodx/room/zone"
)

type bufSink struct {
	data []byte
}

func (s *bufSink) Write(p []byte) (int, error) {
	s.data = append(s.data, p...)
	return len(p), nil
}

func (s *bufSink) Flush() error { return nil }

func staticSolver(size zone.Size) (map[zone.ID]zone.Rect, error) {
	return map[zone.ID]zone.Rect{
		"main": {X: 0, Y: 0, Width: size.Width, Height: size.Height},
	}, nil
}

func newCoordinator(t *testing.T) *Coordinator {
	t.Helper()
	c, err := New(zone.SolverFunc(staticSolver), DefaultRuntimeConfig())
	require.NoError(t, err)
	return c
}

func stagesOf(recs []audit.Record) []audit.Stage {
	out := make([]audit.Stage, len(recs))
	for i, r := range recs {
		out[i] = r.Stage
	}
	return out
}

type recordingSink struct {
	records []audit.Record
}

func (r *recordingSink) Emit(rec audit.Record) error {
	r.records = append(r.records, rec)
	return nil
}

type hookPlugin struct {
	onEvent     func(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error)
	onUserEnd   func(ctx plugin.RuntimeContext) error
	onBoot      func(ctx plugin.RuntimeContext) error
	onUserReady func(ctx plugin.RuntimeContext) error
}

func (p *hookPlugin) OnEvent(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error) {
	if p.onEvent == nil {
		return event.NotConsumed, nil
	}
	return p.onEvent(ctx, evt)
}

func (p *hookPlugin) OnUserEnd(ctx plugin.RuntimeContext) error {
	if p.onUserEnd == nil {
		return nil
	}
	return p.onUserEnd(ctx)
}

func (p *hookPlugin) OnBoot(ctx plugin.RuntimeContext) error {
	if p.onBoot == nil {
		return nil
	}
	return p.onBoot(ctx)
}

func (p *hookPlugin) OnUserReady(ctx plugin.RuntimeContext) error {
	if p.onUserReady == nil {
		return nil
	}
	return p.onUserReady(ctx)
}

func TestBootstrapEmitsStagesInOrderAfterUserReadyReleases(t *testing.T) {
	c := newCoordinator(t)
	bus := &recordingSink{}
	c.RegisterAuditSink(bus)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))

	assert.Equal(t, StateLoop, c.State())
	assert.Equal(t, []audit.Stage{Open, Boot, Setup, UserReady}, stagesOf(bus.records))
}

func TestBootstrapTwiceReturnsErrAlreadyBootstrapped(t *testing.T) {
	c := newCoordinator(t)
	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	assert.ErrorIs(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil), ErrAlreadyBootstrapped)
}

func TestStepBeforeBootstrapReturnsErrNotBootstrapped(t *testing.T) {
	c := newCoordinator(t)
	assert.ErrorIs(t, c.Step(event.NewKey('x', 0), &bufSink{}), ErrNotBootstrapped)
}

func TestStepDispatchesToRegisteredPlugin(t *testing.T) {
	c := newCoordinator(t)
	var seen []event.Event
	c.RegisterPlugin(&hookPlugin{onEvent: func(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error) {
		seen = append(seen, evt)
		return event.NotConsumed, nil
	}}, 0)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	require.NoError(t, c.Step(event.NewKey('a', 0), &bufSink{}))

	require.Len(t, seen, 1)
	assert.Equal(t, 'a', seen[0].Key.Code)
}

func TestStepStopsDispatchAtFirstConsumer(t *testing.T) {
	c := newCoordinator(t)
	var secondCalled bool
	c.RegisterPlugin(&hookPlugin{onEvent: func(plugin.RuntimeContext, event.Event) (event.Flow, error) {
		return event.Consumed, nil
	}}, 0)
	c.RegisterPlugin(&hookPlugin{onEvent: func(plugin.RuntimeContext, event.Event) (event.Flow, error) {
		secondCalled = true
		return event.NotConsumed, nil
	}}, 1)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	require.NoError(t, c.Step(event.NewKey('a', 0), &bufSink{}))

	assert.False(t, secondCalled)
}

func TestRequestExitTearsDownGracefullyAfterCurrentEventDrains(t *testing.T) {
	c := newCoordinator(t)
	bus := &recordingSink{}
	c.RegisterAuditSink(bus)
	c.RegisterPlugin(&hookPlugin{onEvent: func(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error) {
		ctx.RequestExit()
		return event.Consumed, nil
	}}, 0)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	require.NoError(t, c.Step(event.NewKey('q', 0), &bufSink{}))

	assert.True(t, c.State().Terminal())
	assert.Equal(t, StateClose, c.State())
	tail := stagesOf(bus.records)
	assert.Equal(t, []audit.Stage{UserEnd, Cleanup, End, Close}, tail[len(tail)-4:])
}

func TestStepAfterTerminationReturnsErrTerminated(t *testing.T) {
	c := newCoordinator(t)
	c.RegisterPlugin(&hookPlugin{onEvent: func(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error) {
		ctx.RequestExit()
		return event.Consumed, nil
	}}, 0)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	require.NoError(t, c.Step(event.NewKey('q', 0), &bufSink{}))

	assert.ErrorIs(t, c.Step(event.NewKey('x', 0), &bufSink{}), ErrTerminated)
}

func TestUnrecoverablePluginErrorEntersFatalPath(t *testing.T) {
	c := newCoordinator(t)
	bus := &recordingSink{}
	c.RegisterAuditSink(bus)
	boom := errors.New("boom")
	c.RegisterPlugin(&hookPlugin{onEvent: func(plugin.RuntimeContext, event.Event) (event.Flow, error) {
		return event.NotConsumed, boom
	}}, 0)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	err := c.Step(event.NewKey('x', 0), &bufSink{})

	require.Error(t, err)
	assert.Equal(t, StateFatalClose, c.State())
	stages := stagesOf(bus.records)
	for _, want := range []audit.Stage{Error, RecoverOrFatal, Fatal, FatalCleanup, FatalClose} {
		assert.Contains(t, stages, want)
	}
}

type recoveringErrorHandler struct{}

func (recoveringErrorHandler) OnError(ctx plugin.RuntimeContext, err *rterr.RuntimeError) error {
	err.Recoverable = true
	return nil
}

func TestErrorHandlerCanMarkRecoverable(t *testing.T) {
	c := newCoordinator(t)
	boom := errors.New("boom")
	c.RegisterPlugin(&recoveringErrorHandler{}, 0)
	c.RegisterPlugin(&hookPlugin{onEvent: func(plugin.RuntimeContext, event.Event) (event.Flow, error) {
		return event.NotConsumed, boom
	}}, 1)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	require.NoError(t, c.Step(event.NewKey('x', 0), &bufSink{}))

	assert.Equal(t, StateLoop, c.State(), "a recovered error must not enter the fatal path")
}

func TestLoopIterationLimitAbortsGracefully(t *testing.T) {
	limit := uint64(1)
	cfg := DefaultRuntimeConfig()
	cfg.LoopIterationLimit = &limit
	c, err := New(zone.SolverFunc(staticSolver), cfg)
	require.NoError(t, err)
	bus := &recordingSink{}
	c.RegisterAuditSink(bus)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	require.NoError(t, c.Step(event.NewKey('a', 0), &bufSink{}))
	require.NoError(t, c.Step(event.NewKey('b', 0), &bufSink{}))

	assert.True(t, c.State().Terminal())
	stages := stagesOf(bus.records)
	assert.Contains(t, stages, LoopGuardTriggered)
	assert.Contains(t, stages, LoopAborted)
}

func TestResizeReshapesLayoutAndMarksEverythingDirty(t *testing.T) {
	c := newCoordinator(t)
	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	require.NoError(t, c.SetZone("main", []string{"hello"}, false))

	sink := &bufSink{}
	require.NoError(t, c.Step(event.NewResize(zone.Size{Width: 20, Height: 8}), sink))

	st, ok := c.zones.Get("main")
	require.True(t, ok)
	assert.Equal(t, zone.Rect{X: 0, Y: 0, Width: 20, Height: 8}, st.Rect)
	assert.Contains(t, string(sink.data), "\x1b[1;1Hhello               ", "the resized zone is redrawn padded to the new width")
}

func TestSetCursorHintEmitsExactlyOneStagePerChange(t *testing.T) {
	c := newCoordinator(t)
	bus := &recordingSink{}
	c.RegisterAuditSink(bus)
	c.RegisterPlugin(&hookPlugin{onEvent: func(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error) {
		switch evt.Key.Code {
		case 'a':
			ctx.SetCursorHint(focus.Cursor{Row: 1, Col: 1, Visible: true})
		case 'b':
			ctx.SetCursorHint(focus.Cursor{Row: 2, Col: 1, Visible: true})
		case 'c':
			ctx.SetCursorHint(focus.Cursor{Row: 2, Col: 1, Visible: true})
		case 'd':
			ctx.SetCursorHint(focus.Cursor{Row: 2, Col: 1, Visible: false})
		}
		return event.NotConsumed, nil
	}}, 0)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	for _, code := range []rune{'a', 'b', 'c', 'd'} {
		require.NoError(t, c.Step(event.NewKey(code, 0), &bufSink{}))
	}

	var moves, shows, hides int
	for _, s := range stagesOf(bus.records) {
		switch s {
		case CursorMoved:
			moves++
		case CursorShown:
			shows++
		case CursorHidden:
			hides++
		}
	}
	// a: shown, b: moved, c: no-op (identical state, no stage emitted), d: hidden.
	assert.Equal(t, 1, shows)
	assert.Equal(t, 1, moves)
	assert.Equal(t, 1, hides)
}

func TestShouldExitDuringFatalCleanupHasNoEffect(t *testing.T) {
	c := newCoordinator(t)
	boom := errors.New("boom")
	c.RegisterPlugin(&hookPlugin{onEvent: func(plugin.RuntimeContext, event.Event) (event.Flow, error) {
		return event.NotConsumed, boom
	}}, 0)
	c.RegisterPlugin(&hookPlugin{onEvent: func(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error) {
		ctx.RequestExit()
		return event.NotConsumed, nil
	}}, 1)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	err := c.Step(event.NewKey('x', 0), &bufSink{})

	require.Error(t, err)
	assert.Equal(t, StateFatalClose, c.State(), "should_exit has no effect once the fatal path is entered")
}

func TestRunScriptedDrivesEventsToCompletion(t *testing.T) {
	c := newCoordinator(t)
	var count int
	c.RegisterPlugin(&hookPlugin{onEvent: func(plugin.RuntimeContext, event.Event) (event.Flow, error) {
		count++
		return event.NotConsumed, nil
	}}, 0)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	events := []event.Event{event.NewKey('a', 0), event.NewKey('b', 0), event.NewKey('c', 0)}
	require.NoError(t, c.RunScripted(events, &bufSink{}))

	assert.Equal(t, 3, count)
	assert.False(t, c.State().Terminal())
}

func TestRunScriptedRejectsSimulatedConfig(t *testing.T) {
	loop := SimulatedSilent(3)
	cfg := DefaultRuntimeConfig()
	cfg.SimulatedLoop = &loop
	c, err := New(zone.SolverFunc(staticSolver), cfg)
	require.NoError(t, err)
	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))

	err = c.RunScripted([]event.Event{event.NewKey('a', 0)}, &bufSink{})
	require.Error(t, err)
	var rerr *rterr.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, rterr.CategoryConfig, rerr.Category)
	assert.Equal(t, StateFatalClose, c.State())
}

func TestRunSimulatedSilentCompletesAndTearsDown(t *testing.T) {
	loop := SimulatedSilent(3)
	cfg := DefaultRuntimeConfig()
	cfg.SimulatedLoop = &loop
	c, err := New(zone.SolverFunc(staticSolver), cfg)
	require.NoError(t, err)
	bus := &recordingSink{}
	c.RegisterAuditSink(bus)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	require.NoError(t, c.RunSimulated(&bufSink{}))

	assert.Equal(t, StateClose, c.State())
	stages := stagesOf(bus.records)
	assert.Contains(t, stages, LoopSimulated)
	assert.Contains(t, stages, LoopSimulatedComplete)
	assert.NotContains(t, stages, LoopSimulatedAborted)
}

func TestRunSimulatedAbortsOnLoopGuard(t *testing.T) {
	loop := SimulatedTicks(5)
	limit := uint64(2)
	cfg := DefaultRuntimeConfig()
	cfg.SimulatedLoop = &loop
	cfg.LoopIterationLimit = &limit
	c, err := New(zone.SolverFunc(staticSolver), cfg)
	require.NoError(t, err)
	bus := &recordingSink{}
	c.RegisterAuditSink(bus)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	require.NoError(t, c.RunSimulated(&bufSink{}))

	assert.True(t, c.State().Terminal())
	stages := stagesOf(bus.records)
	assert.Contains(t, stages, LoopSimulatedAborted)
	assert.NotContains(t, stages, LoopSimulatedComplete)
}

func TestBootstrapControlsCaptureFirstFrame(t *testing.T) {
	c := newCoordinator(t)
	var buf bytes.Buffer
	sink := &bufSink{}

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, sink, &BootstrapControls{CaptureFirstFrame: &buf}))

	assert.NotEmpty(t, sink.data)
	assert.Equal(t, sink.data, buf.Bytes())
}

func TestBootstrapControlsPumpTicks(t *testing.T) {
	c := newCoordinator(t)
	var ticks int
	c.RegisterPlugin(&hookPlugin{onEvent: func(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error) {
		if evt.Kind == event.TickKind {
			ticks++
		}
		return event.NotConsumed, nil
	}}, 0)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, &BootstrapControls{PumpTicks: 3}))

	assert.Equal(t, 3, ticks)
}

func TestRunSimulatedRejectsMissingSimulatedLoop(t *testing.T) {
	c := newCoordinator(t)
	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))

	err := c.RunSimulated(&bufSink{})
	require.Error(t, err)
	var rerr *rterr.RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, rterr.CategoryConfig, rerr.Category)
	assert.Equal(t, StateFatalClose, c.State())
}

func TestBootstrapRunsOnBootAfterInit(t *testing.T) {
	c := newCoordinator(t)
	var bootCalled bool
	c.RegisterPlugin(&hookPlugin{onBoot: func(plugin.RuntimeContext) error {
		bootCalled = true
		return nil
	}}, 0)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))

	assert.True(t, bootCalled)
}

func TestBootstrapFailsWhenOnBootErrors(t *testing.T) {
	c := newCoordinator(t)
	boom := errors.New("boom")
	c.RegisterPlugin(&hookPlugin{onBoot: func(plugin.RuntimeContext) error {
		return boom
	}}, 0)

	err := c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil)

	require.Error(t, err)
	assert.Equal(t, StateFatalClose, c.State())
}

func TestBootstrapRunsOnUserReadyExactlyOnceAfterFirstRender(t *testing.T) {
	c := newCoordinator(t)
	var calls int
	c.RegisterPlugin(&hookPlugin{onUserReady: func(plugin.RuntimeContext) error {
		calls++
		return nil
	}}, 0)

	require.NoError(t, c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil))
	require.NoError(t, c.Step(event.NewKey('a', 0), &bufSink{}))
	require.NoError(t, c.Step(event.NewKey('b', 0), &bufSink{}))

	assert.Equal(t, 1, calls)
}

func TestBootstrapFailsWhenOnUserReadyErrors(t *testing.T) {
	c := newCoordinator(t)
	boom := errors.New("boom")
	c.RegisterPlugin(&hookPlugin{onUserReady: func(plugin.RuntimeContext) error {
		return boom
	}}, 0)

	err := c.Bootstrap(zone.Size{Width: 10, Height: 5}, &bufSink{}, nil)

	require.Error(t, err)
	assert.Equal(t, StateFatalClose, c.State())
}
