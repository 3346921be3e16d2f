package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oodx/room/event"
	"github.com/oodx/room/plugin"
	"github.com/oodx/room/screen"
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

func gridSolver(size zone.Size) (map[zone.ID]zone.Rect, error) {
	return map[zone.ID]zone.Rect{
		"main": {X: 0, Y: 0, Width: size.Width, Height: size.Height},
	}, nil
}

func TestStartZeroConfigBootstraps(t *testing.T) {
	r, err := Start()
	require.NoError(t, err)
	require.NotNil(t, r.Coordinator)

	sink := &bufSink{}
	require.NoError(t, r.Coordinator.Bootstrap(zone.Size{Width: 10, Height: 5}, sink, nil))
}

func TestStartWithSolverAndPluginWires(t *testing.T) {
	var onEventCalls int
	p := &recordingEventPlugin{onEvent: func() { onEventCalls++ }}

	r, err := StartWith(
		WithSolver(zone.SolverFunc(gridSolver)),
		WithPlugin(p, 0),
	)
	require.NoError(t, err)

	sink := &bufSink{}
	require.NoError(t, r.Coordinator.Bootstrap(zone.Size{Width: 20, Height: 10}, sink, nil))
	require.NoError(t, r.Coordinator.Step(event.NewKey('x', 0), sink))

	assert.Equal(t, 1, onEventCalls)
}

func TestBuilderFluentPathAppliesOptions(t *testing.T) {
	r, err := New().
		Solver(zone.SolverFunc(gridSolver)).
		TickInterval(5 * time.Millisecond).
		LoopIterationLimit(100).
		Start()
	require.NoError(t, err)
	require.NotNil(t, r.Coordinator)
}

func TestStartWithScreensActivatesInitialScreenDuringBootstrap(t *testing.T) {
	mgr := screen.New()
	mgr.Register(screen.Definition{ID: "home", Strategy: screen.NewLegacyStrategy(zone.SolverFunc(gridSolver))})
	initial := screen.ID("home")

	r, err := StartWith(WithScreens(mgr, &initial))
	require.NoError(t, err)

	sink := &bufSink{}
	require.NoError(t, r.Coordinator.Bootstrap(zone.Size{Width: 10, Height: 5}, sink, nil))
	assert.Equal(t, screen.ID("home"), *mgr.ActiveID())
}

func TestConfigStructPathMatchesOptionsPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver = zone.SolverFunc(gridSolver)

	r, err := Start(cfg)
	require.NoError(t, err)

	sink := &bufSink{}
	require.NoError(t, r.Coordinator.Bootstrap(zone.Size{Width: 8, Height: 4}, sink, nil))
}

type recordingEventPlugin struct {
	onEvent func()
}

func (p *recordingEventPlugin) OnEvent(ctx plugin.RuntimeContext, evt event.Event) (event.Flow, error) {
	p.onEvent()
	return event.NotConsumed, nil
}
