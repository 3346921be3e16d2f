package driver

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/oodx/room/event"
	"github.com/oodx/room/internal/share"
	"github.com/oodx/room/render"
	"github.com/oodx/room/runtime"
	"github.com/oodx/room/terminal"
	"github.com/oodx/room/zone"
	"golang.org/x/term"
)

// Options configures a Terminal driver at construction.
type Options struct {
	// TickInterval, when non-zero, drives a synthetic Tick event on that
	// cadence alongside key input (§6.3 "informative tick cadence").
	TickInterval time.Duration
}

// WithTickInterval enables the driver's tick producer.
func WithTickInterval(d time.Duration) share.Option[Options] {
	return func(o *Options) { o.TickInterval = d }
}

// Terminal is the reference interactive driver (§6.1): it owns stdin/stdout,
// puts the terminal into raw mode, and feeds coordinator.Step one event at a
// time from a single blocking loop (§5 "a driver owns the blocking wait").
type Terminal struct {
	in  *os.File
	out *os.File

	opts Options

	reader  *keyReader
	signals *terminal.SignalHandler

	rawState *term.State
	sink     render.Sink

	events chan driverEvent
}

type driverEvent struct {
	evt event.Event
	err error
}

// New builds a Terminal driver over the given in/out files (typically
// os.Stdin/os.Stdout).
func New(in, out *os.File, opts ...share.Option[Options]) *Terminal {
	o := Options{}
	share.ApplyOptions(&o, opts...)
	return &Terminal{
		in:      in,
		out:     out,
		opts:    o,
		reader:  newKeyReader(in),
		signals: terminal.NewSignalHandler(),
		sink:    &fileSink{f: out},
		events:  make(chan driverEvent, 1),
	}
}

// Sink returns the render.Sink this driver writes rendered bytes to.
func (t *Terminal) Sink() render.Sink {
	return t.sink
}

// Size reads the current terminal size.
func (t *Terminal) Size() (zone.Size, error) {
	cols, rows, err := terminal.GetSize()
	if err != nil {
		return zone.Size{}, err
	}
	if cols < 0 || rows < 0 {
		return zone.Size{}, fmt.Errorf("driver: negative terminal size %dx%d", cols, rows)
	}
	return zone.Size{Width: uint16(cols), Height: uint16(rows)}, nil
}

// Bootstrap enables raw mode and reads the initial terminal size, ready for
// the coordinator's own Bootstrap call.
func (t *Terminal) Bootstrap() (zone.Size, error) {
	state, err := terminal.MakeRaw(t.in.Fd())
	if err != nil {
		return zone.Size{}, fmt.Errorf("driver: enable raw mode: %w", err)
	}
	t.rawState = state
	return t.Size()
}

// Finalize restores the terminal to its original mode. The coordinator's
// own fatal/graceful teardown already resets cursor visibility and focus;
// this only undoes what Bootstrap changed at the OS level (§4.7 "the driver
// observes these and restores terminal modes").
func (t *Terminal) Finalize() error {
	if t.rawState == nil {
		return nil
	}
	err := terminal.RestoreTerminal(t.in.Fd(), t.rawState)
	t.rawState = nil
	return err
}

// Run blocks, feeding key/resize/tick events to coord.Step until the
// coordinator reaches a terminal state or the key producer hits an error
// (typically EOF on stdin).
func (t *Terminal) Run(coord *runtime.Coordinator) error {
	stop := make(chan struct{})
	defer close(stop)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go t.produceKeys(stop)
	go t.produceResizes(stop)
	if t.opts.TickInterval > 0 {
		go t.produceTicks(stop)
	}
	go t.signals.Listen(ctx)

	for {
		de := <-t.events
		if de.err != nil {
			return de.err
		}
		if err := coord.Step(de.evt, t.sink); err != nil {
			return err
		}
		if coord.State().Terminal() {
			return nil
		}
	}
}

func (t *Terminal) produceKeys(stop <-chan struct{}) {
	for {
		evt, err := t.reader.ReadKey()
		select {
		case t.events <- driverEvent{evt: evt, err: err}:
		case <-stop:
			return
		}
		if err != nil {
			return
		}
	}
}

func (t *Terminal) produceResizes(stop <-chan struct{}) {
	t.signals.OnResize(func() {
		size, err := t.Size()
		if err != nil {
			return
		}
		select {
		case t.events <- driverEvent{evt: event.NewResize(size)}:
		case <-stop:
		}
	})
	t.signals.OnStop(func() {
		select {
		case t.events <- driverEvent{err: errInterrupted}:
		case <-stop:
		}
	})
}

func (t *Terminal) produceTicks(stop <-chan struct{}) {
	ticker := time.NewTicker(t.opts.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			select {
			case t.events <- driverEvent{evt: event.NewTick(now)}:
			case <-stop:
				return
			}
		case <-stop:
			return
		}
	}
}

// fileSink adapts an *os.File to render.Sink. Terminal output is written
// unbuffered, so Flush has nothing to do (matching the teacher's own
// TerminalWriter.Flush no-op).
type fileSink struct {
	f *os.File
}

func (s *fileSink) Write(p []byte) (int, error) { return s.f.Write(p) }
func (s *fileSink) Flush() error                { return nil }
