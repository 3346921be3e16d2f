package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oodx/room/focus"
	"github.com/oodx/room/zone"
)

type bufSink struct {
	buf     bytes.Buffer
	flushed bool
	failOn  int // write call index to fail on, 0 disables
	calls   int
}

func (b *bufSink) Write(p []byte) (int, error) {
	b.calls++
	if b.failOn != 0 && b.calls == b.failOn {
		return 0, errors.New("boom")
	}
	return b.buf.Write(p)
}

func (b *bufSink) Flush() error {
	b.flushed = true
	return nil
}

func dirtyFrom(r *zone.Registry) []zone.State {
	return r.IterDirty()
}

func TestRenderPadsToWidth(t *testing.T) {
	r := zone.New()
	r.ApplyLayout(map[zone.ID]zone.Rect{"prompt": {X: 0, Y: 0, Width: 10, Height: 1}})
	require.NoError(t, r.SetZone("prompt", []string{"hello"}, false))

	sink := &bufSink{}
	rend := New()
	require.NoError(t, rend.Pass(sink, dirtyFrom(r), nil))

	assert.Equal(t, "\x1b[1;1Hhello     ", sink.buf.String())
	assert.True(t, sink.flushed)
}

func TestRenderClampsOverflow(t *testing.T) {
	r := zone.New()
	r.ApplyLayout(map[zone.ID]zone.Rect{"prompt": {X: 0, Y: 0, Width: 5, Height: 1}})
	require.NoError(t, r.SetZone("prompt", []string{"hello world"}, false))

	sink := &bufSink{}
	require.NoError(t, New().Pass(sink, dirtyFrom(r), nil))
	assert.Equal(t, "\x1b[1;1Hhello", sink.buf.String())
}

func TestRenderPadsShortContentRows(t *testing.T) {
	r := zone.New()
	r.ApplyLayout(map[zone.ID]zone.Rect{"box": {X: 0, Y: 0, Width: 3, Height: 2}})
	require.NoError(t, r.SetZone("box", []string{"hi"}, false))

	sink := &bufSink{}
	require.NoError(t, New().Pass(sink, dirtyFrom(r), nil))
	assert.Equal(t, "\x1b[1;1Hhi \x1b[2;1H   ", sink.buf.String())
}

func TestRenderCursorHint(t *testing.T) {
	sink := &bufSink{}
	hint := &focus.Cursor{Row: 2, Col: 4, Visible: true}
	require.NoError(t, New().Pass(sink, nil, hint))
	assert.Equal(t, "\x1b[3;5H\x1b[?25h", sink.buf.String())
}

func TestRenderAbortsOnWriteFailure(t *testing.T) {
	r := zone.New()
	r.ApplyLayout(map[zone.ID]zone.Rect{"a": {X: 0, Y: 0, Width: 3, Height: 1}})
	require.NoError(t, r.SetZone("a", []string{"x"}, false))

	sink := &bufSink{failOn: 1}
	err := New().Pass(sink, dirtyFrom(r), nil)
	assert.Error(t, err)
	assert.False(t, sink.flushed, "a failed pass must not flush")
}

func TestRenderEmptyRectProducesNoBytes(t *testing.T) {
	r := zone.New()
	r.ApplyLayout(map[zone.ID]zone.Rect{})
	sink := &bufSink{}
	require.NoError(t, New().Pass(sink, dirtyFrom(r), nil))
	assert.Empty(t, sink.buf.Bytes())
	assert.True(t, sink.flushed)
}

func TestRenderPreRenderedPreservesANSI(t *testing.T) {
	r := zone.New()
	r.ApplyLayout(map[zone.ID]zone.Rect{"a": {X: 0, Y: 0, Width: 6, Height: 1}})
	colored := "\x1b[31mhi\x1b[0m"
	require.NoError(t, r.SetZone("a", []string{colored}, true))

	sink := &bufSink{}
	require.NoError(t, New().Pass(sink, dirtyFrom(r), nil))
	out := sink.buf.String()
	assert.Contains(t, out, "\x1b[31m")
	assert.Contains(t, out, "hi")
}
