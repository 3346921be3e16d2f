package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oodx/room/zone"
)

func TestStaticSolverReturnsFrozenRects(t *testing.T) {
	s := Static(map[zone.ID]zone.Rect{
		"prompt": {X: 0, Y: 0, Width: 10, Height: 1},
	})

	rects, err := s.Solve(zone.Size{Width: 80, Height: 24})
	require.NoError(t, err)
	assert.Equal(t, zone.Rect{X: 0, Y: 0, Width: 10, Height: 1}, rects["prompt"])
}

func TestStaticSolverRejectsOutOfBounds(t *testing.T) {
	s := Static(map[zone.ID]zone.Rect{
		"prompt": {X: 0, Y: 0, Width: 100, Height: 1},
	})

	_, err := s.Solve(zone.Size{Width: 80, Height: 24})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestSingleColumnStacksTopToBottom(t *testing.T) {
	s := SingleColumn([]zone.ID{"header", "body"}, map[zone.ID]int{"header": 1, "body": 3})

	rects, err := s.Solve(zone.Size{Width: 80, Height: 20})
	require.NoError(t, err)

	header := rects["header"]
	body := rects["body"]
	assert.Equal(t, uint16(0), header.Y)
	assert.Equal(t, header.Y+header.Height, body.Y)
	assert.Equal(t, uint16(20), header.Height+body.Height)
}

func TestSingleColumnEmptySize(t *testing.T) {
	s := SingleColumn([]zone.ID{"a"}, nil)
	rects, err := s.Solve(zone.Size{})
	require.NoError(t, err)
	assert.Empty(t, rects)
}
