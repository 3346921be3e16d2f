// Package layout holds the external layout solver contract (§6.2) and a
// couple of reference solvers used in tests and simple callers. The
// contract itself is zone.Solver; this package exists so callers have a
// home for concrete solvers distinct from the zone registry that consumes
// them.
package layout

import (
	"fmt"

	"github.com/oodx/room/zone"
)

// Solver and SolverFunc are the same contract zone.Registry.ApplyLayout
// consumes; re-exported here so callers writing solvers do not need to
// import the zone package just for the function type.
type Solver = zone.Solver
type SolverFunc = zone.SolverFunc

// ErrOutOfBounds is returned by solvers in this package when a rect would
// not fit inside the requested size (§6.2: "rectangles must lie within
// size").
var ErrOutOfBounds = fmt.Errorf("layout: rect out of bounds")

// Static returns a solver that always yields the same rects regardless of
// size, validating that every rect fits within whatever size it is asked to
// solve for. Useful for fixed-layout screens and for tests.
func Static(rects map[zone.ID]zone.Rect) zone.SolverFunc {
	frozen := make(map[zone.ID]zone.Rect, len(rects))
	for id, r := range rects {
		frozen[id] = r
	}
	return func(size zone.Size) (map[zone.ID]zone.Rect, error) {
		out := make(map[zone.ID]zone.Rect, len(frozen))
		for id, r := range frozen {
			if !r.Contains(size) {
				return nil, fmt.Errorf("layout: zone %q: %w", id, ErrOutOfBounds)
			}
			out[id] = r
		}
		return out, nil
	}
}

// SingleColumn stacks zones top to bottom in the given order, each
// full-width and heights proportional to weight (weights need not sum to
// anything in particular; they are normalized against size.Height).
func SingleColumn(order []zone.ID, weights map[zone.ID]int) zone.SolverFunc {
	return func(size zone.Size) (map[zone.ID]zone.Rect, error) {
		if size.Empty() || len(order) == 0 {
			return map[zone.ID]zone.Rect{}, nil
		}
		total := 0
		for _, id := range order {
			total += weights[id]
		}
		if total == 0 {
			total = len(order)
		}

		out := make(map[zone.ID]zone.Rect, len(order))
		var y uint16
		remaining := size.Height
		for i, id := range order {
			w := weights[id]
			if w == 0 {
				w = 1
			}
			var height uint16
			if i == len(order)-1 {
				height = remaining
			} else {
				height = uint16(int(size.Height) * w / total)
				if height > remaining {
					height = remaining
				}
			}
			out[id] = zone.Rect{X: 0, Y: y, Width: size.Width, Height: height}
			y += height
			remaining -= height
		}
		return out, nil
	}
}
