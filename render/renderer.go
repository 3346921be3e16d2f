// Package render implements the diff renderer (C3): it turns the zone
// registry's dirty iterator into a minimal ANSI byte stream, clamping
// content to each zone's rect and restoring the cursor hint at the end.
package render

import (
	"fmt"

	"github.com/oodx/room/focus"
	"github.com/oodx/room/zone"
)

// Renderer is deterministic and stateless: identical (dirty zones, cursor
// hint) input always produces identical byte output (§4.3).
type Renderer struct{}

// New creates a diff renderer.
func New() *Renderer {
	return &Renderer{}
}

// Pass renders every zone in dirty (already filtered to the dirty set and
// sorted ascending by id — see zone.Registry.IterDirty) to sink, then
// positions the cursor at hint (if non-nil) and flushes exactly once.
//
// If sink returns a write error at any point, Pass aborts immediately and
// returns that error; the caller must not mark any zone clean for this
// pass (§4.3, §7: "no partial clean marks are committed").
func (r *Renderer) Pass(sink Sink, dirty []zone.State, hint *focus.Cursor) error {
	for _, z := range dirty {
		if err := r.renderZone(sink, z); err != nil {
			return fmt.Errorf("render: zone %q: %w", z.ID, err)
		}
	}
	if hint != nil {
		if err := r.writeCursorHint(sink, *hint); err != nil {
			return fmt.Errorf("render: cursor hint: %w", err)
		}
	}
	if err := sink.Flush(); err != nil {
		return fmt.Errorf("render: flush: %w", err)
	}
	return nil
}

func (r *Renderer) renderZone(sink Sink, z zone.State) error {
	width := int(z.Rect.Width)
	height := int(z.Rect.Height)
	if width == 0 || height == 0 {
		return nil
	}

	for row := 0; row < height; row++ {
		if _, err := sink.Write(moveTo(int(z.Rect.Y)+row, int(z.Rect.X))); err != nil {
			return err
		}
		var line string
		if row < len(z.Content) {
			line = clampLine(z.Content[row], width, z.PreRendered)
		} else {
			line = blankLine(width)
		}
		if _, err := sink.Write([]byte(line)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) writeCursorHint(sink Sink, c focus.Cursor) error {
	if _, err := sink.Write(moveTo(c.Row, c.Col)); err != nil {
		return err
	}
	if c.Visible {
		_, err := sink.Write([]byte("\x1b[?25h"))
		return err
	}
	_, err := sink.Write([]byte("\x1b[?25l"))
	return err
}

// moveTo emits an absolute CSI cursor-position sequence for 0-based
// (row, col), converting to the 1-based coordinates CSI expects.
func moveTo(row, col int) []byte {
	return []byte(fmt.Sprintf("\x1b[%d;%dH", row+1, col+1))
}
