package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// clampLine fits line into exactly width display cells. pre-rendered lines
// may carry ANSI SGR/color sequences that must survive clamping unmangled
// (§4.3: "clamp without corrupting escape sequences, never split inside a
// CSI sequence"); plain lines are measured and padded rune-by-rune.
//
// This mirrors vito-dang's pkg/pitui/width.go, which solves the identical
// problem (ANSI-aware visible-width truncation for a terminal UI) with the
// same library.
func clampLine(line string, width int, preRendered bool) string {
	if width <= 0 {
		return ""
	}
	if preRendered {
		w := ansi.StringWidth(line)
		if w > width {
			line = ansi.Truncate(line, width, "")
			w = ansi.StringWidth(line)
		}
		if w < width {
			line += strings.Repeat(" ", width-w)
		}
		return line
	}

	w := runewidth.StringWidth(line)
	if w > width {
		line = runewidth.Truncate(line, width, "")
		w = runewidth.StringWidth(line)
	}
	if w < width {
		line += strings.Repeat(" ", width-w)
	}
	return line
}

// blankLine is a row of width spaces, used to pad short content to rect.Height.
func blankLine(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width)
}
