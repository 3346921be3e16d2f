// Package driver provides the reference interactive driver (§6.1): a
// blocking terminal input/output loop that turns raw stdin bytes into
// event.Event values and feeds them to a runtime.Coordinator one at a
// time, writing the coordinator's rendered bytes straight to stdout. It
// is a reference implementation of the driver contract, not the only
// legal one — a socket driver or a scripted harness can feed the same
// coordinator without this package.
package driver

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/oodx/room/event"
)

// keyReader parses raw terminal bytes into key events, one keystroke at a
// time, including multi-byte CSI escape sequences for arrow keys.
type keyReader struct {
	r *bufio.Reader
}

func newKeyReader(in io.Reader) *keyReader {
	return &keyReader{r: bufio.NewReader(in)}
}

// ReadKey blocks for the next keystroke on the underlying reader.
func (kr *keyReader) ReadKey() (event.Event, error) {
	b, err := kr.r.ReadByte()
	if err != nil {
		return event.Event{}, err
	}

	if b == 0x1b {
		next, err := kr.r.Peek(1)
		if err != nil || len(next) == 0 {
			return event.NewKey(event.KeyEscape, 0), nil
		}
		if next[0] == '[' {
			kr.r.ReadByte() // consume '['
			return kr.readCSI()
		}
		return event.NewKey(event.KeyEscape, 0), nil
	}

	return kr.readPlain(b), nil
}

// bracketedPasteStart/End are the CSI sequences (sans ESC[) a terminal with
// bracketed paste mode enabled wraps a paste in; everything between them is
// literal pasted text, not further escape sequences.
const (
	bracketedPasteStart = "200~"
	bracketedPasteEnd   = "\x1b[201~"
)

func (kr *keyReader) readCSI() (event.Event, error) {
	var seq []byte
	for {
		b, err := kr.r.ReadByte()
		if err != nil {
			return event.Event{}, err
		}
		seq = append(seq, b)
		if (b >= 'A' && b <= 'Z') || b == '~' || b == 'm' {
			break
		}
	}

	if string(seq) == bracketedPasteStart {
		return kr.readBracketedPaste()
	}
	if len(seq) > 0 && seq[0] == '<' {
		return decodeMouseSGR(seq), nil
	}
	return decodeCSI(seq), nil
}

// readBracketedPaste consumes literal bytes up to and including the closing
// CSI 201~ sequence and returns them as a single Paste event.
func (kr *keyReader) readBracketedPaste() (event.Event, error) {
	var buf []byte
	end := []byte(bracketedPasteEnd)
	for {
		b, err := kr.r.ReadByte()
		if err != nil {
			return event.Event{}, err
		}
		buf = append(buf, b)
		if bytes.HasSuffix(buf, end) {
			return event.NewPaste(string(buf[:len(buf)-len(end)])), nil
		}
	}
}

// rawCSI rebuilds the raw bytes of an undecodable CSI sequence (including
// the ESC [ prefix this reader already consumed) for Raw passthrough.
func rawCSI(seq []byte) event.Event {
	raw := make([]byte, 0, len(seq)+2)
	raw = append(raw, 0x1b, '[')
	raw = append(raw, seq...)
	return event.NewRaw(raw)
}

func decodeCSI(seq []byte) event.Event {
	s := string(seq)
	switch s {
	case "A":
		return event.NewKey(event.KeyArrowUp, 0)
	case "B":
		return event.NewKey(event.KeyArrowDown, 0)
	case "C":
		return event.NewKey(event.KeyArrowRight, 0)
	case "D":
		return event.NewKey(event.KeyArrowLeft, 0)
	case "3~":
		return event.NewKey(event.KeyDelete, 0)
	case "Z":
		// CSI Z is the conventional "back-tab" sequence terminals send for
		// Shift+Tab; treated as Ctrl+Shift+Tab for screen-cycle navigation
		// (§4.6) since raw TTY mode otherwise never distinguishes Tab's
		// modifier state.
		return event.NewKey(event.KeyTab, event.ModCtrl|event.ModShift)
	}

	if !strings.Contains(s, ";") {
		return rawCSI(seq)
	}
	parts := strings.SplitN(s, ";", 2)
	if len(parts) != 2 || len(parts[1]) < 2 {
		return rawCSI(seq)
	}
	modNum, _ := strconv.Atoi(parts[1][:1])
	mods := modsFromXterm(modNum)
	switch parts[1][1:] {
	case "A":
		return event.NewKey(event.KeyArrowUp, mods)
	case "B":
		return event.NewKey(event.KeyArrowDown, mods)
	case "C":
		return event.NewKey(event.KeyArrowRight, mods)
	case "D":
		return event.NewKey(event.KeyArrowLeft, mods)
	}
	return rawCSI(seq)
}

// decodeMouseSGR decodes an SGR-encoded mouse sequence (the modern xterm
// mouse protocol): "<Cb;Cx;Cy" + M (press/motion) or m (release).
func decodeMouseSGR(seq []byte) event.Event {
	s := string(seq)
	final := s[len(s)-1]
	if final != 'M' && final != 'm' {
		return rawCSI(seq)
	}
	body := s[1 : len(s)-1]
	parts := strings.Split(body, ";")
	if len(parts) != 3 {
		return rawCSI(seq)
	}
	cb, err1 := strconv.Atoi(parts[0])
	cx, err2 := strconv.Atoi(parts[1])
	cy, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return rawCSI(seq)
	}
	button := buttonFromSGR(cb, final == 'M')
	mods := modsFromSGR(cb)
	// SGR coordinates are 1-based terminal cells.
	return event.NewMouse(cy-1, cx-1, button, mods)
}

func buttonFromSGR(cb int, press bool) event.MouseButton {
	switch {
	case cb&64 != 0:
		if cb&1 != 0 {
			return event.MouseWheelDown
		}
		return event.MouseWheelUp
	case cb&32 != 0:
		return event.MouseMotion
	case !press:
		return event.MouseRelease
	}
	switch cb & 3 {
	case 0:
		return event.MouseLeft
	case 1:
		return event.MouseMiddle
	case 2:
		return event.MouseRight
	default:
		return event.MouseRelease
	}
}

// modsFromSGR decodes the xterm SGR mouse modifier bits (4=Shift, 8=Alt,
// 16=Ctrl).
func modsFromSGR(cb int) event.Mods {
	var mods event.Mods
	if cb&4 != 0 {
		mods |= event.ModShift
	}
	if cb&8 != 0 {
		mods |= event.ModAlt
	}
	if cb&16 != 0 {
		mods |= event.ModCtrl
	}
	return mods
}

// modsFromXterm decodes the xterm CSI modifier parameter (2=Shift, 3=Alt,
// 4=Shift+Alt, 5=Ctrl, 6=Ctrl+Shift, 7=Ctrl+Alt, 8=Ctrl+Alt+Shift).
func modsFromXterm(n int) event.Mods {
	switch n {
	case 2:
		return event.ModShift
	case 3:
		return event.ModAlt
	case 4:
		return event.ModShift | event.ModAlt
	case 5:
		return event.ModCtrl
	case 6:
		return event.ModCtrl | event.ModShift
	case 7:
		return event.ModCtrl | event.ModAlt
	case 8:
		return event.ModCtrl | event.ModAlt | event.ModShift
	default:
		return 0
	}
}

func (kr *keyReader) readPlain(b byte) event.Event {
	switch b {
	case '\r', '\n':
		return event.NewKey(event.KeyEnter, 0)
	case '\t':
		// Raw TTY mode delivers the same byte for Tab and Ctrl+Tab; this
		// driver reports plain Tab as Ctrl+Tab so the screen manager's
		// default cycle hotkey (§4.6) is reachable at all from a real
		// terminal. Shift+Tab arrives as the separate CSI Z sequence, decoded
		// in decodeCSI.
		return event.NewKey(event.KeyTab, event.ModCtrl)
	case 127, 8:
		return event.NewKey(event.KeyBackspace, 0)
	case 3: // Ctrl+C
		return event.NewKey('c', event.ModCtrl)
	case 4: // Ctrl+D
		return event.NewKey('d', event.ModCtrl)
	default:
		if b < 0x20 {
			// Other C0 control codes: Ctrl+<letter>, offset from 1.
			return event.NewKey(rune('a'+b-1), event.ModCtrl)
		}
		return event.NewKey(rune(b), 0)
	}
}
