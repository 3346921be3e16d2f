// Package event defines the runtime's input event vocabulary: the kinds a
// driver may deliver to the coordinator (§6.1) and the outcome a plugin's
// on_event hook reports back (§4.5).
package event

import (
	"time"

	"github.com/oodx/room/zone"
)

// Kind names the shape of an Event's payload.
type Kind string

const (
	KeyKind    Kind = "Key"
	MouseKind  Kind = "Mouse"
	PasteKind  Kind = "Paste"
	RawKind    Kind = "Raw"
	TickKind   Kind = "Tick"
	ResizeKind Kind = "Resize"

	// SilentKind marks a simulated-mode iteration carrying no payload
	// (silent{n}, §6.3) — distinct from Tick so audit consumers can tell
	// the two simulated loop flavors apart.
	SilentKind Kind = "Silent"
)

// Key carries a single keystroke. Code is a driver-defined identifier (e.g.
// a rune or a named key); Mods records active modifiers.
type Key struct {
	Code rune
	Mods Mods
}

// Mods is a bitset of modifier keys active alongside a Key.
type Mods uint8

const (
	ModShift Mods = 1 << iota
	ModCtrl
	ModAlt
)

func (m Mods) Has(mod Mods) bool { return m&mod != 0 }

// MouseButton names the button or action behind a Mouse event.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseRelease
	MouseWheelUp
	MouseWheelDown
	MouseMotion
)

// Mouse carries a single mouse event: terminal-cell position, the
// button/action, and active modifiers.
type Mouse struct {
	Row, Col int
	Button   MouseButton
	Mods     Mods
}

// Event is a tagged union over the event kinds a driver may deliver.
// At most one of Key, Mouse, Paste, Raw, Tick, Size is populated, matching
// Kind; a Silent event populates none of them.
type Event struct {
	Kind  Kind
	Key   Key
	Mouse Mouse
	Paste string
	Raw   []byte
	Tick  time.Time
	Size  zone.Size
}

// NewKey builds a Key event.
func NewKey(code rune, mods Mods) Event {
	return Event{Kind: KeyKind, Key: Key{Code: code, Mods: mods}}
}

// NewMouse builds a Mouse event.
func NewMouse(row, col int, button MouseButton, mods Mods) Event {
	return Event{Kind: MouseKind, Mouse: Mouse{Row: row, Col: col, Button: button, Mods: mods}}
}

// NewPaste builds a Paste event carrying the pasted text verbatim.
func NewPaste(text string) Event {
	return Event{Kind: PasteKind, Paste: text}
}

// NewRaw builds a driver-defined passthrough event carrying opaque bytes a
// driver could not otherwise decode into one of the other kinds.
func NewRaw(data []byte) Event {
	return Event{Kind: RawKind, Raw: data}
}

// NewTick builds a Tick event.
func NewTick(at time.Time) Event {
	return Event{Kind: TickKind, Tick: at}
}

// NewResize builds a Resize event.
func NewResize(size zone.Size) Event {
	return Event{Kind: ResizeKind, Size: size}
}

// NewSilent builds a silent simulated-mode iteration marker.
func NewSilent() Event {
	return Event{Kind: SilentKind}
}

// Flow is the outcome an on_event hook reports: whether dispatch should stop
// because this plugin consumed the event (§4.5).
type Flow int

const (
	NotConsumed Flow = iota
	Consumed
)
