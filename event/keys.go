package event

// Key codes for control characters that already have a natural rune form
// are reported as that rune directly (Enter as '\r', Tab as '\t', and so
// on) — the screen manager's hotkey routing relies on this for Ctrl+Tab.
// Keys with no natural rune (arrows, delete) use sentinels from the
// Unicode private-use area so they can never collide with a real
// keystroke.
const (
	KeyEnter     rune = '\r'
	KeyTab       rune = '\t'
	KeyEscape    rune = '\x1b'
	KeyBackspace rune = '\x7f'
)

const (
	KeyArrowUp rune = 0xE000 + iota
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyDelete
)
