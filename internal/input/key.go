// Package input decodes raw terminal bytes into logical key events.
package input

import "fmt"

// Key identifies a logical keyboard key. Character keys use KeyRune with
// the byte stored in Event.Rune.
type Key uint8

const (
	// KeyNone means no input arrived before the read timeout. It is not a
	// keypress; callers redraw and poll again.
	KeyNone Key = iota

	KeyRune
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	case KeyEscape:
		return "Escape"
	case KeyEnter:
		return "Enter"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	case KeyPageUp:
		return "PageUp"
	case KeyPageDown:
		return "PageDown"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	default:
		return fmt.Sprintf("Key(%d)", k)
	}
}

// IsArrow returns true for the four cursor movement keys.
func (k Key) IsArrow() bool {
	return k == KeyUp || k == KeyDown || k == KeyLeft || k == KeyRight
}

// Event is a single decoded key press.
type Event struct {
	Key  Key
	Rune rune
}

// IsNone reports whether the event is the no-input marker.
func (e Event) IsNone() bool {
	return e.Key == KeyNone
}

// String returns a label suitable for status display.
func (e Event) String() string {
	if e.Key == KeyRune {
		return fmt.Sprintf("%q(%d)", e.Rune, e.Rune)
	}
	return e.Key.String()
}

// Ctrl returns the control-key byte for the given letter, e.g.
// Ctrl('q') == 0x11.
func Ctrl(r rune) rune {
	return r & 0x1f
}
