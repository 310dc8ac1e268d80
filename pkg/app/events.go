package app

import "fmt"

// SerialEventKind identifies what the reader observed on the transport
type SerialEventKind int

const (
	SerialData SerialEventKind = iota
	SerialClosed
	SerialError
)

// String returns the string representation of SerialEventKind
func (k SerialEventKind) String() string {
	switch k {
	case SerialData:
		return "data"
	case SerialClosed:
		return "closed"
	case SerialError:
		return "error"
	default:
		return "unknown"
	}
}

// SerialEvent is sent from the reader goroutine to the event loop.
// Line is set for SerialData and Err for SerialError.
type SerialEvent struct {
	Kind SerialEventKind
	Line string
	Err  error
}

// DataEvent creates a SerialData event
func DataEvent(line string) SerialEvent {
	return SerialEvent{Kind: SerialData, Line: line}
}

// ClosedEvent creates a SerialClosed event
func ClosedEvent() SerialEvent {
	return SerialEvent{Kind: SerialClosed}
}

// ErrorEvent creates a SerialError event
func ErrorEvent(err error) SerialEvent {
	return SerialEvent{Kind: SerialError, Err: err}
}

// Key is a terminal-independent key code
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	// KeyRedraw carries no key; it asks for a re-layout after a resize
	KeyRedraw
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyEscape:    "esc",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdn",
	KeyRedraw:    "redraw",
}

// String returns the string representation of Key
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// KeyEvent is one keyboard action forwarded to the event loop
type KeyEvent struct {
	Key  Key
	Rune rune
}

// RuneKey creates a printable key event
func RuneKey(r rune) KeyEvent {
	return KeyEvent{Key: KeyRune, Rune: r}
}

// Press creates a non-printable key event
func Press(k Key) KeyEvent {
	return KeyEvent{Key: k}
}

func (e KeyEvent) String() string {
	if e.Key == KeyRune {
		return fmt.Sprintf("rune(%q)", e.Rune)
	}
	return e.Key.String()
}
