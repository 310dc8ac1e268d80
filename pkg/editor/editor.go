// Package editor implements the single-line input buffer of the monitor
package editor

import "unicode"

// Editor holds the operator's pending command and a cursor expressed in runes.
// The cursor always stays within [0, Len()].
type Editor struct {
	buf    []rune
	cursor int
}

// New creates an empty editor
func New() *Editor {
	return &Editor{}
}

// String returns the buffer contents
func (e *Editor) String() string {
	return string(e.buf)
}

// Len returns the number of runes in the buffer
func (e *Editor) Len() int {
	return len(e.buf)
}

// Cursor returns the cursor position in runes
func (e *Editor) Cursor() int {
	return e.cursor
}

// InsertRune inserts r at the cursor and advances the cursor by one
func (e *Editor) InsertRune(r rune) {
	e.clampCursor()
	e.buf = append(e.buf, 0)
	copy(e.buf[e.cursor+1:], e.buf[e.cursor:])
	e.buf[e.cursor] = r
	e.cursor++
}

// Backspace removes the rune before the cursor
func (e *Editor) Backspace() {
	if e.cursor <= 0 {
		return
	}
	e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
	e.cursor--
}

// Delete removes the rune under the cursor
func (e *Editor) Delete() {
	if e.cursor < 0 || e.cursor >= len(e.buf) {
		return
	}
	e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
}

// MoveLeft moves the cursor one rune left
func (e *Editor) MoveLeft() {
	if e.cursor > 0 {
		e.cursor--
	}
}

// MoveRight moves the cursor one rune right
func (e *Editor) MoveRight() {
	if e.cursor < len(e.buf) {
		e.cursor++
	}
}

// MoveStart moves the cursor to the beginning of the line
func (e *Editor) MoveStart() {
	e.cursor = 0
}

// MoveEnd moves the cursor past the last rune
func (e *Editor) MoveEnd() {
	e.cursor = len(e.buf)
}

// SetText replaces the buffer and places the cursor at the end
func (e *Editor) SetText(value string) {
	if value == "" {
		e.Clear()
		return
	}
	e.buf = []rune(value)
	e.cursor = len(e.buf)
}

// Clear empties the buffer and resets the cursor
func (e *Editor) Clear() {
	e.buf = nil
	e.cursor = 0
}

// Take returns the current text and leaves the editor empty
func (e *Editor) Take() string {
	text := string(e.buf)
	e.Clear()
	return text
}

// Blank reports whether the buffer holds only whitespace
func (e *Editor) Blank() bool {
	for _, r := range e.buf {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func (e *Editor) clampCursor() {
	if e.cursor < 0 {
		e.cursor = 0
	}
	if e.cursor > len(e.buf) {
		e.cursor = len(e.buf)
	}
}
