// Package scrollback provides the bounded line store behind the output pane
package scrollback

import "strings"

// DefaultCapacity is the number of lines kept before the oldest is evicted
const DefaultCapacity = 1000

// errorMarker marks a device line as an error when present anywhere in the text
const errorMarker = "ERROR"

// Severity classifies a displayed line
type Severity int

const (
	SeverityNormal Severity = iota
	SeverityError
)

// String returns the string representation of Severity
func (s Severity) String() string {
	switch s {
	case SeverityNormal:
		return "normal"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Line is one immutable unit of output shown in the scrollback pane
type Line struct {
	Text     string
	Severity Severity
}

// NewLine creates a line whose severity is derived from its text.
// The check is a case-sensitive substring match and is never re-evaluated.
func NewLine(text string) Line {
	severity := SeverityNormal
	if strings.Contains(text, errorMarker) {
		severity = SeverityError
	}
	return Line{Text: text, Severity: severity}
}

// ErrorLine creates a line that is always shown as an error
func ErrorLine(text string) Line {
	return Line{Text: text, Severity: SeverityError}
}

// NormalLine creates a line that is always shown with normal severity
func NormalLine(text string) Line {
	return Line{Text: text, Severity: SeverityNormal}
}

// IsError reports whether the line is highlighted as an error
func (l Line) IsError() bool {
	return l.Severity == SeverityError
}

// Buffer is a fixed-capacity ring of lines with oldest-first eviction.
// It is not safe for concurrent use; a single goroutine owns it.
type Buffer struct {
	lines []Line
	start int
	count int
}

// NewBuffer creates a buffer holding at most capacity lines
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		lines: make([]Line, capacity),
	}
}

// Append adds a line at the tail, evicting the head when the buffer is full
func (b *Buffer) Append(line Line) {
	capacity := len(b.lines)
	if b.count < capacity {
		b.lines[(b.start+b.count)%capacity] = line
		b.count++
		return
	}

	// Full: overwrite the oldest slot and advance the head
	b.lines[b.start] = line
	b.start = (b.start + 1) % capacity
}

// Len returns the number of stored lines
func (b *Buffer) Len() int {
	return b.count
}

// Capacity returns the maximum number of stored lines
func (b *Buffer) Capacity() int {
	return len(b.lines)
}

// at returns the i-th line counted from the oldest
func (b *Buffer) at(i int) (Line, bool) {
	if i < 0 || i >= b.count {
		return Line{}, false
	}
	return b.lines[(b.start+i)%len(b.lines)], true
}

// Lines returns a copy of all lines, oldest first
func (b *Buffer) Lines() []Line {
	return b.slice(0, b.count)
}

// VisibleWindow returns up to height lines ending offset lines back from the
// newest line. An offset of 0 shows the most recent lines. The offset is
// clamped to the stored range.
func (b *Buffer) VisibleWindow(offset, height int) []Line {
	if height <= 0 || b.count == 0 {
		return []Line{}
	}
	if offset < 0 {
		offset = 0
	}
	if offset > b.count {
		offset = b.count
	}

	end := b.count - offset
	start := end - height
	if start < 0 {
		start = 0
	}
	return b.slice(start, end)
}

// MaxOffset returns the largest scroll offset that still fills a viewport of
// the given height
func (b *Buffer) MaxOffset(height int) int {
	if height <= 0 || b.count <= height {
		return 0
	}
	return b.count - height
}

// Clear drops every stored line
func (b *Buffer) Clear() {
	for i := range b.lines {
		b.lines[i] = Line{}
	}
	b.start = 0
	b.count = 0
}

func (b *Buffer) slice(from, to int) []Line {
	out := make([]Line, 0, to-from)
	for i := from; i < to; i++ {
		line, _ := b.at(i)
		out = append(out, line)
	}
	return out
}
