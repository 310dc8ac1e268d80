// Package ui turns a RenderModel into screen rows without touching a terminal.
// The output pane fills the screen above a three-row input box; both panes
// are framed by a one-cell border.
package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"serial-monitor/pkg/app"
	"serial-monitor/pkg/scrollback"
)

const (
	// InputBoxHeight is the input pane including its borders
	InputBoxHeight = 3
	// InputTitle labels the input pane
	InputTitle = "Input"
	// tabWidth is the number of spaces a tab expands to
	tabWidth = 4
)

// Rect is a screen rectangle in cells
type Rect struct {
	X, Y, Width, Height int
}

// Inner returns the rectangle inside a one-cell border
func (r Rect) Inner() Rect {
	inner := Rect{X: r.X + 1, Y: r.Y + 1, Width: r.Width - 2, Height: r.Height - 2}
	if inner.Width < 0 {
		inner.Width = 0
	}
	if inner.Height < 0 {
		inner.Height = 0
	}
	return inner
}

// Row is one wrapped output row
type Row struct {
	Text     string
	Severity scrollback.Severity
}

// Frame is everything the terminal draws for one model
type Frame struct {
	Output      Rect
	OutputTitle string
	Rows        []Row

	Input      Rect
	InputTitle string
	InputText  string
	// CursorX and CursorY are absolute screen cells
	CursorX int
	CursorY int
}

// Split divides a screen into the output pane and the input pane
func Split(width, height int) (output, input Rect) {
	inputHeight := InputBoxHeight
	if height < inputHeight {
		inputHeight = height
	}
	output = Rect{X: 0, Y: 0, Width: width, Height: height - inputHeight}
	input = Rect{X: 0, Y: height - inputHeight, Width: width, Height: inputHeight}
	return output, input
}

// OutputHeight returns the number of text rows inside the output pane
func OutputHeight(screenHeight int) int {
	output, _ := Split(80, screenHeight)
	if h := output.Inner().Height; h > 0 {
		return h
	}
	return 1
}

// Build lays out a model on a width x height screen
func Build(model app.RenderModel, width, height int) Frame {
	output, input := Split(width, height)
	outInner := output.Inner()
	inInner := input.Inner()

	text, cursorCol := InputView(model.Input, model.Cursor, inInner.Width)

	return Frame{
		Output:      output,
		OutputTitle: OutputTitle(model),
		Rows:        WrapLines(model.Lines, outInner.Width, outInner.Height),
		Input:       input,
		InputTitle:  InputTitle,
		InputText:   text,
		CursorX:     inInner.X + cursorCol,
		CursorY:     inInner.Y,
	}
}

// OutputTitle describes the connection and scroll state
func OutputTitle(model app.RenderModel) string {
	status := "disconnected"
	if model.Connected {
		status = "connected"
	}

	parts := []string{fmt.Sprintf("%s @ %d", model.Port, model.BaudRate), status}
	if !model.Logging {
		parts = append(parts, "log off")
	}
	if model.Scrolled() {
		parts = append(parts, fmt.Sprintf("scrolled %d/%d", model.ScrollOffset, model.Total))
	}
	return " " + strings.Join(parts, " | ") + " "
}

// WrapLines wraps every line to width cells and keeps the newest height rows
func WrapLines(lines []scrollback.Line, width, height int) []Row {
	if width <= 0 || height <= 0 {
		return nil
	}

	rows := make([]Row, 0, len(lines))
	for _, line := range lines {
		for _, text := range WrapLine(line.Text, width) {
			rows = append(rows, Row{Text: text, Severity: line.Severity})
		}
	}
	if len(rows) > height {
		rows = rows[len(rows)-height:]
	}
	return rows
}

// WrapLine sanitizes text and splits it into chunks of at most width cells.
// A wide rune never straddles two rows.
func WrapLine(text string, width int) []string {
	clean := Sanitize(text)
	if width <= 0 || clean == "" {
		return []string{clean}
	}

	var (
		rows    []string
		b       strings.Builder
		visible int
	)
	for _, r := range clean {
		w := runewidth.RuneWidth(r)
		if visible+w > width && visible > 0 {
			rows = append(rows, b.String())
			b.Reset()
			visible = 0
		}
		b.WriteRune(r)
		visible += w
	}
	if b.Len() > 0 {
		rows = append(rows, b.String())
	}
	return rows
}

// Sanitize strips terminal escape sequences and control characters and
// expands tabs, so device output cannot move the cursor or recolor the screen
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	for i := 0; i < len(text); {
		ch := text[i]
		if ch == 0x1b {
			i = skipEscape(text, i+1)
			continue
		}
		r, size := utf8.DecodeRuneInString(text[i:])
		switch {
		case r == '\t':
			b.WriteString(strings.Repeat(" ", tabWidth))
		case r < 0x20 || r == 0x7f:
		default:
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

func skipEscape(text string, i int) int {
	if i >= len(text) {
		return i
	}
	switch text[i] {
	case '[':
		return skipCSI(text, i+1)
	case ']':
		return skipOSC(text, i+1)
	default:
		return i + 1
	}
}

func skipCSI(text string, i int) int {
	for i < len(text) {
		if b := text[i]; b >= 0x40 && b <= 0x7e {
			return i + 1
		}
		i++
	}
	return i
}

func skipOSC(text string, i int) int {
	for i < len(text) {
		switch text[i] {
		case 0x07:
			return i + 1
		case 0x1b:
			if i+1 < len(text) && text[i+1] == '\\' {
				return i + 2
			}
		}
		i++
	}
	return i
}

// InputView returns the part of input that fits in width cells together
// with the cursor column inside it. The view scrolls horizontally so the
// cursor is always visible.
func InputView(input string, cursor, width int) (string, int) {
	if width <= 0 {
		return "", 0
	}
	runes := []rune(input)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}

	// Leave one cell for the cursor when it sits past the last rune
	cursorCell := 1
	if cursor < len(runes) {
		cursorCell = runewidth.RuneWidth(runes[cursor])
	}

	start := 0
	for cellWidth(runes[start:cursor])+cursorCell > width && start < cursor {
		start++
	}

	var b strings.Builder
	used := 0
	for _, r := range runes[start:] {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String(), cellWidth(runes[start:cursor])
}

func cellWidth(runes []rune) int {
	width := 0
	for _, r := range runes {
		width += runewidth.RuneWidth(r)
	}
	return width
}
