// Package terminal provides the tcell screen behind the monitor: it draws
// frames built by package ui and turns terminal events into app key events
package terminal

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"serial-monitor/pkg/app"
	"serial-monitor/pkg/scrollback"
	"serial-monitor/pkg/ui"
)

// keyBuffer is the number of translated keys queued for the event loop
const keyBuffer = 64

var (
	styleDefault = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	styleError   = styleDefault.Foreground(tcell.ColorRed)
	styleBorder  = styleDefault
	styleTitle   = styleDefault.Bold(true)
)

// Terminal renders RenderModels on a tcell screen and forwards key presses
type Terminal struct {
	screen tcell.Screen

	mu      sync.Mutex
	running bool
	keys    chan app.KeyEvent
	quit    chan struct{}
	done    chan struct{}
}

// Open creates a terminal on the process's controlling tty
func Open() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return New(screen)
}

// New initializes screen and wraps it. Tests pass a simulation screen.
func New(screen tcell.Screen) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}

	// Use default terminal colors instead of forcing a background
	screen.SetStyle(styleDefault)
	screen.Clear()

	return &Terminal{
		screen: screen,
		keys:   make(chan app.KeyEvent, keyBuffer),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Start begins forwarding key events
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return fmt.Errorf("terminal is already running")
	}
	t.running = true

	go t.pump()
	return nil
}

// pump blocks in PollEvent; Fini makes PollEvent return nil and ends it
func (t *Terminal) pump() {
	defer close(t.done)
	defer close(t.keys)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		var key app.KeyEvent
		switch e := ev.(type) {
		case *tcell.EventKey:
			var ok bool
			if key, ok = TranslateKey(e); !ok {
				continue
			}
		case *tcell.EventResize:
			t.screen.Sync()
			key = app.Press(app.KeyRedraw)
		default:
			continue
		}

		select {
		case t.keys <- key:
		case <-t.quit:
			return
		}
	}
}

// Keys returns the translated key stream. It is closed after Close.
func (t *Terminal) Keys() <-chan app.KeyEvent {
	return t.keys
}

// ViewportHeight returns the number of rows in the output pane
func (t *Terminal) ViewportHeight() int {
	_, height := t.screen.Size()
	return ui.OutputHeight(height)
}

// Render draws one frame
func (t *Terminal) Render(model app.RenderModel) error {
	width, height := t.screen.Size()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("screen has no area: %dx%d", width, height)
	}

	frame := ui.Build(model, width, height)

	t.screen.Clear()
	drawBox(t.screen, frame.Output, frame.OutputTitle)
	inner := frame.Output.Inner()
	for i, row := range frame.Rows {
		style := styleDefault
		if row.Severity == scrollback.SeverityError {
			style = styleError
		}
		drawText(t.screen, inner.X, inner.Y+i, inner.Width, row.Text, style)
	}

	drawBox(t.screen, frame.Input, frame.InputTitle)
	inInner := frame.Input.Inner()
	drawText(t.screen, inInner.X, inInner.Y, inInner.Width, frame.InputText, styleDefault)
	if inInner.Width > 0 && inInner.Height > 0 {
		t.screen.ShowCursor(frame.CursorX, frame.CursorY)
	} else {
		t.screen.HideCursor()
	}

	t.screen.Show()
	return nil
}

// Close restores the terminal and stops the key pump. It is safe to call
// more than once.
func (t *Terminal) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-t.quit:
		return
	default:
	}
	close(t.quit)
	t.screen.Fini()

	if t.running {
		<-t.done
		t.running = false
	} else {
		close(t.keys)
	}
}

func drawBox(s tcell.Screen, r ui.Rect, title string) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right := r.X + r.Width - 1
	bottom := r.Y + r.Height - 1

	for x := r.X + 1; x < right; x++ {
		s.SetContent(x, r.Y, tcell.RuneHLine, nil, styleBorder)
		s.SetContent(x, bottom, tcell.RuneHLine, nil, styleBorder)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetContent(r.X, y, tcell.RuneVLine, nil, styleBorder)
		s.SetContent(right, y, tcell.RuneVLine, nil, styleBorder)
	}
	s.SetContent(r.X, r.Y, tcell.RuneULCorner, nil, styleBorder)
	s.SetContent(right, r.Y, tcell.RuneURCorner, nil, styleBorder)
	s.SetContent(r.X, bottom, tcell.RuneLLCorner, nil, styleBorder)
	s.SetContent(right, bottom, tcell.RuneLRCorner, nil, styleBorder)

	if title != "" {
		drawText(s, r.X+1, r.Y, r.Width-2, title, styleTitle)
	}
}

// drawText writes text from (x, y) and clips it to width cells
func drawText(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > width {
			return
		}
		s.SetContent(x+col, y, r, nil, style)
		col += w
	}
}
