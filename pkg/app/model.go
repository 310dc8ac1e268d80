package app

import "serial-monitor/pkg/scrollback"

// RenderModel is an immutable snapshot of the session handed to the renderer.
// Lines holds the visible window only, oldest first.
type RenderModel struct {
	Lines        []scrollback.Line
	Input        string
	Cursor       int
	Connected    bool
	Port         string
	BaudRate     int
	ScrollOffset int
	Total        int
	Logging      bool
}

// Scrolled reports whether the view is away from the newest line
func (m RenderModel) Scrolled() bool {
	return m.ScrollOffset > 0
}
