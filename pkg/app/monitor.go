// Package app provides the monitor's event loop and the goroutines feeding it
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"serial-monitor/pkg/editor"
	"serial-monitor/pkg/history"
	"serial-monitor/pkg/scrollback"
	"serial-monitor/pkg/sessionlog"

	"pkt.systems/pslog"
)

// DefaultPollInterval is the redraw interval when no events arrive
const DefaultPollInterval = 100 * time.Millisecond

// Messages shown in the scrollback for local conditions
const (
	msgConnectionClosed = "serial connection closed"
	msgReadErrorPrefix  = "serial read error: "
	msgWriteFailed      = "write failed: "
	msgNotConnected     = "not connected: command not sent"
	echoPrefix          = "> "
)

// Transport is the write half of the connection plus Close
type Transport interface {
	WriteLine(line string) error
	Close() error
}

// Renderer draws a RenderModel. ViewportHeight is the number of output rows
// available, used to page and clamp the scroll offset.
type Renderer interface {
	Render(model RenderModel) error
	ViewportHeight() int
}

// State is the lifecycle state of the event loop
type State int

const (
	StateRunning State = iota
	StateTerminated
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Options configures a Monitor
type Options struct {
	Port         string
	BaudRate     int
	PollInterval time.Duration
	// Capacity of the scrollback; 0 selects scrollback.DefaultCapacity
	Capacity     int
	HistoryLimit int
	Logger       pslog.Logger
	// Now stamps session log entries; defaults to time.Now
	Now func() time.Time
}

// Stats summarises a session
type Stats struct {
	StartedAt     time.Time
	LinesReceived int
	CommandsSent  int
	WriteFailures int
}

// Monitor owns all mutable session state: the scrollback, the input line,
// the command history and the connection flag. Only the goroutine calling
// Run touches it.
type Monitor struct {
	conn       Transport
	renderer   Renderer
	sessionLog sessionlog.Logger
	// logging drives the "log off" title only; entries always go to sessionLog
	logging    bool

	buffer  *scrollback.Buffer
	editor  *editor.Editor
	history *history.CommandHistory

	port         string
	baudRate     int
	pollInterval time.Duration
	now          func() time.Time
	log          pslog.Logger

	state        State
	connected    bool
	exiting      bool
	scrollOffset int
	stats        Stats
}

// NewMonitor creates a monitor for an open connection. sessionLog may be
// sessionlog.Nop{} when file logging is disabled.
func NewMonitor(conn Transport, renderer Renderer, sessionLog sessionlog.Logger, opts Options) *Monitor {
	if sessionLog == nil {
		sessionLog = sessionlog.Nop{}
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	log := opts.Logger
	if log == nil {
		log = pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	}

	_, disabled := sessionLog.(sessionlog.Nop)

	return &Monitor{
		conn:         conn,
		renderer:     renderer,
		sessionLog:   sessionLog,
		logging:      !disabled,
		buffer:       scrollback.NewBuffer(opts.Capacity),
		editor:       editor.New(),
		history:      history.New(opts.HistoryLimit),
		port:         opts.Port,
		baudRate:     opts.BaudRate,
		pollInterval: poll,
		now:          now,
		log:          log.With("port", opts.Port),
		state:        StateRunning,
		connected:    conn != nil,
		stats:        Stats{StartedAt: now()},
	}
}

// Run drives the event loop until Esc is pressed or ctx is cancelled, then
// closes the session log and the transport. A render is issued after every
// event and every poll tick.
func (m *Monitor) Run(ctx context.Context, serialEvents <-chan SerialEvent, keys <-chan KeyEvent) error {
	defer m.shutdown()

	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	m.log.Info("monitor started", "baud", m.baudRate, "logging", m.logging)
	m.render()

	for m.state == StateRunning {
		select {
		case <-ctx.Done():
			m.log.Info("monitor cancelled", "reason", context.Cause(ctx))
			m.state = StateTerminated
			return nil
		case ev, ok := <-serialEvents:
			if !ok {
				serialEvents = nil
				continue
			}
			m.HandleSerialEvent(ev)
		case key, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			m.HandleKey(key)
		case <-ticker.C:
		}

		if m.state == StateRunning {
			m.render()
		}
	}

	m.log.Info("monitor stopped")
	return nil
}

// HandleSerialEvent applies one event from the reader
func (m *Monitor) HandleSerialEvent(ev SerialEvent) {
	switch ev.Kind {
	case SerialData:
		m.stats.LinesReceived++
		m.appendLine(scrollback.NewLine(ev.Line))
		m.appendLog(ev.Line)
	case SerialClosed:
		err := NewAppError(ErrTransportClosed, msgConnectionClosed, nil)
		m.log.Warn("serial connection closed", "type", err.Type.String())
		m.connected = false
		m.appendLine(scrollback.ErrorLine(msgConnectionClosed))
	case SerialError:
		err := NewAppError(ErrTransportRead, "serial read failed", ev.Err)
		m.log.Error("serial read failed", "type", err.Type.String(), "err", ev.Err)
		m.connected = false
		m.appendLine(scrollback.ErrorLine(msgReadErrorPrefix + errorText(ev.Err)))
	default:
		m.log.Warn("ignoring unknown serial event", "kind", ev.Kind.String())
	}
}

// HandleKey applies one key press
func (m *Monitor) HandleKey(ev KeyEvent) {
	m.log.Trace("key", "key", ev.String())

	switch ev.Key {
	case KeyEscape:
		m.exiting = true
		m.state = StateTerminated
	case KeyEnter:
		m.submit()
	case KeyUp:
		m.applyNavigation(m.history.Previous())
	case KeyDown:
		m.applyNavigation(m.history.Next())
	case KeyLeft:
		m.editor.MoveLeft()
	case KeyRight:
		m.editor.MoveRight()
	case KeyHome:
		m.editor.MoveStart()
	case KeyEnd:
		m.editor.MoveEnd()
	case KeyBackspace:
		m.editor.Backspace()
		m.history.ResetNavigation()
	case KeyDelete:
		m.editor.Delete()
		m.history.ResetNavigation()
	case KeyRune:
		m.editor.InsertRune(ev.Rune)
		m.history.ResetNavigation()
	case KeyPageUp:
		m.scrollBy(m.pageSize())
	case KeyPageDown:
		m.scrollBy(-m.pageSize())
	case KeyRedraw:
		m.clampScroll()
	}
}

func (m *Monitor) submit() {
	if m.editor.Blank() {
		m.editor.Clear()
		return
	}
	cmd := m.editor.Take()

	if !m.connected {
		m.history.ResetNavigation()
		m.log.Warn("command dropped, not connected", "command", cmd)
		m.appendLine(scrollback.ErrorLine(msgNotConnected))
		return
	}
	m.history.Record(cmd)

	if err := m.conn.WriteLine(cmd + "\n"); err != nil {
		appErr := NewAppError(ErrTransportWrite, "write failed", err)
		m.stats.WriteFailures++
		m.log.Error("serial write failed", "type", appErr.Type.String(), "err", err)
		m.appendLine(scrollback.ErrorLine(msgWriteFailed + errorText(err)))
		return
	}

	m.stats.CommandsSent++
	echo := echoPrefix + cmd
	m.appendLine(scrollback.NormalLine(echo))
	m.appendLog(echo)
}

func (m *Monitor) applyNavigation(cmd string, nav history.Navigation) {
	switch nav {
	case history.NavLoad:
		m.editor.SetText(cmd)
	case history.NavClear:
		m.editor.Clear()
	}
}

// appendLine adds a line to the scrollback. While scrolled back, the offset
// grows with each append so the visible lines stay put.
func (m *Monitor) appendLine(line scrollback.Line) {
	m.buffer.Append(line)
	if m.scrollOffset > 0 {
		m.scrollOffset++
	}
	m.clampScroll()
}

// appendLog mirrors an entry to the session log. The first failure swaps the
// log for Nop for the rest of the session.
func (m *Monitor) appendLog(entry string) {
	err := m.sessionLog.Append(entry, m.now())
	if err == nil {
		return
	}

	appErr := NewAppError(ErrLogWrite, "log write failed", err)
	m.log.Error("session log write failed, disabling file logging", "type", appErr.Type.String(), "err", err)
	m.appendLine(scrollback.ErrorLine(fmt.Sprintf("log write failed: %s; file logging disabled", errorText(err))))

	if closeErr := m.sessionLog.Close(); closeErr != nil {
		m.log.Warn("closing session log failed", "err", closeErr)
	}
	m.sessionLog = sessionlog.Nop{}
	m.logging = false
}

func (m *Monitor) viewportHeight() int {
	if m.renderer == nil {
		return 1
	}
	if h := m.renderer.ViewportHeight(); h > 0 {
		return h
	}
	return 1
}

func (m *Monitor) pageSize() int {
	if page := m.viewportHeight() - 1; page > 1 {
		return page
	}
	return 1
}

func (m *Monitor) scrollBy(delta int) {
	m.scrollOffset += delta
	m.clampScroll()
}

func (m *Monitor) clampScroll() {
	maxOffset := m.buffer.MaxOffset(m.viewportHeight())
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m *Monitor) render() {
	if m.renderer == nil {
		return
	}
	if err := m.renderer.Render(m.Model()); err != nil {
		m.log.Warn("render failed", "err", err)
	}
}

// Model returns a snapshot of everything the renderer needs
func (m *Monitor) Model() RenderModel {
	height := m.viewportHeight()
	return RenderModel{
		Lines:        m.buffer.VisibleWindow(m.scrollOffset, height),
		Input:        m.editor.String(),
		Cursor:       m.editor.Cursor(),
		Connected:    m.connected,
		Port:         m.port,
		BaudRate:     m.baudRate,
		ScrollOffset: m.scrollOffset,
		Total:        m.buffer.Len(),
		Logging:      m.logging,
	}
}

func (m *Monitor) shutdown() {
	m.state = StateTerminated

	if err := m.sessionLog.Close(); err != nil {
		m.log.Warn("closing session log failed", "err", err)
	}
	if m.conn != nil {
		if err := m.conn.Close(); err != nil {
			m.log.Warn("closing serial connection failed", "err", err)
		}
	}
	m.connected = false
}

// State returns the lifecycle state
func (m *Monitor) State() State {
	return m.state
}

// Exiting reports whether the operator asked to leave
func (m *Monitor) Exiting() bool {
	return m.exiting
}

// Connected reports whether commands are currently sent to the device
func (m *Monitor) Connected() bool {
	return m.connected
}

// Stats returns session counters
func (m *Monitor) Stats() Stats {
	return m.stats
}

// Lines returns the whole scrollback, oldest first
func (m *Monitor) Lines() []scrollback.Line {
	return m.buffer.Lines()
}

// History returns the recorded commands, oldest first
func (m *Monitor) History() []string {
	return m.history.Entries()
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
