package app

import (
	"context"
	"fmt"
	"sync"

	"serial-monitor/pkg/sessionlog"

	"pkt.systems/pslog"
)

// serialEventBuffer bounds how far the reader may run ahead of the loop
const serialEventBuffer = 256

// Connection is the full transport used by a session
type Connection interface {
	LineReader
	Transport
}

// Screen is a Renderer that also produces key events
type Screen interface {
	Renderer
	Keys() <-chan KeyEvent
}

// Session wires a connection, a screen and a session log into a running
// monitor
type Session struct {
	conn       Connection
	screen     Screen
	sessionLog sessionlog.Logger
	opts       Options

	monitor *Monitor
}

// NewSession creates a session. Nothing runs until Run is called.
func NewSession(conn Connection, screen Screen, sessionLog sessionlog.Logger, opts Options) (*Session, error) {
	if conn == nil {
		return nil, fmt.Errorf("connection cannot be nil")
	}
	if screen == nil {
		return nil, fmt.Errorf("screen cannot be nil")
	}
	return &Session{
		conn:       conn,
		screen:     screen,
		sessionLog: sessionLog,
		opts:       opts,
	}, nil
}

// Run starts the serial reader and blocks in the event loop until the
// operator exits or ctx is cancelled. The connection and session log are
// closed before Run returns and the reader goroutine has exited.
func (s *Session) Run(ctx context.Context) error {
	if s.opts.Logger == nil {
		s.opts.Logger = pslog.Ctx(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan SerialEvent, serialEventBuffer)
	s.monitor = NewMonitor(s.conn, s.screen, s.sessionLog, s.opts)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		RunReader(ctx, s.conn, events)
	}()

	err := s.monitor.Run(ctx, events, s.screen.Keys())

	// The monitor closed the transport, which unblocks ReadLine
	cancel()
	wg.Wait()

	if err != nil {
		return fmt.Errorf("monitor failed: %w", err)
	}
	return nil
}

// Stats returns the counters of the last run
func (s *Session) Stats() Stats {
	if s.monitor == nil {
		return Stats{}
	}
	return s.monitor.Stats()
}
