package serial

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"go.bug.st/serial"
)

// Connection is the transport seen by the monitor: one reader goroutine calls
// ReadLine while the event loop calls WriteLine and Close
type Connection interface {
	// ReadLine blocks until a non-empty line arrives. It returns io.EOF once
	// the connection is closed.
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
}

// Port adapts a byte stream into a line-oriented Connection.
// Lines end at '\r' or '\n'; empty lines are dropped and invalid UTF-8 is
// replaced with U+FFFD.
type Port struct {
	name   string
	rwc    io.ReadWriteCloser
	reader *bufio.Reader

	pending []byte
	readErr error

	writeMu   sync.Mutex
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// Open opens the device described by cfg
func Open(cfg Config) (*Port, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	port, err := serial.Open(cfg.Port, cfg.Mode())
	if err != nil {
		return nil, NewSerialError("open", cfg.Port, err)
	}

	return NewPort(cfg.Port, port), nil
}

// NewPort wraps an already open stream, such as a pty or a pipe in tests
func NewPort(name string, rwc io.ReadWriteCloser) *Port {
	return &Port{
		name:   name,
		rwc:    rwc,
		reader: bufio.NewReaderSize(rwc, 4096),
	}
}

// ReadLine implements Connection
func (p *Port) ReadLine() (string, error) {
	if p.readErr != nil {
		return "", p.readErr
	}

	for {
		b, err := p.reader.ReadByte()
		if err != nil {
			p.readErr = p.translateReadError(err)
			// Deliver a trailing partial line before reporting the end
			if len(p.pending) > 0 {
				return p.takePending(), nil
			}
			return "", p.readErr
		}

		if b == '\r' || b == '\n' {
			if len(p.pending) == 0 {
				continue
			}
			return p.takePending(), nil
		}
		p.pending = append(p.pending, b)
	}
}

func (p *Port) takePending() string {
	line := strings.ToValidUTF8(string(p.pending), "\uFFFD")
	p.pending = p.pending[:0]
	return line
}

// translateReadError maps every flavour of "the port went away" to io.EOF
func (p *Port) translateReadError(err error) error {
	if errors.Is(err, io.EOF) || p.closed.Load() {
		return io.EOF
	}

	var portErr *serial.PortError
	if errors.As(err, &portErr) && portErr.Code() == serial.PortClosed {
		return io.EOF
	}

	return NewSerialError("read", p.name, err)
}

// WriteLine writes line as-is. The caller appends the terminator.
func (p *Port) WriteLine(line string) error {
	if p.closed.Load() {
		return NewSerialError("write", p.name, ErrPortClosed)
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	data := []byte(line)
	for len(data) > 0 {
		n, err := p.rwc.Write(data)
		if err != nil {
			return NewSerialError("write", p.name, err)
		}
		data = data[n:]
	}
	return nil
}

// Close closes the underlying stream, unblocking a pending ReadLine.
// Subsequent calls return the first result.
func (p *Port) Close() error {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		if err := p.rwc.Close(); err != nil {
			p.closeErr = NewSerialError("close", p.name, err)
		}
	})
	return p.closeErr
}
