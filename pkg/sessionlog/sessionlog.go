// Package sessionlog mirrors session traffic to a timestamped text file
package sessionlog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// ErrClosed is returned when appending to a logger that was already closed
var ErrClosed = errors.New("session log is closed")

// Logger records session entries. Implementations are selected once at
// startup; the event loop never checks whether logging is enabled.
type Logger interface {
	Append(entry string, ts time.Time) error
	Close() error
}

// FileLogger appends "<RFC3339 timestamp> <entry>" lines to a file and
// flushes after every entry
type FileLogger struct {
	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

// Open opens path for appending, creating it if absent
func Open(path string) (*FileLogger, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path cannot be empty")
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	return &FileLogger{
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Append writes one entry and flushes it to the file
func (l *FileLogger) Append(entry string, ts time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return ErrClosed
	}

	line := Format(entry, ts)
	if _, err := l.writer.WriteString(line); err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}
	if err := l.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush log entry: %w", err)
	}
	return nil
}

// Close flushes pending data and closes the file. Closing twice is a no-op.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	flushErr := l.writer.Flush()
	closeErr := l.file.Close()
	l.file = nil
	l.writer = nil

	if flushErr != nil {
		return fmt.Errorf("failed to flush log file: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close log file: %w", closeErr)
	}
	return nil
}

// Format renders a single log line including the trailing newline
func Format(entry string, ts time.Time) string {
	return ts.Format(time.RFC3339) + " " + entry + "\n"
}

// Nop discards every entry
type Nop struct{}

// Append drops entry
func (Nop) Append(string, time.Time) error { return nil }

// Close does nothing
func (Nop) Close() error { return nil }

// New returns a FileLogger for path when enabled, otherwise Nop
func New(path string, enabled bool) (Logger, error) {
	if !enabled {
		return Nop{}, nil
	}
	logger, err := Open(path)
	if err != nil {
		return nil, err
	}
	return logger, nil
}
