package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeTransport struct {
	mu       sync.Mutex
	writes   []string
	writeErr error
	closed   int
}

func (f *fakeTransport) WriteLine(line string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		err := f.writeErr
		f.writeErr = nil
		return err
	}
	f.writes = append(f.writes, line)
	return nil
}

func (f *fakeTransport) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeTransport) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

func (f *fakeTransport) Closed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakeRenderer struct {
	mu      sync.Mutex
	height  int
	renders int
	last    RenderModel
}

func (f *fakeRenderer) Render(model RenderModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders++
	f.last = model
	return nil
}

func (f *fakeRenderer) ViewportHeight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.height
}

func (f *fakeRenderer) Renders() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renders
}

type logEntry struct {
	entry string
	ts    time.Time
}

type fakeSessionLog struct {
	mu       sync.Mutex
	entries  []logEntry
	failWith error
	appends  int
	closed   int
}

func (f *fakeSessionLog) Append(entry string, ts time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends++
	if f.failWith != nil {
		return f.failWith
	}
	f.entries = append(f.entries, logEntry{entry: entry, ts: ts})
	return nil
}

func (f *fakeSessionLog) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeSessionLog) Entries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.entry
	}
	return out
}

var errBoom = errors.New("boom")

// logCapture collects structured pslog output
type logCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *logCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *logCapture) messages(t *testing.T) []string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []string
	for _, line := range strings.Split(c.buf.String(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		payload := map[string]any{}
		if err := json.Unmarshal([]byte(line), &payload); err != nil {
			t.Fatalf("parse log entry %q: %v", line, err)
		}
		if value, ok := payload["message"].(string); ok {
			out = append(out, value)
		} else if value, ok := payload["msg"].(string); ok {
			out = append(out, value)
		}
	}
	return out
}
