package sessionlog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	got := Format("Temp=20C", ts)
	want := "2024-03-09T14:05:07Z Temp=20C\n"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFileLogger_Append(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	logger, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer logger.Close()

	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := logger.Append("Temp=20C", ts); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := logger.Append("> read", ts.Add(time.Second)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	// Entries are flushed immediately, so the file is complete before Close
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	want := "2024-01-02T03:04:05Z Temp=20C\n2024-01-02T03:04:06Z > read\n"
	if string(data) != want {
		t.Errorf("log contents = %q, want %q", string(data), want)
	}
}

func TestFileLogger_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	if err := os.WriteFile(path, []byte("previous\n"), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	logger, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := logger.Append("next", time.Now()); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 2 || lines[0] != "previous" || !strings.HasSuffix(lines[1], " next") {
		t.Errorf("log lines = %q", lines)
	}
}

func TestFileLogger_AppendAfterClose(t *testing.T) {
	logger, err := Open(filepath.Join(t.TempDir(), "session.log"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := logger.Append("late", time.Now()); !errors.Is(err, ErrClosed) {
		t.Errorf("Append() after Close() error = %v, want ErrClosed", err)
	}
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing directory", filepath.Join(t.TempDir(), "missing", "session.log")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Open(tt.path); err == nil {
				t.Errorf("Open(%q) expected error", tt.path)
			}
		})
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	disabled, err := New(filepath.Join(dir, "unused.log"), false)
	if err != nil {
		t.Fatalf("New(disabled) error = %v", err)
	}
	if _, ok := disabled.(Nop); !ok {
		t.Errorf("New(disabled) = %T, want Nop", disabled)
	}
	if err := disabled.Append("ignored", time.Now()); err != nil {
		t.Errorf("Nop.Append() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "unused.log")); !os.IsNotExist(err) {
		t.Error("disabled logger should not create a file")
	}

	enabled, err := New(filepath.Join(dir, "session.log"), true)
	if err != nil {
		t.Fatalf("New(enabled) error = %v", err)
	}
	defer enabled.Close()
	if _, ok := enabled.(*FileLogger); !ok {
		t.Errorf("New(enabled) = %T, want *FileLogger", enabled)
	}

	if _, err := New(filepath.Join(dir, "missing", "x.log"), true); err == nil {
		t.Error("New() with unwritable path expected error")
	}
}
