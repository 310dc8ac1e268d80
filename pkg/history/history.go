// Package history provides the operator's command history and Up/Down
// navigation over it
package history

import (
	"strings"
)

// Navigation tells the caller what to do with the input line after a
// history step
type Navigation int

const (
	// NavStay leaves the input line untouched
	NavStay Navigation = iota
	// NavLoad replaces the input line with the returned command
	NavLoad
	// NavClear empties the input line
	NavClear
)

// String returns the string representation of Navigation
func (n Navigation) String() string {
	switch n {
	case NavStay:
		return "stay"
	case NavLoad:
		return "load"
	case NavClear:
		return "clear"
	default:
		return "unknown"
	}
}

// noSelection means no entry is being navigated
const noSelection = -1

// CommandHistory stores submitted commands in order, oldest first.
// Entries are only ever appended within a session; when a limit is set the
// oldest entry is dropped to make room.
type CommandHistory struct {
	entries []string
	limit   int
	index   int
}

// New creates a command history. A limit of 0 or less keeps every command.
func New(limit int) *CommandHistory {
	if limit < 0 {
		limit = 0
	}
	return &CommandHistory{
		limit: limit,
		index: noSelection,
	}
}

// Record appends cmd unless it is blank and ends any navigation in progress.
// It reports whether the command was stored.
func (h *CommandHistory) Record(cmd string) bool {
	h.index = noSelection
	if strings.TrimSpace(cmd) == "" {
		return false
	}

	h.entries = append(h.entries, cmd)
	if h.limit > 0 && len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
	return true
}

// Previous steps one entry older. The first step selects the newest entry;
// further steps stop at the oldest one.
func (h *CommandHistory) Previous() (string, Navigation) {
	if len(h.entries) == 0 {
		return "", NavStay
	}

	if h.index == noSelection {
		h.index = len(h.entries) - 1
	} else if h.index > 0 {
		h.index--
	}
	return h.entries[h.index], NavLoad
}

// Next steps one entry newer. Stepping past the newest entry ends navigation
// and asks the caller to clear the input line.
func (h *CommandHistory) Next() (string, Navigation) {
	if h.index == noSelection {
		return "", NavStay
	}

	if h.index < len(h.entries)-1 {
		h.index++
		return h.entries[h.index], NavLoad
	}

	h.index = noSelection
	return "", NavClear
}

// ResetNavigation forgets the navigation cursor without touching entries
func (h *CommandHistory) ResetNavigation() {
	h.index = noSelection
}

// Navigating reports whether an entry is currently selected
func (h *CommandHistory) Navigating() bool {
	return h.index != noSelection
}

// Entries returns a copy of the stored commands, oldest first
func (h *CommandHistory) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of stored commands
func (h *CommandHistory) Len() int {
	return len(h.entries)
}
