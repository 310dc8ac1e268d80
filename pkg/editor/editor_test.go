package editor

import "testing"

func TestEditor_InsertAndMove(t *testing.T) {
	e := New()
	for _, r := range "AT+RST" {
		e.InsertRune(r)
	}
	if got := e.String(); got != "AT+RST" {
		t.Fatalf("String() = %q, want %q", got, "AT+RST")
	}
	if e.Cursor() != 6 {
		t.Errorf("Cursor() = %d, want 6", e.Cursor())
	}

	e.MoveLeft()
	e.MoveLeft()
	e.InsertRune('X')
	if got := e.String(); got != "AT+RXST" {
		t.Errorf("String() after mid insert = %q, want %q", got, "AT+RXST")
	}
	if e.Cursor() != 5 {
		t.Errorf("Cursor() after mid insert = %d, want 5", e.Cursor())
	}
}

func TestEditor_CursorBounds(t *testing.T) {
	e := New()
	e.MoveLeft()
	e.MoveRight()
	if e.Cursor() != 0 {
		t.Errorf("Cursor() on empty editor = %d, want 0", e.Cursor())
	}

	e.SetText("ab")
	e.MoveRight()
	if e.Cursor() != 2 {
		t.Errorf("Cursor() past end = %d, want 2", e.Cursor())
	}
	e.MoveStart()
	e.MoveLeft()
	if e.Cursor() != 0 {
		t.Errorf("Cursor() before start = %d, want 0", e.Cursor())
	}
	e.MoveEnd()
	if e.Cursor() != 2 {
		t.Errorf("MoveEnd() cursor = %d, want 2", e.Cursor())
	}
}

func TestEditor_Backspace(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		moveLeft   int
		wantText   string
		wantCursor int
	}{
		{"at end", "abc", 0, "ab", 2},
		{"in middle", "abc", 1, "ac", 1},
		{"at start", "abc", 3, "abc", 0},
		{"empty", "", 0, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			e.SetText(tt.text)
			for i := 0; i < tt.moveLeft; i++ {
				e.MoveLeft()
			}
			e.Backspace()
			if e.String() != tt.wantText || e.Cursor() != tt.wantCursor {
				t.Errorf("Backspace() = %q@%d, want %q@%d", e.String(), e.Cursor(), tt.wantText, tt.wantCursor)
			}
		})
	}
}

func TestEditor_Delete(t *testing.T) {
	e := New()
	e.SetText("abc")
	e.Delete()
	if e.String() != "abc" {
		t.Errorf("Delete() at end changed text to %q", e.String())
	}

	e.MoveStart()
	e.Delete()
	if e.String() != "bc" || e.Cursor() != 0 {
		t.Errorf("Delete() at start = %q@%d, want bc@0", e.String(), e.Cursor())
	}
}

func TestEditor_MultibyteRunes(t *testing.T) {
	e := New()
	e.SetText("temp°C")
	if e.Len() != 6 {
		t.Errorf("Len() = %d, want 6 runes", e.Len())
	}
	e.MoveLeft()
	e.Backspace()
	if got := e.String(); got != "tempC" {
		t.Errorf("String() = %q, want %q", got, "tempC")
	}
}

func TestEditor_Take(t *testing.T) {
	e := New()
	e.SetText("read 1")
	e.MoveStart()

	if got := e.Take(); got != "read 1" {
		t.Errorf("Take() = %q, want %q", got, "read 1")
	}
	if e.Len() != 0 || e.Cursor() != 0 {
		t.Errorf("editor not empty after Take(): %q@%d", e.String(), e.Cursor())
	}
	if got := e.Take(); got != "" {
		t.Errorf("second Take() = %q, want empty", got)
	}
}

func TestEditor_SetTextEmptyClears(t *testing.T) {
	e := New()
	e.SetText("x")
	e.SetText("")
	if e.Len() != 0 || e.Cursor() != 0 {
		t.Errorf("SetText(\"\") left %q@%d", e.String(), e.Cursor())
	}
}

func TestEditor_Blank(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"\t ", true},
		{" a ", false},
	}
	for _, tt := range tests {
		e := New()
		e.SetText(tt.text)
		if got := e.Blank(); got != tt.want {
			t.Errorf("Blank() for %q = %v, want %v", tt.text, got, tt.want)
		}
	}
}
