package buffer

import (
	"strings"
	"testing"
)

func newTestBuffer(lines ...string) *Buffer {
	b := New(NewTabStops(8))
	b.Load(lines)
	return b
}

func TestInsertChar(t *testing.T) {
	b := newTestBuffer("hello")

	b.InsertChar(0, 5, 'X')
	if got := b.Line(0); got != "helloX" {
		t.Errorf("expected %q, got %q", "helloX", got)
	}
	if !b.Modified() {
		t.Error("expected modified flag after insert")
	}

	b.InsertChar(0, 0, '>')
	if got := b.Line(0); got != ">helloX" {
		t.Errorf("expected %q, got %q", ">helloX", got)
	}
}

func TestInsertCharOnVirtualLine(t *testing.T) {
	b := New(NewTabStops(8))

	// Cursor parked one past the last line of an empty buffer.
	b.InsertChar(0, 0, 'a')
	if b.LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", b.LineCount())
	}
	if got := b.Line(0); got != "a" {
		t.Errorf("expected %q, got %q", "a", got)
	}

	b2 := newTestBuffer("one")
	b2.InsertChar(1, 0, 'b')
	if b2.LineCount() != 2 {
		t.Fatalf("expected 2 lines, got %d", b2.LineCount())
	}
	if got := b2.Line(1); got != "b" {
		t.Errorf("expected %q, got %q", "b", got)
	}
}

func TestInsertCharKeepsRenderInSync(t *testing.T) {
	b := newTestBuffer("ab")

	b.InsertChar(0, 1, '\t')
	if got := b.Line(0); got != "a\tb" {
		t.Fatalf("expected %q, got %q", "a\tb", got)
	}
	want := "a" + strings.Repeat(" ", 7) + "b"
	if got := b.Render(0); got != want {
		t.Errorf("expected render %q, got %q", want, got)
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		row   int
		col   int
		want  []string
	}{
		{name: "middle", lines: []string{"hello"}, row: 0, col: 2, want: []string{"he", "llo"}},
		{name: "start", lines: []string{"hello"}, row: 0, col: 0, want: []string{"", "hello"}},
		{name: "end", lines: []string{"hello"}, row: 0, col: 5, want: []string{"hello", ""}},
		{name: "between lines", lines: []string{"ab", "cd"}, row: 0, col: 1, want: []string{"a", "b", "cd"}},
		{name: "virtual line", lines: nil, row: 0, col: 0, want: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuffer(tt.lines...)
			b.SplitLine(tt.row, tt.col)
			if b.LineCount() != len(tt.want) {
				t.Fatalf("expected %d lines, got %d", len(tt.want), b.LineCount())
			}
			for i, w := range tt.want {
				if got := b.Line(i); got != w {
					t.Errorf("line %d: expected %q, got %q", i, w, got)
				}
			}
		})
	}
}

func TestDeleteChar(t *testing.T) {
	b := newTestBuffer("hello")

	b.DeleteChar(0, 5)
	if got := b.Line(0); got != "hell" {
		t.Errorf("expected %q, got %q", "hell", got)
	}
	b.DeleteChar(0, 1)
	if got := b.Line(0); got != "ell" {
		t.Errorf("expected %q, got %q", "ell", got)
	}
}

func TestDeleteCharJoinsLines(t *testing.T) {
	b := newTestBuffer("ab", "cd")

	b.DeleteChar(1, 0)
	if b.LineCount() != 1 {
		t.Fatalf("expected 1 line after join, got %d", b.LineCount())
	}
	if got := b.Line(0); got != "abcd" {
		t.Errorf("expected %q, got %q", "abcd", got)
	}
	if !b.Modified() {
		t.Error("expected modified flag after join")
	}
}

func TestDeleteCharBoundaries(t *testing.T) {
	b := newTestBuffer("ab", "cd")

	// Start of buffer.
	b.DeleteChar(0, 0)
	if b.LineCount() != 2 || b.Line(0) != "ab" {
		t.Errorf("delete at (0,0) should be a no-op, got %d lines, line 0 %q", b.LineCount(), b.Line(0))
	}
	if b.Modified() {
		t.Error("no-op delete should not set modified flag")
	}

	// Virtual line past the end.
	b.DeleteChar(2, 0)
	if b.LineCount() != 2 {
		t.Errorf("delete on virtual line should be a no-op, got %d lines", b.LineCount())
	}
}

func TestLoadSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "single line", text: "hello\n"},
		{name: "multiple lines", text: "one\ntwo\nthree\n"},
		{name: "empty lines", text: "\n\n\n"},
		{name: "empty", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []string
			if tt.text != "" {
				lines = strings.Split(strings.TrimSuffix(tt.text, "\n"), "\n")
			}
			b := newTestBuffer(lines...)
			if got := b.Serialize(); got != tt.text {
				t.Errorf("expected %q, got %q", tt.text, got)
			}
		})
	}
}

func TestLoadResetsModified(t *testing.T) {
	b := newTestBuffer("x")
	b.InsertChar(0, 0, 'y')
	if !b.Modified() {
		t.Fatal("expected modified flag after insert")
	}
	b.Load([]string{"fresh"})
	if b.Modified() {
		t.Error("expected modified flag cleared after load")
	}
}
