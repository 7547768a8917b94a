package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hmori/quill/internal/buffer"
	"github.com/hmori/quill/internal/viewport"
)

func newBuffer(lines ...string) *buffer.Buffer {
	b := buffer.New(buffer.NewTabStops(8))
	b.Load(lines)
	return b
}

func frameRows(frame []byte) []string {
	return strings.Split(string(frame), "\r\n")
}

func TestFrameIsBracketedByCursorVisibility(t *testing.T) {
	r := New("quill")
	vp := viewport.Viewport{Rows: 5, Cols: 20}

	frame := r.Frame(newBuffer("hello"), vp, 0, 0, Status{LineCount: 1, CursorRow: 1})

	if !bytes.HasPrefix(frame, []byte(HideCursor+CursorHome)) {
		t.Errorf("frame should start with hide-cursor then home, got %q", frame[:16])
	}
	if !bytes.HasSuffix(frame, []byte(ShowCursor)) {
		t.Errorf("frame should end with show-cursor, got %q", frame[len(frame)-16:])
	}
}

func TestFrameDrawsBufferRows(t *testing.T) {
	r := New("")
	vp := viewport.Viewport{Rows: 4, Cols: 20}

	frame := r.Frame(newBuffer("one", "two"), vp, 0, 0, Status{LineCount: 2, CursorRow: 1})
	rows := frameRows(frame)

	if !strings.HasPrefix(strings.TrimPrefix(rows[0], HideCursor+CursorHome), "one") {
		t.Errorf("row 0 should show first line, got %q", rows[0])
	}
	if !strings.HasPrefix(rows[1], "two") {
		t.Errorf("row 1 should show second line, got %q", rows[1])
	}
	// Rows past the buffer get tildes.
	if !strings.HasPrefix(rows[2], "~") || !strings.HasPrefix(rows[3], "~") {
		t.Errorf("rows past buffer should be tildes, got %q, %q", rows[2], rows[3])
	}
	// Every text row is cleared to end of line.
	for i := 0; i < vp.Rows; i++ {
		if !strings.Contains(rows[i], ClearLine) {
			t.Errorf("row %d missing clear-to-end-of-line", i)
		}
	}
}

func TestFrameSlicesByColumnOffset(t *testing.T) {
	r := New("")
	vp := viewport.Viewport{ColOffset: 2, Rows: 1, Cols: 3}

	frame := r.Frame(newBuffer("abcdefgh"), vp, 0, 2, Status{LineCount: 1, CursorRow: 1})
	row := frameRows(frame)[0]
	row = strings.TrimPrefix(row, HideCursor+CursorHome)

	if !strings.HasPrefix(row, "cde"+ClearLine) {
		t.Errorf("expected slice %q clipped to width, got %q", "cde", row)
	}
}

func TestFrameWelcomeBanner(t *testing.T) {
	r := New("quill -- version 0.1.0")
	vp := viewport.Viewport{Rows: 9, Cols: 60}

	frame := r.Frame(newBuffer(), vp, 0, 0, Status{CursorRow: 1})
	rows := frameRows(frame)

	// Banner sits one third down the screen, centered behind a tilde.
	banner := rows[3]
	if !strings.HasPrefix(banner, "~") || !strings.Contains(banner, "quill -- version") {
		t.Errorf("expected centered banner on row 3, got %q", banner)
	}
	if pad := strings.Index(banner, "quill"); pad != (60-len("quill -- version 0.1.0"))/2 {
		t.Errorf("banner not centered: text starts at column %d", pad)
	}

	// No banner once the buffer has content.
	frame = r.Frame(newBuffer("x"), vp, 0, 0, Status{LineCount: 1, CursorRow: 1})
	if strings.Contains(string(frame), "version") {
		t.Error("banner should not be drawn for a non-empty buffer")
	}
}

func TestStatusBar(t *testing.T) {
	r := New("")
	vp := viewport.Viewport{Rows: 1, Cols: 60}

	frame := r.Frame(newBuffer("x"), vp, 0, 0, Status{
		Filename:  "notes.txt",
		LineCount: 1,
		LastKey:   "'x'(120)",
		CursorRow: 1,
	})
	s := string(frame)

	start := strings.Index(s, InvertVideo)
	end := strings.Index(s, ResetVideo)
	if start < 0 || end < 0 || end < start {
		t.Fatalf("status bar not bracketed by video inversion: %q", s)
	}
	bar := s[start+len(InvertVideo) : end]

	if !strings.HasPrefix(bar, "notes.txt - 1 lines - key: 'x'(120)") {
		t.Errorf("unexpected left status: %q", bar)
	}
	if len(bar) != 60 {
		t.Errorf("status bar should span the full width 60, got %d", len(bar))
	}
	if !strings.HasSuffix(bar, "1/1") {
		t.Errorf("expected right-aligned position indicator, got %q", bar)
	}
}

func TestStatusBarShowsModified(t *testing.T) {
	r := New("")
	vp := viewport.Viewport{Rows: 1, Cols: 60}

	frame := r.Frame(newBuffer("x"), vp, 0, 0, Status{
		Modified:  true,
		LineCount: 1,
		CursorRow: 1,
	})
	if !strings.Contains(string(frame), "(modified)") {
		t.Error("expected modified indicator in status bar")
	}
}

func TestStatusBarTruncatesToWidth(t *testing.T) {
	r := New("")
	vp := viewport.Viewport{Rows: 1, Cols: 10}

	frame := r.Frame(newBuffer("x"), vp, 0, 0, Status{
		Filename:  "a-rather-long-name.txt",
		LineCount: 1,
		LastKey:   "'x'(120)",
		CursorRow: 1,
	})
	s := string(frame)
	start := strings.Index(s, InvertVideo)
	end := strings.Index(s, ResetVideo)
	bar := s[start+len(InvertVideo) : end]

	if len(bar) != 10 {
		t.Errorf("expected bar clipped to 10 columns, got %d (%q)", len(bar), bar)
	}
}

func TestMessageBar(t *testing.T) {
	r := New("")
	vp := viewport.Viewport{Rows: 1, Cols: 20}

	frame := r.Frame(newBuffer("x"), vp, 0, 0, Status{LineCount: 1, CursorRow: 1, Message: "saved"})
	s := string(frame)

	end := strings.Index(s, ResetVideo)
	tail := s[end+len(ResetVideo):]
	if !strings.Contains(tail, ClearLine+"saved") {
		t.Errorf("expected message bar after status bar, got %q", tail)
	}
}

func TestFrameCursorPosition(t *testing.T) {
	r := New("")
	vp := viewport.Viewport{RowOffset: 10, ColOffset: 5, Rows: 3, Cols: 20}

	frame := r.Frame(newBuffer("x"), vp, 12, 9, Status{LineCount: 1, CursorRow: 13})
	if !strings.Contains(string(frame), CursorTo(3, 5)) {
		t.Errorf("expected cursor repositioned to viewport-relative (3,5), got %q", frame)
	}
}
