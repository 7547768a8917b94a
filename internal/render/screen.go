// Package render produces full-screen repaints as single batched writes.
//
// Every refresh builds one escape-sequence-annotated byte blob (hide
// cursor, repaint, reposition, show cursor) so the terminal receives the
// whole frame in one write and never shows a partially drawn screen.
package render

import (
	"bytes"
	"fmt"

	"github.com/hmori/quill/internal/buffer"
	"github.com/hmori/quill/internal/viewport"
)

// Status carries the text displayed in the two bottom bars.
type Status struct {
	Filename  string // empty shows the [No Name] placeholder
	Modified  bool
	LineCount int
	LastKey   string // label of the most recent key, for the status bar
	CursorRow int    // 1-based, for the right-aligned row/total indicator
	Message   string // message bar content, already filtered by age
}

// Renderer paints buffer contents into frames. A non-empty welcome banner
// is centered one third down the screen while the buffer is empty.
type Renderer struct {
	welcome string
}

// New creates a renderer with the given welcome banner; pass "" to
// disable the banner.
func New(welcome string) *Renderer {
	return &Renderer{welcome: welcome}
}

// Frame builds the complete repaint for one refresh: text rows, status
// bar, message bar, and the cursor repositioned to the viewport-relative
// render coordinates. The caller writes the returned bytes in a single
// system call.
func (r *Renderer) Frame(buf *buffer.Buffer, vp viewport.Viewport, cursorRow, cursorRX int, st Status) []byte {
	var out bytes.Buffer

	out.WriteString(HideCursor)
	out.WriteString(CursorHome)

	r.drawRows(&out, buf, vp)
	r.drawStatusBar(&out, vp.Cols, st)
	r.drawMessageBar(&out, vp.Cols, st.Message)

	out.WriteString(CursorTo(cursorRow-vp.RowOffset+1, cursorRX-vp.ColOffset+1))
	out.WriteString(ShowCursor)

	return out.Bytes()
}

func (r *Renderer) drawRows(out *bytes.Buffer, buf *buffer.Buffer, vp viewport.Viewport) {
	for y := 0; y < vp.Rows; y++ {
		fileRow := y + vp.RowOffset
		if fileRow >= buf.LineCount() {
			if buf.LineCount() == 0 && r.welcome != "" && y == vp.Rows/3 {
				r.drawWelcome(out, vp.Cols)
			} else {
				out.WriteByte('~')
			}
		} else {
			line := buf.Render(fileRow)
			if vp.ColOffset < len(line) {
				line = line[vp.ColOffset:]
			} else {
				line = ""
			}
			if len(line) > vp.Cols {
				line = line[:vp.Cols]
			}
			out.WriteString(line)
		}
		out.WriteString(ClearLine)
		out.WriteString("\r\n")
	}
}

func (r *Renderer) drawWelcome(out *bytes.Buffer, cols int) {
	banner := r.welcome
	if len(banner) > cols {
		banner = banner[:cols]
	}
	padding := (cols - len(banner)) / 2
	if padding > 0 {
		out.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		out.WriteByte(' ')
	}
	out.WriteString(banner)
}

func (r *Renderer) drawStatusBar(out *bytes.Buffer, cols int, st Status) {
	out.WriteString(InvertVideo)

	name := st.Filename
	if name == "" {
		name = "[No Name]"
	}
	if len(name) > 20 {
		name = name[:20]
	}
	modified := ""
	if st.Modified {
		modified = " (modified)"
	}
	left := fmt.Sprintf("%s - %d lines%s - key: %s", name, st.LineCount, modified, st.LastKey)
	if len(left) > cols {
		left = left[:cols]
	}
	right := fmt.Sprintf("%d/%d", st.CursorRow, st.LineCount)

	out.WriteString(left)
	for n := len(left); n < cols; n++ {
		if cols-n == len(right) {
			out.WriteString(right)
			break
		}
		out.WriteByte(' ')
	}

	out.WriteString(ResetVideo)
	out.WriteString("\r\n")
}

func (r *Renderer) drawMessageBar(out *bytes.Buffer, cols int, msg string) {
	out.WriteString(ClearLine)
	if len(msg) > cols {
		msg = msg[:cols]
	}
	out.WriteString(msg)
}
