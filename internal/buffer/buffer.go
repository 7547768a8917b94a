// Package buffer owns the ordered sequence of text lines being edited.
//
// Each line keeps its raw bytes alongside a derived render form with tabs
// expanded; every mutation re-derives the render form before returning, so
// the two never drift apart between keystrokes.
package buffer

import "strings"

// Line is one logical line of text, without its trailing newline, plus the
// display form used for rendering.
type Line struct {
	Raw    string
	Render string
}

// Buffer holds the lines of the file being edited. Line order is the
// vertical file order; row indices run 0..LineCount()-1, with the row equal
// to LineCount() acting as a virtual empty line that materializes on the
// first insert.
type Buffer struct {
	lines    []Line
	tabs     TabStops
	modified bool
}

// New creates an empty buffer using the given tab stops.
func New(tabs TabStops) *Buffer {
	return &Buffer{tabs: tabs}
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the raw text of row, or "" when row is out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row].Raw
}

// Render returns the display form of row, or "" when row is out of range.
func (b *Buffer) Render(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row].Render
}

// LineLen returns the raw byte length of row, or 0 when row is out of range.
func (b *Buffer) LineLen(row int) int {
	return len(b.Line(row))
}

// Modified reports whether the buffer has unsaved mutations.
func (b *Buffer) Modified() bool {
	return b.modified
}

// ClearModified resets the unsaved-changes flag, typically after a save.
func (b *Buffer) ClearModified() {
	b.modified = false
}

// TabStops returns the tab stops used for render derivation.
func (b *Buffer) TabStops() TabStops {
	return b.tabs
}

// Load replaces the buffer content with the given lines. It resets the
// modified flag.
func (b *Buffer) Load(lines []string) {
	b.lines = make([]Line, len(lines))
	for i, raw := range lines {
		b.lines[i] = b.newLine(raw)
	}
	b.modified = false
}

// Serialize concatenates every line with a trailing newline, including the
// last.
func (b *Buffer) Serialize() string {
	var sb strings.Builder
	for i := range b.lines {
		sb.WriteString(b.lines[i].Raw)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// InsertChar inserts ch at column col of line row. Inserting at
// row == LineCount() appends a new empty line first, materializing the
// virtual line the cursor was parked on.
func (b *Buffer) InsertChar(row, col int, ch byte) {
	if row == len(b.lines) {
		b.lines = append(b.lines, b.newLine(""))
	}
	if row < 0 || row >= len(b.lines) {
		return
	}
	raw := b.lines[row].Raw
	col = clamp(col, 0, len(raw))
	b.setLine(row, raw[:col]+string(ch)+raw[col:])
	b.modified = true
}

// SplitLine breaks line row at column col: the suffix moves to a new line
// at row+1 and line row keeps the prefix. Splitting the virtual line past
// the end appends a single empty line.
func (b *Buffer) SplitLine(row, col int) {
	if row == len(b.lines) {
		b.lines = append(b.lines, b.newLine(""))
		b.modified = true
		return
	}
	if row < 0 || row >= len(b.lines) {
		return
	}
	raw := b.lines[row].Raw
	col = clamp(col, 0, len(raw))

	b.lines = append(b.lines, Line{})
	copy(b.lines[row+2:], b.lines[row+1:])
	b.lines[row+1] = b.newLine(raw[col:])
	b.setLine(row, raw[:col])
	b.modified = true
}

// DeleteChar removes the byte immediately before column col of line row.
// At col == 0 it joins line row into the previous line, the only operation
// that shrinks the line count. Deleting at (0, 0) or on the virtual line
// past the end is a no-op.
func (b *Buffer) DeleteChar(row, col int) {
	if row == len(b.lines) {
		return
	}
	if row < 0 || row > len(b.lines) {
		return
	}
	if row == 0 && col == 0 {
		return
	}

	if col > 0 {
		raw := b.lines[row].Raw
		if col > len(raw) {
			col = len(raw)
		}
		if col == 0 {
			return
		}
		b.setLine(row, raw[:col-1]+raw[col:])
	} else {
		b.setLine(row-1, b.lines[row-1].Raw+b.lines[row].Raw)
		b.lines = append(b.lines[:row], b.lines[row+1:]...)
	}
	b.modified = true
}

// setLine replaces the raw text of row and re-derives its render form.
func (b *Buffer) setLine(row int, raw string) {
	b.lines[row] = b.newLine(raw)
}

func (b *Buffer) newLine(raw string) Line {
	return Line{Raw: raw, Render: b.tabs.Expand(raw)}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
