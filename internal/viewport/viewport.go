// Package viewport maps the cursor's file coordinates onto the visible
// screen window.
package viewport

// RenderColumn returns the display column for byte position col of line,
// with tabs advancing to absolute stops every tabWidth columns. It is a
// pure function of the line content before col.
func RenderColumn(line string, col, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	rx := 0
	for i := 0; i < col && i < len(line); i++ {
		if line[i] == '\t' {
			rx += (tabWidth - 1) - rx%tabWidth
		}
		rx++
	}
	return rx
}

// Viewport is the rectangular window into the buffer currently on screen:
// scroll offsets in file coordinates plus the screen dimensions in text
// rows and columns.
type Viewport struct {
	RowOffset int
	ColOffset int
	Rows      int
	Cols      int
}

// Clamp moves the offsets the minimal distance needed to keep the cursor
// inside the visible rectangle. Row and column are adjusted independently;
// applying Clamp twice with the same cursor yields the same offsets.
func (v *Viewport) Clamp(row, rx int) {
	if row < v.RowOffset {
		v.RowOffset = row
	}
	if row >= v.RowOffset+v.Rows {
		v.RowOffset = row - v.Rows + 1
	}
	if rx < v.ColOffset {
		v.ColOffset = rx
	}
	if rx >= v.ColOffset+v.Cols {
		v.ColOffset = rx - v.Cols + 1
	}
}
