package buffer

import "strings"

// DefaultTabWidth is the column interval between tab stops.
const DefaultTabWidth = 8

// TabStops expands tab characters to absolute, fixed-width column stops.
// A tab advances the render column to the next multiple of the width,
// counted from the start of the rendered line.
type TabStops struct {
	width int
}

// NewTabStops creates tab stops at the given column interval. Widths below
// 1 fall back to the default.
func NewTabStops(width int) TabStops {
	if width < 1 {
		width = DefaultTabWidth
	}
	return TabStops{width: width}
}

// Width returns the column interval between stops.
func (t TabStops) Width() int {
	return t.width
}

// NextStop returns the first tab stop column after col.
func (t TabStops) NextStop(col int) int {
	return col + t.width - col%t.width
}

// Expand returns s with every tab replaced by enough spaces to reach the
// next tab stop.
func (t TabStops) Expand(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	col := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' {
			next := t.NextStop(col)
			for col < next {
				b.WriteByte(' ')
				col++
			}
			continue
		}
		b.WriteByte(s[i])
		col++
	}
	return b.String()
}

// ExpandedWidth returns the rendered width of s.
func (t TabStops) ExpandedWidth(s string) int {
	col := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\t' {
			col = t.NextStop(col)
		} else {
			col++
		}
	}
	return col
}
