package render

import "fmt"

// VT100 escape sequences used by the renderer.
const (
	ClearScreen = "\x1b[2J"
	CursorHome  = "\x1b[H"
	ClearLine   = "\x1b[K"
	HideCursor  = "\x1b[?25l"
	ShowCursor  = "\x1b[?25h"
	InvertVideo = "\x1b[7m"
	ResetVideo  = "\x1b[m"
)

// CursorTo returns the sequence positioning the cursor at the given
// 1-based screen row and column.
func CursorTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}
