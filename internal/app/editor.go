// Package app binds key input to buffer mutations and drives the
// render/scroll loop.
package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/hmori/quill/internal/buffer"
	"github.com/hmori/quill/internal/config"
	"github.com/hmori/quill/internal/input"
	"github.com/hmori/quill/internal/render"
	"github.com/hmori/quill/internal/viewport"
	"github.com/hmori/quill/internal/watch"
)

// Version is the editor version shown in the welcome banner.
const Version = "0.1.0"

// reservedRows is the screen space taken by the status and message bars.
const reservedRows = 2

// saveQuietWindow is how long after a save the file watcher stays muted,
// so the editor's own write is not reported as an external change.
const saveQuietWindow = 500 * time.Millisecond

// Terminal is the subset of the raw session the editor drives. Read
// follows the session contract: (0, nil) when no input arrived before the
// timeout.
type Terminal interface {
	io.Reader
	io.Writer
	Size() (rows, cols int, err error)
}

// Options configures a new editor.
type Options struct {
	// Filename is the file to edit; empty starts with an unnamed buffer.
	Filename string

	// Config holds the loaded settings.
	Config config.Config

	// Logger receives diagnostics; nil disables logging.
	Logger *Logger
}

// Editor owns the whole editing state: the buffer, the cursor in file and
// render coordinates, the viewport, and the status line. All mutation
// happens inside its loop, one keystroke at a time.
type Editor struct {
	term     Terminal
	keys     *input.Decoder
	buf      *buffer.Buffer
	vp       viewport.Viewport
	renderer *render.Renderer
	log      *Logger

	// Cursor position in file coordinates, plus the derived render column.
	cx, cy int
	rx     int

	filename   string
	statusMsg  string
	statusTime time.Time
	msgTimeout time.Duration
	lastKey    string

	watcher    *watch.Watcher
	quietUntil time.Time
}

// New creates an editor on the given terminal, loading opts.Filename into
// the buffer when set. A missing or unreadable file starts an empty
// buffer; only terminal failures are fatal here.
func New(term Terminal, opts Options) (*Editor, error) {
	rows, cols, err := term.Size()
	if err != nil {
		return nil, err
	}
	rows -= reservedRows
	if rows < 1 {
		rows = 1
	}

	log := opts.Logger
	if log == nil {
		log = NopLogger()
	}

	welcome := ""
	if opts.Config.Welcome {
		welcome = fmt.Sprintf("quill editor -- version %s", Version)
	}

	e := &Editor{
		term:       term,
		keys:       input.NewDecoder(term),
		buf:        buffer.New(buffer.NewTabStops(opts.Config.TabWidth)),
		vp:         viewport.Viewport{Rows: rows, Cols: cols},
		renderer:   render.New(welcome),
		log:        log,
		msgTimeout: opts.Config.MessageTimeout(),
	}

	if opts.Filename != "" {
		e.open(opts.Filename)
	}

	e.SetStatusMessage("HELP: Ctrl-S = save | Ctrl-Q = quit")
	return e, nil
}

// Close releases resources owned by the editor.
func (e *Editor) Close() error {
	if e.watcher != nil {
		return e.watcher.Close()
	}
	return nil
}

// open loads path into the buffer. Per the editor's contract a file that
// cannot be read starts as an empty buffer rather than an error.
func (e *Editor) open(path string) {
	e.filename = path

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			e.log.Warn("open %s: %v", path, err)
		}
		return
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}
	e.buf.Load(lines)
	e.log.Info("opened %s: %d lines", path, len(lines))

	w, err := watch.New(path)
	if err != nil {
		e.log.Warn("watching %s: %v", path, err)
		return
	}
	e.watcher = w
}

// SetStatusMessage formats and stamps a message for the message bar.
func (e *Editor) SetStatusMessage(format string, args ...any) {
	e.statusMsg = fmt.Sprintf(format, args...)
	e.statusTime = time.Now()
}

// Run is the editor loop: decode one key, repaint, dispatch. It returns
// ErrQuit on a normal quit and the underlying error on terminal failure.
func (e *Editor) Run() error {
	for {
		ev, err := e.keys.Next()
		if err != nil {
			return err
		}

		e.checkFileChanged()

		if err := e.refresh(ev); err != nil {
			return err
		}
		if ev.IsNone() {
			continue
		}

		if err := e.dispatch(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				// The final screen write: clear and home, nothing after.
				if _, werr := e.term.Write([]byte(render.ClearScreen + render.CursorHome)); werr != nil {
					return werr
				}
			}
			return err
		}
	}
}

// checkFileChanged surfaces external modification of the open file,
// ignoring the quiet window right after the editor's own save.
func (e *Editor) checkFileChanged() {
	if e.watcher == nil || !e.watcher.Changed() {
		return
	}
	if time.Now().Before(e.quietUntil) {
		return
	}
	e.log.Info("%s changed on disk", e.filename)
	e.SetStatusMessage("WARNING: %s changed on disk", e.filename)
}

// refresh recomputes the viewport for the current cursor and writes one
// batched frame to the terminal.
func (e *Editor) refresh(ev input.Event) error {
	e.scroll()

	if !ev.IsNone() {
		e.lastKey = ev.String()
	}
	st := render.Status{
		Filename:  e.filename,
		Modified:  e.buf.Modified(),
		LineCount: e.buf.LineCount(),
		LastKey:   e.lastKey,
		CursorRow: e.cy + 1,
		Message:   e.visibleMessage(),
	}

	frame := e.renderer.Frame(e.buf, e.vp, e.cy, e.rx, st)
	if _, err := e.term.Write(frame); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// scroll derives the render column from the cursor's file position and
// clamps the viewport so the cursor stays visible.
func (e *Editor) scroll() {
	e.rx = 0
	if e.cy < e.buf.LineCount() {
		e.rx = viewport.RenderColumn(e.buf.Line(e.cy), e.cx, e.buf.TabStops().Width())
	}
	e.vp.Clamp(e.cy, e.rx)
}

func (e *Editor) visibleMessage() string {
	if e.statusMsg != "" && time.Since(e.statusTime) < e.msgTimeout {
		return e.statusMsg
	}
	return ""
}

// dispatch routes one key event to the matching buffer or cursor
// mutation.
func (e *Editor) dispatch(ev input.Event) error {
	switch {
	case ev.Key == input.KeyRune && ev.Rune == input.Ctrl('q'):
		return ErrQuit

	case ev.Key == input.KeyRune && ev.Rune == input.Ctrl('s'):
		e.save()

	case ev.Key == input.KeyEnter:
		e.buf.SplitLine(e.cy, e.cx)
		e.cy++
		e.cx = 0

	case ev.Key == input.KeyBackspace,
		ev.Key == input.KeyDelete,
		ev.Key == input.KeyRune && ev.Rune == input.Ctrl('h'):
		if ev.Key == input.KeyDelete {
			e.moveCursor(input.KeyRight)
		}
		e.deleteChar()

	case ev.Key == input.KeyHome:
		e.cx = 0

	case ev.Key == input.KeyEnd:
		if e.cy < e.buf.LineCount() {
			e.cx = e.buf.LineLen(e.cy)
		}

	case ev.Key == input.KeyPageUp, ev.Key == input.KeyPageDown:
		e.pageMove(ev.Key)

	case ev.Key.IsArrow():
		e.moveCursor(ev.Key)

	case ev.Key == input.KeyEscape:
		// Ignored: bare escape and unrecognized sequences.

	case ev.Key == input.KeyRune && ev.Rune == input.Ctrl('l'):
		// Traditional refresh key; every iteration repaints anyway.

	case ev.Key == input.KeyRune:
		e.insertChar(byte(ev.Rune))
	}
	return nil
}

// moveCursor applies one single-line cursor movement, wrapping across
// line boundaries for left/right and snapping to the end of a shorter
// line afterwards.
func (e *Editor) moveCursor(key input.Key) {
	switch key {
	case input.KeyLeft:
		if e.cx > 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = e.buf.LineLen(e.cy)
		}
	case input.KeyRight:
		if e.cy < e.buf.LineCount() {
			if e.cx < e.buf.LineLen(e.cy) {
				e.cx++
			} else {
				e.cy++
				e.cx = 0
			}
		}
	case input.KeyUp:
		if e.cy > 0 {
			e.cy--
		}
	case input.KeyDown:
		if e.cy < e.buf.LineCount() {
			e.cy++
		}
	}

	// Snap back when the move landed past the end of a shorter line.
	if e.cx > e.buf.LineLen(e.cy) {
		e.cx = e.buf.LineLen(e.cy)
	}
}

// pageMove repositions the cursor to the viewport edge, then repeats the
// single-line movement a screenful of times so all the per-line clamping
// applies.
func (e *Editor) pageMove(key input.Key) {
	arrow := input.KeyUp
	if key == input.KeyPageUp {
		e.cy = e.vp.RowOffset
	} else {
		arrow = input.KeyDown
		e.cy = e.vp.RowOffset + e.vp.Rows - 1
		if e.cy > e.buf.LineCount() {
			e.cy = e.buf.LineCount()
		}
	}

	for times := e.vp.Rows; times > 0; times-- {
		e.moveCursor(arrow)
	}
}

func (e *Editor) insertChar(ch byte) {
	e.buf.InsertChar(e.cy, e.cx, ch)
	e.cx++
}

func (e *Editor) deleteChar() {
	if e.cy == e.buf.LineCount() {
		return
	}
	if e.cy == 0 && e.cx == 0 {
		return
	}

	if e.cx > 0 {
		e.buf.DeleteChar(e.cy, e.cx)
		e.cx--
	} else {
		prevLen := e.buf.LineLen(e.cy - 1)
		e.buf.DeleteChar(e.cy, e.cx)
		e.cy--
		e.cx = prevLen
	}
}

// save serializes the buffer to the open filename. Failures are surfaced
// on the message bar rather than swallowed.
func (e *Editor) save() {
	if e.filename == "" {
		e.SetStatusMessage("no filename to save to")
		return
	}

	data := e.buf.Serialize()
	if err := os.WriteFile(e.filename, []byte(data), 0o644); err != nil {
		e.log.Error("save %s: %v", e.filename, err)
		e.SetStatusMessage("save failed: %v", err)
		return
	}

	e.buf.ClearModified()
	e.quietUntil = time.Now().Add(saveQuietWindow)
	e.log.Info("saved %s: %d bytes", e.filename, len(data))
	e.SetStatusMessage("%d bytes written to %s", len(data), e.filename)
}

// Cursor returns the cursor position in file coordinates.
func (e *Editor) Cursor() (row, col int) {
	return e.cy, e.cx
}

// Buffer returns the editor's text buffer.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.buf
}

// Viewport returns the current viewport.
func (e *Editor) Viewport() viewport.Viewport {
	return e.vp
}
