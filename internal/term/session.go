// Package term manages the raw-mode terminal session.
//
// A Session owns the terminal for the lifetime of the editor: it captures
// the original attributes, switches the terminal into raw mode, and
// guarantees the original attributes come back exactly once no matter how
// the process exits. Reads are configured with a 100ms timeout so the
// caller can poll for input without blocking indefinitely.
package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Session errors.
var (
	// ErrNotTerminal indicates the input file is not attached to a terminal.
	ErrNotTerminal = errors.New("not a terminal")

	// ErrWindowSize indicates the terminal dimensions could not be determined.
	ErrWindowSize = errors.New("window size unavailable")
)

// Session holds exclusive raw-mode control of a terminal.
type Session struct {
	in   *os.File
	out  *os.File
	orig unix.Termios

	restoreOnce sync.Once
	restoreErr  error
}

// Open captures the terminal's current attributes and switches it into raw
// mode: no echo, no line buffering, no signal keys, no flow control, no
// output post-processing. Reads return after at most 100ms even when no
// input has arrived (VMIN=0, VTIME=1).
func Open(in, out *os.File) (*Session, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, ErrNotTerminal
	}

	orig, err := unix.IoctlGetTermios(int(in.Fd()), unix.TCGETS)
	if err != nil {
		return nil, fmt.Errorf("reading terminal attributes: %w", err)
	}

	s := &Session{in: in, out: out, orig: *orig}

	raw := *orig
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1 // deciseconds

	if err := unix.IoctlSetTermios(int(in.Fd()), unix.TCSETS, &raw); err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}
	return s, nil
}

// Restore reinstates the attributes captured at Open. Only the first call
// touches the terminal; later calls return the first call's result. A
// terminal that cannot be restored is unusable, so callers treat an error
// here as fatal.
func (s *Session) Restore() error {
	s.restoreOnce.Do(func() {
		if err := unix.IoctlSetTermios(int(s.in.Fd()), unix.TCSETS, &s.orig); err != nil {
			s.restoreErr = fmt.Errorf("restoring terminal attributes: %w", err)
		}
	})
	return s.restoreErr
}

// Read fills buf with at most len(buf) bytes of raw input. A read timeout
// with no pending input returns (0, nil), not an error.
func (s *Session) Read(buf []byte) (int, error) {
	n, err := s.in.Read(buf)
	if err != nil {
		// VMIN=0 reads report no input as a zero-byte read, which the
		// os package surfaces as io.EOF. Cygwin reports EAGAIN instead.
		if errors.Is(err, io.EOF) || errors.Is(err, unix.EAGAIN) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading terminal: %w", err)
	}
	return n, nil
}

// Write sends raw bytes to the terminal.
func (s *Session) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// Size returns the terminal dimensions in rows and columns. When the
// winsize ioctl fails or reports zero columns it falls back to pushing the
// cursor to the bottom-right corner and asking the terminal where the
// cursor ended up.
func (s *Session) Size() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(s.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col != 0 {
		return int(ws.Row), int(ws.Col), nil
	}
	return s.probeSize()
}

// probeSize measures the terminal by moving the cursor as far right and
// down as it will go, then querying the resulting cursor position.
func (s *Session) probeSize() (int, int, error) {
	if _, err := s.out.WriteString("\x1b[999C\x1b[999B"); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrWindowSize, err)
	}
	if _, err := s.out.WriteString("\x1b[6n"); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrWindowSize, err)
	}

	// Collect the ESC[row;colR reply through the session's timed reads.
	var reply []byte
	var b [1]byte
	for len(reply) < 32 {
		n, err := s.Read(b[:])
		if err != nil {
			return 0, 0, err
		}
		if n == 0 || b[0] == 'R' {
			break
		}
		reply = append(reply, b[0])
	}
	return parseCursorReport(reply)
}

// parseCursorReport extracts rows and columns from a cursor position
// report of the form ESC [ row ; col (trailing R already stripped).
func parseCursorReport(reply []byte) (int, int, error) {
	if len(reply) < 2 || reply[0] != 0x1b || reply[1] != '[' {
		return 0, 0, ErrWindowSize
	}
	var rows, cols int
	if _, err := fmt.Sscanf(string(reply[2:]), "%d;%d", &rows, &cols); err != nil {
		return 0, 0, ErrWindowSize
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, ErrWindowSize
	}
	return rows, cols, nil
}
