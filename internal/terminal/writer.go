//go:build unix

package terminal

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// Escape sequences used to paint frames (§4.1 writing primitives). Kept as
// named constants in the style of the teacher's tui/ansi package rather
// than scattered literals.
const (
	seqAltScreenEnter = "\x1b[?1049h"
	seqAltScreenLeave = "\x1b[?1049l"
	seqClearAndHome   = "\x1b[2J\x1b[H\x1b[39m\x1b[49m\x1b[0m"
	seqHideCursor     = "\x1b[?25l"
	seqShowCursor     = "\x1b[?25h"
	moveToFmt         = "\x1b[%d;%dH"
)

// Writer owns the write side of /dev/tty: the alternate screen, cursor
// visibility, and frame flushing (§4.1). Raw mode is handled by Reader.
type Writer struct {
	mu    sync.Mutex
	file  *os.File
	bw    *bufio.Writer
	debug bool

	altEntered bool
}

// OpenWriter opens /dev/tty for writing. debug corresponds to TIP_DEBUG=true
// (§6): when set, the alternate screen is never entered or left, which is
// useful for inspecting rendering inline.
func OpenWriter(debug bool) (*Writer, error) {
	f, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/tty for writing: %w", err)
	}

	return &Writer{file: f, bw: bufio.NewWriter(f), debug: debug}, nil
}

// EnterScreen enters the alternate screen and clears it, unless debug mode
// is active (§4.1, §6).
func (w *Writer) EnterScreen() {
	if w.debug {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.bw.WriteString(seqAltScreenEnter)
	_, _ = w.bw.WriteString(seqClearAndHome)
	_ = w.bw.Flush()
	w.altEntered = true
}

// LeaveScreen leaves the alternate screen, unless debug mode is active. It
// must run on every exit path (§4.1).
func (w *Writer) LeaveScreen() {
	if w.debug || !w.altEntered {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.bw.WriteString(seqAltScreenLeave)
	_ = w.bw.Flush()
	w.altEntered = false
}

// ClearAndHome writes the clear-screen, home-cursor, and color-reset
// sequence (§4.1).
func (w *Writer) ClearAndHome() {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.bw.WriteString(seqClearAndHome)
}

// HideCursor hides the cursor.
func (w *Writer) HideCursor() {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.bw.WriteString(seqHideCursor)
}

// ShowCursor shows the cursor.
func (w *Writer) ShowCursor() {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.bw.WriteString(seqShowCursor)
}

// MoveTo moves the cursor to a 1-based line and column.
func (w *Writer) MoveTo(line, col int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = fmt.Fprintf(w.bw, moveToFmt, line, col)
}

// WriteBytes writes raw bytes to the frame buffer.
func (w *Writer) WriteBytes(p []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.bw.Write(p)
}

// WriteString writes a string to the frame buffer.
func (w *Writer) WriteString(s string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.bw.WriteString(s)
}

// CRLF writes a carriage-return/line-feed pair (§4.1 newline primitive).
func (w *Writer) CRLF() {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, _ = w.bw.WriteString("\r\n")
}

// Flush flushes any buffered output to /dev/tty.
func (w *Writer) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	_ = w.bw.Flush()
}

// Size returns the current terminal size, refreshed from the platform
// window-size ioctl (§4.1, §3 WindowSize).
func (w *Writer) Size() (cols, rows int, err error) {
	cols, rows, err = term.GetSize(int(w.file.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("get window size: %w", err)
	}

	return cols, rows, nil
}

// Close releases the underlying file. Callers must call LeaveScreen first.
func (w *Writer) Close() error {
	return w.file.Close()
}
