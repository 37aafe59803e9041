//go:build unix

package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// DefaultEscapeTimeout is how long the reader waits for a follow-up byte
// after a bare ESC before concluding it was a standalone keypress (§4.1).
const DefaultEscapeTimeout = 50 * time.Millisecond

// DecodeError reports an unexpected byte during escape decoding (§7
// decoding errors, which are fatal per the spec's taxonomy).
type DecodeError struct {
	Context string
	Byte    byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("terminal input: %s: unexpected byte 0x%02x", e.Context, e.Byte)
}

// Reader owns the read side of /dev/tty: raw-mode lifecycle and keystroke
// decoding (§4.1).
type Reader struct {
	file    *os.File
	br      *bufio.Reader
	fd      int
	oldTerm *term.State

	escapeTimeout time.Duration
}

// OpenReader opens /dev/tty for reading. It does not itself enter raw mode;
// callers pair it with a Writer and call EnterRaw once both sides are open,
// matching §4.1's "on construction the writer... switches the input
// /dev/tty file descriptor to raw mode".
func OpenReader(escapeTimeout time.Duration) (*Reader, error) {
	f, err := os.OpenFile("/dev/tty", os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/tty for reading: %w", err)
	}

	if escapeTimeout <= 0 {
		escapeTimeout = DefaultEscapeTimeout
	}

	return &Reader{
		file:          f,
		br:            bufio.NewReaderSize(f, 1),
		fd:            int(f.Fd()),
		escapeTimeout: escapeTimeout,
	}, nil
}

// Fd returns the underlying file descriptor.
func (r *Reader) Fd() int {
	return r.fd
}

// EnterRaw switches the tty into raw mode and remembers the previous state
// for Restore.
func (r *Reader) EnterRaw() error {
	old, err := term.MakeRaw(r.fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}

	r.oldTerm = old

	return nil
}

// Restore puts back the terminal attributes captured by EnterRaw. Safe to
// call more than once and on a Reader that never entered raw mode.
func (r *Reader) Restore() error {
	if r.oldTerm == nil {
		return nil
	}

	err := term.Restore(r.fd, r.oldTerm)
	r.oldTerm = nil

	return err
}

// Close releases the underlying file. Restore must be called first if raw
// mode was entered.
func (r *Reader) Close() error {
	return r.file.Close()
}

// Next blocks until a full keystroke has been decoded from /dev/tty and
// returns it (§4.1 input decoding).
func (r *Reader) Next() (Input, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return Input{}, err
	}

	switch {
	case b == 0x00:
		return Input{}, &DecodeError{Context: "tty read", Byte: b}
	case b == 0x1b:
		return r.decodeEscape()
	case b == 0x7f:
		return Input{Kind: Delete}, nil
	case b >= 0x01 && b <= 0x1a:
		return Input{Kind: Ctrl, Byte: b - 1 + 'a'}, nil
	case b == 0x9b, b == 0x90, b == 0x9d:
		// Single-byte CSI/DCS/OSC introducers: mapped to Printable rather
		// than treated as fatal (§9 open question, resolved in SPEC_FULL.md).
		return Input{Kind: Printable, Byte: b}, nil
	default:
		return Input{Kind: Printable, Byte: b}, nil
	}
}

// decodeEscape implements §4.1's escape-reading mode: poll for one byte
// with a timeout to distinguish a bare ESC keypress from the start of a CSI
// sequence, then read the CSI sequence to its final byte.
func (r *Reader) decodeEscape() (Input, error) {
	b2, timedOut, err := r.pollByte(r.escapeTimeout)
	if err != nil {
		return Input{}, err
	}

	if timedOut {
		return Input{Kind: Escape, Esc: Timeout}, nil
	}

	if b2 != '[' {
		return Input{}, &DecodeError{Context: "escape introducer", Byte: b2}
	}

	params, err := r.readCSIParams()
	if err != nil {
		return Input{}, err
	}

	kind, ok := decodeTable[params]
	if !ok {
		// Escape consumed but no event emitted (§4.1).
		return r.Next()
	}

	return Input{Kind: Escape, Esc: kind}, nil
}

// readCSIParams accumulates bytes until a final byte in 0x40-0x7E,
// returning the parameter bytes seen before it (not including the final
// byte itself).
func (r *Reader) readCSIParams() (string, error) {
	var params []byte

	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return "", err
		}

		if b >= 0x40 && b <= 0x7e {
			return string(params), nil
		}

		params = append(params, b)
	}
}

// pollByte waits up to timeout for one byte to become available on the tty
// fd. It reports timedOut=true if none arrived in time.
func (r *Reader) pollByte(timeout time.Duration) (b byte, timedOut bool, err error) {
	if r.br.Buffered() > 0 {
		b, err = r.br.ReadByte()
		return b, false, err
	}

	fds := []unix.PollFd{{Fd: int32(r.fd), Events: unix.POLLIN}}

	n, perr := unix.Poll(fds, int(timeout.Milliseconds()))
	if perr != nil {
		if errors.Is(perr, unix.EINTR) {
			return 0, true, nil
		}

		return 0, false, fmt.Errorf("poll /dev/tty: %w", perr)
	}

	if n == 0 {
		return 0, true, nil
	}

	b, err = r.br.ReadByte()

	return b, false, err
}
