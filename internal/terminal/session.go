//go:build unix

package terminal

import (
	"errors"
	"time"
)

// Session bundles the read and write sides of /dev/tty and their shared
// lifecycle: on Open, the writer enters the alternate screen (unless
// debug) and the reader's fd is switched to raw mode; on Close, both are
// unwound in reverse order regardless of how the program is exiting (§4.1:
// "both actions must run on every exit path, including panics and
// signal-driven termination").
type Session struct {
	Reader *Reader
	Writer *Writer
}

// Open opens both sides of /dev/tty and enters raw mode / the alternate
// screen. debug corresponds to TIP_DEBUG=true.
func Open(debug bool, escapeTimeout time.Duration) (*Session, error) {
	reader, err := OpenReader(escapeTimeout)
	if err != nil {
		return nil, err
	}

	writer, err := OpenWriter(debug)
	if err != nil {
		_ = reader.Close()
		return nil, err
	}

	writer.EnterScreen()

	if err := reader.EnterRaw(); err != nil {
		writer.LeaveScreen()
		_ = writer.Close()
		_ = reader.Close()

		return nil, err
	}

	return &Session{Reader: reader, Writer: writer}, nil
}

// Close restores terminal attributes and leaves the alternate screen. Safe
// to call multiple times.
func (s *Session) Close() error {
	restoreErr := s.Reader.Restore()

	s.Writer.LeaveScreen()
	writerErr := s.Writer.Close()
	readerErr := s.Reader.Close()

	return errors.Join(restoreErr, writerErr, readerErr)
}
