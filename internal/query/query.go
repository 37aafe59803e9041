// Package query owns the editable query buffer and cursor for the
// interactive prompt. It is mutated only from the event-loop thread;
// every mutation emits the resulting string on a dedicated channel so the
// subprocess supervisor can react to it.
package query

// Model is the editable query buffer. The zero value is an empty query with
// the cursor at 0; use New to wire up an emit channel.
type Model struct {
	chars  []rune
	cursor int

	updates chan<- string
}

// New returns an empty Model that sends its string on updates after every
// mutation. updates should be an unbounded or adequately buffered channel;
// Model never selects on send, matching the supervisor's obligation (§4.4)
// to consume every update in order rather than applying back-pressure here.
func New(updates chan<- string) *Model {
	return &Model{updates: updates}
}

// Len returns the number of characters currently in the buffer.
func (m *Model) Len() int {
	return len(m.chars)
}

// Cursor returns the current cursor index, always in [0, Len()].
func (m *Model) Cursor() int {
	return m.cursor
}

// String returns the current buffer contents.
func (m *Model) String() string {
	return string(m.chars)
}

// Insert inserts ch at the cursor and advances the cursor by one.
func (m *Model) Insert(ch rune) {
	m.chars = append(m.chars, 0)
	copy(m.chars[m.cursor+1:], m.chars[m.cursor:])
	m.chars[m.cursor] = ch
	m.cursor++
	m.emit()
}

// Delete removes the character immediately before the cursor, if any. It is
// a no-op when the cursor is at the start of the buffer.
func (m *Model) Delete() {
	if m.cursor == 0 {
		return
	}

	m.chars = append(m.chars[:m.cursor-1], m.chars[m.cursor:]...)
	m.cursor--
	m.emit()
}

// MoveCursor shifts the cursor by delta, clamped to [0, Len()].
func (m *Model) MoveCursor(delta int) {
	next := m.cursor + delta

	switch {
	case next < 0:
		next = 0
	case next > len(m.chars):
		next = len(m.chars)
	}

	m.cursor = next
}

func (m *Model) emit() {
	if m.updates == nil {
		return
	}

	m.updates <- m.String()
}

// Close signals that no further mutations will occur, closing updates so
// the supervisor can shut down (§4.4 shutdown, §5 channel-closed).
func (m *Model) Close() {
	if m.updates == nil {
		return
	}

	close(m.updates)
}
