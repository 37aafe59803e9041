package terminal

import "fmt"

// InputKind discriminates the variants of TerminalInput (§3).
type InputKind uint8

const (
	// Printable carries a single literal byte the user typed.
	Printable InputKind = iota
	// Ctrl carries a control character, normalized to 'a'-'z'.
	Ctrl
	// Delete is the 0x7F backspace/delete key.
	Delete
	// Escape carries one of the recognized multi-byte escape sequences.
	Escape
)

// EscapeKind discriminates the escape sequences §4.1 recognizes.
type EscapeKind uint8

const (
	// LeftArrow is CSI D.
	LeftArrow EscapeKind = iota
	// RightArrow is CSI C.
	RightArrow
	// CtrlLeftArrow is CSI 1;5D.
	CtrlLeftArrow
	// CtrlRightArrow is CSI 1;5C.
	CtrlRightArrow
	// Timeout marks a bare ESC keypress: no follow-up byte arrived within
	// the escape-read timeout, distinguishing it from the start of a CSI
	// sequence.
	Timeout
)

// Input is one decoded keystroke (§3 TerminalInput).
type Input struct {
	Kind InputKind
	Byte byte       // valid for Printable and Ctrl
	Esc  EscapeKind // valid for Escape
}

func (in Input) String() string {
	switch in.Kind {
	case Printable:
		return fmt.Sprintf("Printable(%q)", in.Byte)
	case Ctrl:
		return fmt.Sprintf("Ctrl(%q)", in.Byte)
	case Delete:
		return "Delete"
	case Escape:
		return fmt.Sprintf("Escape(%d)", in.Esc)
	default:
		return "Unknown"
	}
}

// decodeTable maps a terminated CSI parameter string to the EscapeKind it
// represents. Sequences that decode to an entry not present here are
// silently dropped (§4.1): the escape is consumed but no event is emitted.
var decodeTable = map[string]EscapeKind{
	"D":     LeftArrow,
	"C":     RightArrow,
	"1;5D":  CtrlLeftArrow,
	"1;5C":  CtrlRightArrow,
}
