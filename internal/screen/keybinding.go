package screen

import (
	"github.com/tip-cli/tip/internal/query"
	"github.com/tip-cli/tip/internal/terminal"
)

// Outcome is what a decoded keystroke does to the event loop (§6
// keybindings): most keystrokes edit the query and continue, but Ctrl-M
// accepts and Ctrl-C or a bare ESC (Escape(Timeout)) cancels.
type Outcome uint8

const (
	// Continue means the keystroke was applied to the query, if it edits
	// anything, and the loop keeps running.
	Continue Outcome = iota
	// Accepted means the loop should exit and the final accept pass (§6)
	// should run.
	Accepted
	// Cancelled means the loop should exit without running the accept pass.
	Cancelled
)

// Classify decides whether in terminates the loop and how (§6 keybindings).
func Classify(in terminal.Input) Outcome {
	switch {
	case in.Kind == terminal.Ctrl && in.Byte == 'm':
		return Accepted
	case in.Kind == terminal.Ctrl && in.Byte == 'c':
		return Cancelled
	case in.Kind == terminal.Escape && in.Esc == terminal.Timeout:
		return Cancelled
	default:
		return Continue
	}
}

// Apply edits q for every non-terminating keystroke (§6 keybindings):
// printable bytes insert, Delete erases, and the arrow keys move the
// cursor by one. Ctrl-Left/Ctrl-Right decode but are not bound to any
// action and are ignored, as are control characters other than Ctrl-M
// and Ctrl-C.
func Apply(q *query.Model, in terminal.Input) {
	switch in.Kind {
	case terminal.Printable:
		q.Insert(rune(in.Byte))
	case terminal.Delete:
		q.Delete()
	case terminal.Escape:
		switch in.Esc {
		case terminal.LeftArrow:
			q.MoveCursor(-1)
		case terminal.RightArrow:
			q.MoveCursor(1)
		}
	}
}
