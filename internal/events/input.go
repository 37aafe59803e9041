package events

import "github.com/tip-cli/tip/internal/terminal"

// InputSource decodes one keystroke at a time; *terminal.Reader implements
// it.
type InputSource interface {
	Next() (terminal.Input, error)
}

// RunInputThread continuously decodes keystrokes from src and pushes
// Input events until src.Next returns an error, at which point it sends a
// Quit carrying that error and returns — a decoding error is fatal (§7
// decoding errors propagate as fatal): the event loop still restores the
// terminal on its way out (§4.5 item 2), but the error rides along so the
// caller can exit nonzero instead of treating it as a clean cancel.
func RunInputThread(src InputSource, out chan<- Event) {
	for {
		in, err := src.Next()
		if err != nil {
			out <- Event{Kind: Quit, Err: err}
			return
		}

		out <- Event{Kind: Input, Input: in}
	}
}
