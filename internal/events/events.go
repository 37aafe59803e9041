// Package events defines the tagged event type that the signal thread,
// input thread, and redraw throttler all feed into the event loop's single
// channel (§3 Event, §4.5).
package events

import "github.com/tip-cli/tip/internal/terminal"

// Kind discriminates the variants of Event.
type Kind uint8

const (
	// Resize signals that the window size changed.
	Resize Kind = iota
	// Input carries one decoded keystroke.
	Input
	// Redraw requests a repaint with no state change of its own.
	Redraw
	// Quit requests that the event loop exit.
	Quit
)

// Event is a tagged value produced by one of the event loop's three
// producer threads (§3, §4.5).
type Event struct {
	Kind  Kind
	Input terminal.Input // valid only when Kind == Input
	Err   error          // set on Kind == Quit when the input thread hit a fatal decode error (§7); nil for a clean signal-driven quit
}
