// Package app wires the terminal session, query model, subprocess
// supervisor, and event producers into the renderer's event loop (§4.5). It
// is the one place that owns all five components at once; everything else
// in this module only knows about its own piece.
package app

import (
	"context"

	"github.com/tip-cli/tip/internal/config"
	"github.com/tip-cli/tip/internal/events"
	"github.com/tip-cli/tip/internal/query"
	"github.com/tip-cli/tip/internal/screen"
	"github.com/tip-cli/tip/internal/supervisor"
	"github.com/tip-cli/tip/internal/terminal"
)

// queryQueueSize approximates the unbounded query-update channel: a human
// typing at the keyboard cannot outrun a buffer this size, and the
// supervisor consumes strictly in order, so a bound here only exists to
// give the model's emit a channel to send on without selecting.
const queryQueueSize = 4096

// Result is what the event loop decided once it exits: whether the user
// accepted the query (Ctrl-M) or cancelled (Ctrl-C / bare ESC / signal),
// and the query string in effect at that moment.
type Result struct {
	Accepted bool
	Query    string
}

// Run opens the terminal session, spawns the supervisor and the three
// event-producer threads, and drives the render-then-block loop (§4.5)
// until the user accepts or cancels. command/args/stdin are passed straight
// through to the supervisor (§4.4 spawning rules); cfg supplies the debug
// flag, escape timeout, redraw throttle, and child-read chunk size.
func Run(command string, args []string, stdin []byte, cfg *config.Config) (Result, error) {
	session, err := terminal.Open(cfg.Debug(), cfg.EscapeTimeout())
	if err != nil {
		return Result{}, err
	}
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queries := make(chan string, queryQueueSize)
	redraw := make(chan struct{}, 1)
	evts := make(chan events.Event) // rendezvous: capacity 0 (§5)
	stopSignals := make(chan struct{})

	q := query.New(queries)

	sup := supervisor.New(command, args, stdin, cfg.ChunkSize())

	go sup.Run(ctx, queries, redraw)
	go events.RunInputThread(session.Reader, evts)
	go events.RunSignalThread(evts, stopSignals)
	go events.RunThrottler(redraw, evts, cfg.RedrawThrottle())

	defer close(stopSignals)
	defer q.Close()

	cols, rows, err := session.Writer.Size()
	if err != nil {
		cols, rows = 80, 24
	}

	for {
		render(session.Writer, cols, rows, q, sup.Snapshot())

		ev := <-evts

		switch ev.Kind {
		case events.Resize:
			if c, r, err := session.Writer.Size(); err == nil {
				cols, rows = c, r
			}
		case events.Input:
			switch screen.Classify(ev.Input) {
			case screen.Accepted:
				return Result{Accepted: true, Query: q.String()}, nil
			case screen.Cancelled:
				return Result{Accepted: false, Query: q.String()}, nil
			case screen.Continue:
				screen.Apply(q, ev.Input)
			}
		case events.Redraw:
			// Next iteration repaints; nothing else to do.
		case events.Quit:
			if ev.Err != nil {
				return Result{}, ev.Err
			}

			return Result{Accepted: false, Query: q.String()}, nil
		}
	}
}

// render paints one frame: clear, hide cursor, compose, then move the
// cursor to the prompt's recorded position, show it, and flush (§4.5 frame
// protocol).
func render(w *terminal.Writer, cols, rows int, q *query.Model, output []byte) {
	w.ClearAndHome()
	w.HideCursor()

	frame := screen.Compose(cols, rows, []rune(q.String()), q.Cursor(), output)
	w.WriteBytes(frame.Bytes)

	w.MoveTo(frame.CursorLine, frame.CursorCol)
	w.ShowCursor()
	w.Flush()
}
