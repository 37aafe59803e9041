package events

import (
	"sync/atomic"
	"time"
)

// RunThrottler coalesces pings from the redraw pipe into at most one Redraw
// event per interval (§4.5, §5). It holds an atomic dirty flag: a
// background ticker wakes every interval and, if the flag is set, clears it
// and emits one Redraw. Pings that arrive faster than interval are dropped,
// never queued. RunThrottler blocks until pings is closed, then returns
// after emitting any final pending Redraw.
func RunThrottler(pings <-chan struct{}, out chan<- Event, interval time.Duration) {
	var dirty atomic.Bool

	closed := make(chan struct{})

	go func() {
		defer close(closed)

		for range pings {
			dirty.Store(true)
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			if dirty.CompareAndSwap(true, false) {
				out <- Event{Kind: Redraw}
			}

			return
		case <-ticker.C:
			if dirty.CompareAndSwap(true, false) {
				out <- Event{Kind: Redraw}
			}
		}
	}
}
