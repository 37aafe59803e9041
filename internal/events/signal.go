//go:build unix

package events

import (
	"os"
	"os/signal"
	"syscall"
)

// RunSignalThread subscribes to window-change, interrupt, and termination
// signals and feeds the event channel until stop is closed (§4.5 item 1).
func RunSignalThread(out chan<- Event, stop <-chan struct{}) {
	sigCh := make(chan os.Signal, 1)

	signal.Notify(sigCh, syscall.SIGWINCH, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-stop:
			return
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGWINCH:
				out <- Event{Kind: Resize}
			case syscall.SIGINT, syscall.SIGTERM:
				out <- Event{Kind: Quit}
			}
		}
	}
}
