// Package supervisor owns at most one live child process at a time,
// respawning it on every new query string and streaming its combined
// stdout-then-stderr bytes into a shared OutputBuffer (§4.4).
package supervisor

import "context"

// Supervisor spawns, feeds, reads, and cancels the child process for the
// current query.
type Supervisor struct {
	command   string
	args      []string
	stdin     []byte
	chunkSize int

	out *OutputBuffer
}

// New returns a Supervisor for command/args, piping stdin to each spawned
// child if non-nil, otherwise the null device (§4.4 spawning rules). Reads
// are chunked at chunkSize bytes (§4.4); chunkSize <= 0 defaults to 8KiB.
func New(command string, args []string, stdin []byte, chunkSize int) *Supervisor {
	if chunkSize <= 0 {
		chunkSize = 8 * 1024
	}

	return &Supervisor{
		command:   command,
		args:      args,
		stdin:     stdin,
		chunkSize: chunkSize,
		out:       &OutputBuffer{},
	}
}

// Snapshot returns a copy of the current OutputBuffer contents for the
// renderer.
func (s *Supervisor) Snapshot() []byte {
	return s.out.Snapshot()
}

// Run spawns once immediately with an empty query (so the command runs as
// originally invoked before the user types anything), then restarts the
// child on every query received from queries. Closing queries, or
// cancelling ctx, tears down the in-flight child and returns (§4.4
// shutdown). Spawn failures are treated as transient: the buffer is left
// reset and Run keeps waiting for the next query (§4.4 failure handling).
func (s *Supervisor) Run(ctx context.Context, queries <-chan string, redraw chan<- struct{}) {
	var current *child

	respawn := func(query string) {
		if current != nil {
			current.kill()
			current = nil
		}

		c, err := spawn(spawnOpts{
			command:   s.command,
			args:      s.args,
			query:     query,
			stdin:     s.stdin,
			chunkSize: s.chunkSize,
			out:       s.out,
			redraw:    redraw,
		})
		if err != nil {
			// Transient: buffer stays reset, loop waits for the next query.
			return
		}

		current = c
	}

	respawn("")

	for {
		select {
		case <-ctx.Done():
			if current != nil {
				current.kill()
			}

			return
		case query, ok := <-queries:
			if !ok {
				if current != nil {
					current.kill()
				}

				return
			}

			respawn(query)
		}
	}
}
