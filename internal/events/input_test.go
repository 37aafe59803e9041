//go:build unix

package events

import (
	"errors"
	"testing"

	"github.com/tip-cli/tip/internal/terminal"
)

type fakeInputSource struct {
	inputs []terminal.Input
	err    error
}

func (f *fakeInputSource) Next() (terminal.Input, error) {
	if len(f.inputs) > 0 {
		in := f.inputs[0]
		f.inputs = f.inputs[1:]

		return in, nil
	}

	return terminal.Input{}, f.err
}

func TestRunInputThreadForwardsDecodedKeystrokes(t *testing.T) {
	src := &fakeInputSource{
		inputs: []terminal.Input{
			{Kind: terminal.Printable, Byte: 'a'},
			{Kind: terminal.Delete},
		},
		err: errClosedSource,
	}

	out := make(chan Event)

	go RunInputThread(src, out)

	first := <-out
	if first.Kind != Input || first.Input.Kind != terminal.Printable {
		t.Fatalf("first event = %+v, want Printable input", first)
	}

	second := <-out
	if second.Kind != Input || second.Input.Kind != terminal.Delete {
		t.Fatalf("second event = %+v, want Delete input", second)
	}

	third := <-out
	if third.Kind != Quit {
		t.Fatalf("third event kind = %d, want Quit", third.Kind)
	}

	if third.Err == nil {
		t.Fatal("expected the terminating error to ride along on the Quit event")
	}
}

func TestRunInputThreadPropagatesDecodeError(t *testing.T) {
	decodeErr := &terminal.DecodeError{Context: "escape introducer", Byte: 0x41}
	src := &fakeInputSource{err: decodeErr}

	out := make(chan Event)

	go RunInputThread(src, out)

	ev := <-out
	if ev.Kind != Quit {
		t.Fatalf("event kind = %d, want Quit", ev.Kind)
	}

	var got *terminal.DecodeError
	if !errors.As(ev.Err, &got) {
		t.Fatalf("Err = %v, want a *terminal.DecodeError", ev.Err)
	}
}

var errClosedSource = errors.New("input source closed")
