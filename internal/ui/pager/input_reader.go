package pager

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

type eventSource interface {
	PollEvent() tcell.Event
}

// inputReader forwards terminal events to the loop goroutine in the order
// they arrive.
type inputReader struct {
	exited chan struct{}
}

// startInputReader polls src until it returns nil or done is closed. events
// is closed when the reader exits.
func startInputReader(src eventSource, events chan<- tcell.Event, done <-chan struct{}) *inputReader {
	r := &inputReader{exited: make(chan struct{})}
	go func() {
		defer close(r.exited)
		defer close(events)
		for {
			ev := src.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return r
}

// wait reports whether the reader exited within timeout.
func (r *inputReader) wait(timeout time.Duration) bool {
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-r.exited:
		return true
	case <-t.C:
		return false
	}
}
