// Package eventstest provides an in-memory events.Publisher for tests.
package eventstest

import (
	"context"

	"github.com/mtlprog/kamishibai/internal/events"
)

// Recorder keeps published transitions in memory.
type Recorder struct {
	ch chan events.Transition
}

var _ events.Publisher = (*Recorder)(nil)

// NewRecorder creates a recorder buffering up to size transitions.
func NewRecorder(size int) *Recorder {
	return &Recorder{ch: make(chan events.Transition, size)}
}

// Publish records t, dropping it when the buffer is full.
func (r *Recorder) Publish(_ context.Context, t events.Transition) error {
	select {
	case r.ch <- t:
	default:
	}
	return nil
}

// Close does nothing.
func (r *Recorder) Close() error { return nil }

// Drain returns everything recorded so far.
func (r *Recorder) Drain() []events.Transition {
	var out []events.Transition
	for {
		select {
		case t := <-r.ch:
			out = append(out, t)
		default:
			return out
		}
	}
}
