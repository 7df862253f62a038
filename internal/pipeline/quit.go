package pipeline

import (
	"context"
	"sync"
)

// StopReason says why a run ended.
type StopReason string

const (
	ReasonEndOfStream StopReason = "end-of-stream"
	ReasonQuitKey     StopReason = "quit-key"
	ReasonError       StopReason = "error"
	ReasonCancelled   StopReason = "cancelled"
)

// Quit is the run-wide stop signal. Once fired it stays fired; the first
// Fire decides the reason and error reported for the run.
type Quit struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	fired  bool
	reason StopReason
	err    error
}

// NewQuit derives a quit signal from parent. Cancelling parent also stops
// the run; it is reported as ReasonCancelled.
func NewQuit(parent context.Context) *Quit {
	ctx, cancel := context.WithCancel(parent)
	return &Quit{ctx: ctx, cancel: cancel}
}

// Context is done once the quit has fired or the parent was cancelled.
func (q *Quit) Context() context.Context {
	return q.ctx
}

// Fire stops the run. Only the first call records reason and err.
func (q *Quit) Fire(reason StopReason, err error) {
	q.mu.Lock()
	if !q.fired {
		q.fired = true
		q.reason = reason
		q.err = err
	}
	q.mu.Unlock()
	q.cancel()
}

// Fired reports whether Fire was called.
func (q *Quit) Fired() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.fired
}

// Reason returns the recorded stop reason, empty before Fire.
func (q *Quit) Reason() StopReason {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.reason
}

// Err returns the error recorded with the first Fire.
func (q *Quit) Err() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.err
}
