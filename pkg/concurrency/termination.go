package concurrency

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrTerminated is returned by computations that observed a tripped
// termination flag. It is distinct from configuration and graph errors.
var ErrTerminated = errors.New("computation terminated")

// TerminationFlag is a sticky cancellation signal shared by all workers of
// one computation. A nil flag is always running.
type TerminationFlag struct {
	ctx     context.Context
	tripped atomic.Bool
}

// NewTerminationFlag ties a flag to ctx; the flag trips when ctx is done or
// Terminate is called, whichever happens first.
func NewTerminationFlag(ctx context.Context) *TerminationFlag {
	if ctx == nil {
		ctx = context.Background()
	}
	return &TerminationFlag{ctx: ctx}
}

// RunningTrue returns a flag that only trips through Terminate.
func RunningTrue() *TerminationFlag {
	return NewTerminationFlag(context.Background())
}

// Terminate trips the flag. Idempotent.
func (f *TerminationFlag) Terminate() {
	if f != nil {
		f.tripped.Store(true)
	}
}

// Running reports whether the computation may continue.
func (f *TerminationFlag) Running() bool {
	if f == nil {
		return true
	}
	if f.tripped.Load() {
		return false
	}
	if f.ctx.Err() != nil {
		f.tripped.Store(true)
		return false
	}
	return true
}

// AssertRunning returns ErrTerminated once the flag has tripped.
func (f *TerminationFlag) AssertRunning() error {
	if f.Running() {
		return nil
	}
	return ErrTerminated
}
