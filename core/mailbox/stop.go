package mailbox

import (
	"context"
	"runtime"
)

// Stopper sends a stop signal to a single actor.
//
// The signal also fires when the parent context passed to [NewStopper] is
// done, when the Stopper is closed, or when the Stopper becomes unreachable
// and is garbage collected. A controller that goes away therefore never
// leaves its actor waiting forever.
type Stopper struct {
	cancel context.CancelFunc
}

// Stop is the receiving counterpart of [Stopper].
type Stop struct {
	ctx context.Context
}

// NewStopper creates a connected Stopper and Stop.
func NewStopper(parent context.Context) (*Stopper, *Stop) {
	ctx, cancel := context.WithCancel(parent)
	s := &Stopper{cancel: cancel}
	runtime.AddCleanup(s, func(cancel context.CancelFunc) { cancel() }, cancel)
	return s, &Stop{ctx: ctx}
}

// Stop sends the stop signal. Calls after the first do nothing.
func (s *Stopper) Stop() { s.cancel() }

// Close drops the Stopper, which counts as a stop signal.
func (s *Stopper) Close() { s.cancel() }

// C returns a channel that is closed once the stop signal fired. An actor
// that raced it in a select should remember that it saw the signal rather
// than wait on it again.
func (s *Stop) C() <-chan struct{} { return s.ctx.Done() }

// Wait blocks until the stop signal fires or ctx is done.
func (s *Stop) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ctx.Done():
		return nil
	}
}

// Stopped reports whether the stop signal has fired.
func (s *Stop) Stopped() bool { return s.ctx.Err() != nil }
