package mailbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var errUseAfterClose = fmt.Errorf("%w: sender used after close", ErrSendFailed)

// pipe is the shared state behind every sender and receiver clone of one
// mailbox. The data channel is closed when the last sender is released, and
// gone is closed when the last receiver is released.
type pipe[T any] struct {
	ch chan T

	senders   atomic.Int64
	receivers atomic.Int64

	gone     chan struct{}
	goneOnce sync.Once
}

func newPipe[T any](capacity int) *pipe[T] {
	p := &pipe[T]{
		ch:   make(chan T, capacity),
		gone: make(chan struct{}),
	}
	p.senders.Store(1)
	p.receivers.Store(1)
	return p
}

func (p *pipe[T]) send(ctx context.Context, v T) error {
	// prefer reporting a closed peer over racing a free slot
	select {
	case <-p.gone:
		return fmt.Errorf("%w: %w", ErrSendFailed, ErrClosed)
	default:
	}
	select {
	case <-p.gone:
		return fmt.Errorf("%w: %w", ErrSendFailed, ErrClosed)
	case <-ctx.Done():
		return ctx.Err()
	case p.ch <- v:
		return nil
	}
}

func (p *pipe[T]) recv(ctx context.Context) (T, error) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case v, ok := <-p.ch:
		if !ok {
			return zero, ErrClosed
		}
		return v, nil
	}
}

func (p *pipe[T]) releaseSender() {
	if p.senders.Add(-1) == 0 {
		close(p.ch)
	}
}

func (p *pipe[T]) releaseReceiver() {
	if p.receivers.Add(-1) == 0 {
		p.goneOnce.Do(func() { close(p.gone) })
	}
}

// closeFlag marks one clone as closed exactly once.
type closeFlag struct{ v atomic.Bool }

// set reports whether this call performed the transition.
func (f *closeFlag) set() bool   { return f.v.CompareAndSwap(false, true) }
func (f *closeFlag) isSet() bool { return f.v.Load() }

// IsClosed reports whether err signals a closed peer, either from a receive
// or from a failed send.
func IsClosed(err error) bool { return errors.Is(err, ErrClosed) }
