package mailbox

import (
	"context"
	"sync"
	"sync/atomic"
)

// NewOneshot creates a single-use channel that carries exactly one value.
func NewOneshot[T any]() (*OneshotSender[T], *OneshotReceiver[T]) {
	ch := make(chan T, 1)
	return &OneshotSender[T]{ch: ch}, &OneshotReceiver[T]{ch: ch}
}

// OneshotSender delivers one value. Either Send or Close ends its life.
type OneshotSender[T any] struct {
	mu   sync.Mutex
	ch   chan T
	used bool
}

// Send delivers v and closes the channel. It never blocks.
func (s *OneshotSender[T]) Send(v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.used {
		return ErrOneshotUsed
	}
	s.used = true
	s.ch <- v
	close(s.ch)
	return nil
}

// Close drops the sender. If nothing was sent, the receiver observes
// ErrSenderDropped.
func (s *OneshotSender[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.used {
		return
	}
	s.used = true
	close(s.ch)
}

// OneshotReceiver waits for the value of its paired sender.
type OneshotReceiver[T any] struct {
	ch    chan T
	taken atomic.Bool
}

// Recv waits for the value. It returns ErrSenderDropped if the sender was
// closed without sending, and ErrOneshotUsed if the value was already taken
// by an earlier Recv.
func (r *OneshotReceiver[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case v, ok := <-r.ch:
		if !ok {
			if r.taken.Load() {
				return zero, ErrOneshotUsed
			}
			return zero, ErrSenderDropped
		}
		r.taken.Store(true)
		return v, nil
	}
}

// C exposes the channel for use in a select. It yields the value once and
// is closed afterwards. Values taken through C are not tracked by Recv.
func (r *OneshotReceiver[T]) C() <-chan T { return r.ch }
