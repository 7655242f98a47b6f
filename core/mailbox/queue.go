package mailbox

import "context"

// NewQueue creates a mailbox with room for capacity pending messages whose
// sender and receiver can both be cloned. Each message is received by
// exactly one receiver clone, which makes it suitable for work sharing.
func NewQueue[T any](capacity int) (*Outbox[T], *SharedInbox[T]) {
	if capacity < 1 {
		capacity = 1
	}
	p := newPipe[T](capacity)
	return &Outbox[T]{p: p}, &SharedInbox[T]{p: p}
}

// SharedInbox is a cloneable receiving half created by [NewQueue].
type SharedInbox[T any] struct {
	p      *pipe[T]
	closed closeFlag
}

// Recv implements Receiver.
func (s *SharedInbox[T]) Recv(ctx context.Context) (T, error) { return s.p.recv(ctx) }

// C implements Receiver.
func (s *SharedInbox[T]) C() <-chan T { return s.p.ch }

// Clone returns another receiver competing for the same messages.
func (s *SharedInbox[T]) Clone() *SharedInbox[T] {
	s.p.receivers.Add(1)
	return &SharedInbox[T]{p: s.p}
}

// Close implements Receiver.
func (s *SharedInbox[T]) Close() {
	if s.closed.set() {
		s.p.releaseReceiver()
	}
}

var _ MultiReceiver[int, *SharedInbox[int]] = (*SharedInbox[int])(nil)
