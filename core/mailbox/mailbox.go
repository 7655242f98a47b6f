package mailbox

import "context"

type (
	// Sender allows sending messages. Typically a sender is used by one or
	// more actors to send messages to another actor.
	Sender[T any] interface {
		// Send delivers v, blocking until there is room in the mailbox. It
		// fails with ErrSendFailed (wrapping ErrClosed) when the receiving
		// side is gone, or with ctx's error when ctx is done first.
		Send(ctx context.Context, v T) error
		// Close releases this sender. Closing twice does nothing.
		Close()
	}

	// Receiver allows consumption of incoming messages. Typically a receiver
	// is used as input by a single actor.
	Receiver[T any] interface {
		// Recv waits for the next message. Once every sender is closed it
		// returns ErrClosed, now and forever after.
		Recv(ctx context.Context) (T, error)
		// C exposes the underlying channel for use in a select. The channel
		// is closed when every sender is closed.
		C() <-chan T
		// Close releases this receiver. Closing twice does nothing.
		Close()
	}

	// MultiSender is a Sender that can be cloned. All clones send to the
	// same mailbox. S is the concrete clone type.
	MultiSender[T any, S any] interface {
		Sender[T]
		Clone() S
	}

	// MultiReceiver is a Receiver that can be cloned. A message in the
	// mailbox is received by exactly one of the clones.
	MultiReceiver[T any, S any] interface {
		Receiver[T]
		Clone() S
	}
)

// CloneN returns n clones of s. Each clone must be closed independently.
func CloneN[T any, S MultiSender[T, S]](s S, n int) []S {
	out := make([]S, n)
	for i := range out {
		out[i] = s.Clone()
	}
	return out
}

// New creates a mailbox holding at most one pending message. The sender can
// be cloned, the receiver cannot.
func New[T any]() (*Outbox[T], *Inbox[T]) {
	p := newPipe[T](1)
	return &Outbox[T]{p: p}, &Inbox[T]{p: p}
}

// Outbox is the sending half of a mailbox created by [New] or [NewQueue].
// Send must not race with Close on the same clone; give each goroutine its
// own clone instead.
type Outbox[T any] struct {
	p      *pipe[T]
	closed closeFlag
}

// Send implements Sender.
func (o *Outbox[T]) Send(ctx context.Context, v T) error {
	if o.closed.isSet() {
		return errUseAfterClose
	}
	return o.p.send(ctx, v)
}

// Clone returns a new sender for the same mailbox. Cloning a closed sender
// yields a closed sender.
func (o *Outbox[T]) Clone() *Outbox[T] {
	c := &Outbox[T]{p: o.p}
	if o.closed.isSet() {
		c.closed.set()
		return c
	}
	o.p.senders.Add(1)
	return c
}

// Close implements Sender.
func (o *Outbox[T]) Close() {
	if o.closed.set() {
		o.p.releaseSender()
	}
}

// Inbox is the single receiving half of a mailbox created by [New].
type Inbox[T any] struct {
	p      *pipe[T]
	closed closeFlag
}

// Recv implements Receiver.
func (i *Inbox[T]) Recv(ctx context.Context) (T, error) { return i.p.recv(ctx) }

// C implements Receiver.
func (i *Inbox[T]) C() <-chan T { return i.p.ch }

// Close implements Receiver.
func (i *Inbox[T]) Close() {
	if i.closed.set() {
		i.p.releaseReceiver()
	}
}

var (
	_ MultiSender[int, *Outbox[int]] = (*Outbox[int])(nil)
	_ Receiver[int]                  = (*Inbox[int])(nil)
)
