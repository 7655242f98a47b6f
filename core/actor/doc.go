// Package actor runs independently scheduled units of work that talk to each
// other only through mailboxes.
//
// An actor is any value with a Run method. It is built with every resource it
// needs (mailbox halves, a stop signal, timers) and then handed to [Spawn],
// which runs it on its own goroutine and returns a [Handle]:
//
//	tx, rx := mailbox.New[string]()
//	p := actor.Spawn(actor.Func(func(ctx context.Context) error {
//	    defer tx.Close()
//	    return tx.Send(ctx, "hello")
//	}))
//	c := actor.Spawn(actor.Func(func(ctx context.Context) error {
//	    msg, err := rx.Recv(ctx)
//	    ...
//	}))
//	err := p.Stopped(ctx)
//
// Once spawned, an actor cannot be touched from outside except through the
// mailboxes it was given.
//
// # Completion
//
// [Handle.Done] is closed once Run returns. Because it is level-triggered,
// [Handle.Stopped] can be called any number of times, before or after the
// actor finished. A panic inside Run is recovered, reported to the OnPanic
// hook and surfaced as [ErrPanicked].
//
// # Combinators
//
// [Map] is a transform stage: it reads from a receiver, applies a function
// and writes to a sender until its input is closed.
//
// # Background Tasks
//
// A [Scheduler] runs detached tasks with an optional concurrency bound and
// lets the owning actor wait for them before it exits.
package actor
