package actor

import "errors"

var (
	// ErrPanicked is returned by Handle.Stopped when Run panicked.
	ErrPanicked = errors.New("actor panicked")

	// ErrUnknownChild is returned by Monitor.Wait for a name that was never
	// registered.
	ErrUnknownChild = errors.New("unknown child")
)
