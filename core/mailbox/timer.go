package mailbox

import (
	"context"
	"time"
)

// firedCh is permanently closed and stands in for any deadline in the past.
var firedCh = func() chan time.Time {
	ch := make(chan time.Time)
	close(ch)
	return ch
}()

// Timer lets an actor set a time at which it wishes to be notified. It is
// owned by a single actor and is not safe for concurrent use.
//
// While clear, the timer never fires. Once the deadline has passed the timer
// keeps firing until it is cleared or set again; it does not re-arm itself.
type Timer struct {
	at    time.Time
	armed bool
	t     *time.Timer
}

// NewTimer returns a cleared Timer. The zero value is also ready to use.
func NewTimer() *Timer { return &Timer{} }

// Set arms the timer to expire at the given time.
func (t *Timer) Set(at time.Time) {
	t.stop()
	t.at = at
	t.armed = true
}

// SetAfter arms the timer to expire d from now.
func (t *Timer) SetAfter(d time.Duration) { t.Set(time.Now().Add(d)) }

// Clear disarms the timer.
func (t *Timer) Clear() {
	t.stop()
	t.armed = false
	t.at = time.Time{}
}

// IsSet reports whether the timer is armed.
func (t *Timer) IsSet() bool { return t.armed }

// Deadline returns the armed deadline.
func (t *Timer) Deadline() (time.Time, bool) { return t.at, t.armed }

// C returns a channel for use in a select. It is nil while the timer is
// clear, so that branch never becomes ready.
func (t *Timer) C() <-chan time.Time {
	if !t.armed {
		return nil
	}
	if !time.Now().Before(t.at) {
		return firedCh
	}
	if t.t == nil {
		t.t = time.NewTimer(time.Until(t.at))
	}
	return t.t.C
}

// Wait blocks until the timer fires or ctx is done.
func (t *Timer) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C():
		return nil
	}
}

func (t *Timer) stop() {
	if t.t != nil {
		t.t.Stop()
		t.t = nil
	}
}
