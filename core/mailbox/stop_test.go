package mailbox

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitStopped(t *testing.T, stop *Stop) {
	t.Helper()
	select {
	case <-stop.C():
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for stop")
	}
}

func TestStop_start_and_stop(t *testing.T) {
	stopper, stop := NewStopper(t.Context())
	require.False(t, stop.Stopped())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = stop.Wait(t.Context())
	}()

	stopper.Stop()
	<-done
	require.True(t, stop.Stopped())
}

func TestStop_stop_twice(t *testing.T) {
	stopper, stop := NewStopper(t.Context())
	stopper.Stop()
	stopper.Stop()
	waitStopped(t, stop)
}

func TestStop_stopper_closed(t *testing.T) {
	stopper, stop := NewStopper(t.Context())
	stopper.Close()
	waitStopped(t, stop)
}

func TestStop_parent_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	_, stop := NewStopper(ctx)
	cancel()
	waitStopped(t, stop)
}

func TestStop_stopper_collected(t *testing.T) {
	stop := func() *Stop {
		_, stop := NewStopper(context.Background())
		return stop
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return stop.Stopped()
	}, 5*time.Second, 10*time.Millisecond)
}

func TestStop_wait_respects_ctx(t *testing.T) {
	stopper, stop := NewStopper(t.Context())
	defer stopper.Stop()

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, stop.Wait(ctx), context.DeadlineExceeded)
}

// TestStop_select mirrors how actors use the signal: remember that it fired
// and finish other work before leaving.
func TestStop_select(t *testing.T) {
	stopper, stop := NewStopper(t.Context())
	done := make(chan int)
	go func() {
		stopping := false
		ticks := 0
		for {
			var stopCh <-chan struct{}
			if !stopping {
				stopCh = stop.C()
			}
			select {
			case <-stopCh:
				stopping = true
			case <-time.After(time.Millisecond):
				ticks++
				if stopping {
					done <- ticks
					return
				}
			}
		}
	}()
	stopper.Stop()

	select {
	case n := <-done:
		require.Positive(t, n)
	case <-time.After(time.Second):
		t.Fatal("timeout")
	}
}
