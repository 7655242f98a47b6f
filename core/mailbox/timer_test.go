package mailbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimer_unset_never_fires(t *testing.T) {
	tm := NewTimer()
	require.False(t, tm.IsSet())
	require.Nil(t, tm.C())

	select {
	case <-tm.C():
		t.Fatal("unset timer fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTimer_past_deadline_fires_immediately(t *testing.T) {
	var tm Timer
	tm.Set(time.Now().Add(-time.Second))

	select {
	case <-tm.C():
	case <-time.After(10 * time.Millisecond):
		t.Fatal("past deadline did not fire")
	}

	// not re-armed: keeps firing until cleared
	select {
	case <-tm.C():
	case <-time.After(10 * time.Millisecond):
		t.Fatal("fired timer did not fire again")
	}

	tm.Clear()
	require.Nil(t, tm.C())
}

func TestTimer_future_deadline(t *testing.T) {
	tm := NewTimer()
	start := time.Now()
	tm.SetAfter(30 * time.Millisecond)

	require.NoError(t, tm.Wait(t.Context()))
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	at, ok := tm.Deadline()
	require.True(t, ok)
	require.False(t, at.IsZero())
}

func TestTimer_reset_moves_deadline(t *testing.T) {
	tm := NewTimer()
	tm.SetAfter(time.Hour)
	_ = tm.C()
	tm.SetAfter(5 * time.Millisecond)

	select {
	case <-tm.C():
	case <-time.After(time.Second):
		t.Fatal("reset timer did not fire")
	}
}
