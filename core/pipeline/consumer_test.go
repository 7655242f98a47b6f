package pipeline

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/djmitche/actor-experiment/core/actor"
	"github.com/djmitche/actor-experiment/core/mailbox"
)

func TestConsumer_acks_out_of_order(t *testing.T) {
	inTx, inRx := mailbox.New[Chunk]()
	commitsTx, commitsRx := mailbox.NewQueue[uint64](3)
	rec := &recorder{}

	var seen []uint64
	c := actor.Spawn(NewConsumer(ConsumerOptions[*mailbox.Outbox[uint64]]{
		Input:   inRx,
		Commits: commitsTx,
		Sink:    func(c Chunk) { seen = append(seen, c.Commit) },
		AckDelay: func(c Chunk) time.Duration {
			return time.Duration(4-c.Commit) * 20 * time.Millisecond
		},
		Metrics: rec,
	}))

	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, inTx.Send(t.Context(), Chunk{Data: []byte{byte(i)}, Commit: i}))
	}
	inTx.Close()

	var acks []uint64
	for v := range commitsRx.C() {
		acks = append(acks, v)
	}

	require.NoError(t, c.Stopped(t.Context()))
	require.Equal(t, []uint64{1, 2, 3}, seen)
	require.Equal(t, []uint64{3, 2, 1}, acks)
	require.Equal(t, 3, rec.acks)
}

func TestConsumer_does_not_block_on_acks(t *testing.T) {
	inTx, inRx := mailbox.New[Chunk]()
	commitsTx, commitsRx := mailbox.New[uint64]()
	defer commitsRx.Close()

	c := actor.Spawn(NewConsumer(ConsumerOptions[*mailbox.Outbox[uint64]]{
		Config:  Config{AckLatency: time.Hour},
		Input:   inRx,
		Commits: commitsTx,
	}), actor.WithContext(t.Context()))

	// the receive loop keeps accepting chunks while acks are pending
	for i := uint64(1); i <= 10; i++ {
		require.NoError(t, inTx.Send(t.Context(), Chunk{Commit: i}))
	}

	select {
	case <-c.Done():
		t.Fatal("consumer stopped early")
	default:
	}
	inTx.Close()
}

func TestConsumer_tailer_gone(t *testing.T) {
	inTx, inRx := mailbox.New[Chunk]()
	commitsTx, commitsRx := mailbox.New[uint64]()
	commitsRx.Close()

	c := actor.Spawn(NewConsumer(ConsumerOptions[*mailbox.Outbox[uint64]]{
		Config:  Config{MaxAcks: 1},
		Input:   inRx,
		Commits: commitsTx,
	}))

	require.NoError(t, inTx.Send(t.Context(), Chunk{Commit: 1}))
	inTx.Close()

	// dropped acknowledgments are not a consumer failure
	require.NoError(t, c.Stopped(t.Context()))
}

func TestConsumer_ack_duration_includes_queueing(t *testing.T) {
	inTx, inRx := mailbox.New[Chunk]()
	commitsTx, commitsRx := mailbox.NewQueue[uint64](3)
	rec := &recorder{}

	c := actor.Spawn(NewConsumer(ConsumerOptions[*mailbox.Outbox[uint64]]{
		Config:  Config{AckLatency: 20 * time.Millisecond, MaxAcks: 1},
		Input:   inRx,
		Commits: commitsTx,
		Metrics: rec,
	}))

	for i := uint64(1); i <= 3; i++ {
		require.NoError(t, inTx.Send(t.Context(), Chunk{Commit: i}))
	}
	inTx.Close()
	for range commitsRx.C() {
	}
	require.NoError(t, c.Stopped(t.Context()))

	// acks run one at a time, so the last one waited for the other two
	require.Len(t, rec.ackTimes, 3)
	require.GreaterOrEqual(t, slices.Max(rec.ackTimes), 50*time.Millisecond)
}
