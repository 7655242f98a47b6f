package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/djmitche/actor-experiment/core/actor"
	"github.com/djmitche/actor-experiment/core/mailbox"
)

type ConsumerOptions[S mailbox.MultiSender[uint64, S]] struct {
	Config Config

	Input mailbox.Receiver[Chunk]
	// Commits is cloned once per acknowledgment so acks can complete
	// concurrently and in any order.
	Commits S

	// Sink is called for every chunk, in order, on the consumer goroutine.
	Sink func(Chunk)
	// AckDelay overrides Config.AckLatency per chunk.
	AckDelay func(Chunk) time.Duration

	Logger       *slog.Logger
	Metrics      PipelineMetrics
	ActorMetrics actor.ActorMetrics
}

// Consumer is the acknowledging end of the pipeline. For every chunk it
// schedules a detached task that sends the chunk's checkpoint back upstream
// after the acknowledgment delay. The receive loop never waits for those
// tasks, so several acknowledgments can be in flight at once.
type Consumer[S mailbox.MultiSender[uint64, S]] struct {
	input    mailbox.Receiver[Chunk]
	commits  S
	sink     func(Chunk)
	ackDelay func(Chunk) time.Duration
	maxAcks  int

	log          *slog.Logger
	metrics      PipelineMetrics
	actorMetrics actor.ActorMetrics
}

func NewConsumer[S mailbox.MultiSender[uint64, S]](opt ConsumerOptions[S]) *Consumer[S] {
	cfg := opt.Config.WithDefaults()
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = NopPipelineMetrics()
	}
	if opt.ActorMetrics == nil {
		opt.ActorMetrics = actor.NopActorMetrics()
	}
	if opt.Sink == nil {
		opt.Sink = func(Chunk) {}
	}
	if opt.AckDelay == nil {
		latency := cfg.AckLatency
		opt.AckDelay = func(Chunk) time.Duration { return latency }
	}
	return &Consumer[S]{
		input:        opt.Input,
		commits:      opt.Commits,
		sink:         opt.Sink,
		ackDelay:     opt.AckDelay,
		maxAcks:      cfg.MaxAcks,
		log:          opt.Logger.With(slog.String("stage", "consumer")),
		metrics:      opt.Metrics,
		actorMetrics: opt.ActorMetrics,
	}
}

func (c *Consumer[S]) Run(ctx context.Context) error {
	acks := actor.NewScheduler(actor.SchedulerOptions{
		Max:     c.maxAcks,
		Context: ctx,
		Logger:  c.log,
		Owner:   "consumer",
		Metrics: c.actorMetrics,
	})
	// the commitment stream closes once the last ack released its clone
	defer c.commits.Close()
	defer acks.Wait()
	defer c.input.Close()

	for {
		chunk, err := c.input.Recv(ctx)
		if mailbox.IsClosed(err) {
			c.log.Debug("input closed")
			return nil
		}
		if err != nil {
			return err
		}

		c.sink(chunk)

		delay := c.ackDelay(chunk)
		// includes time queued for a MaxAcks slot
		timer := c.metrics.AckDuration()
		acks.Schedule(func(ctx context.Context) {
			// commits stays open until acks.Wait returns
			ack := c.commits.Clone()
			defer ack.Close()
			defer timer.ObserveDuration()
			c.acknowledge(ctx, ack, chunk.Commit, delay)
		})
	}
}

func (c *Consumer[S]) acknowledge(ctx context.Context, ack S, commit uint64, delay time.Duration) {
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
	if err := ack.Send(ctx, commit); err != nil {
		// the tailer already finished or failed; nothing is waiting for this
		c.log.Debug("acknowledgment dropped", slog.Uint64("commit", commit), slog.Any("error", err))
	}
}
