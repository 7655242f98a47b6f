package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/djmitche/actor-experiment/core/actor"
	"github.com/djmitche/actor-experiment/core/mailbox"
)

type Options struct {
	Config Config

	Context context.Context
	Logger  *slog.Logger

	// Transform is applied to every chunk's data between tailer and
	// consumer. Defaults to the identity.
	Transform func([]byte) []byte
	// Sink and AckDelay are handed to the consumer.
	Sink     func(Chunk)
	AckDelay func(Chunk) time.Duration

	Metrics      PipelineMetrics
	ActorMetrics actor.ActorMetrics
}

// Pipeline is a running tailer -> transform -> consumer topology.
type Pipeline struct {
	stopper *mailbox.Stopper

	Tailer    *actor.Handle
	Transform *actor.Handle
	Consumer  *actor.Handle
}

// Start wires the three stages around input and spawns them. The pipeline
// takes ownership of input.
func Start(input mailbox.Receiver[byte], opt Options) (*Pipeline, error) {
	if opt.Context == nil {
		opt.Context = context.Background()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = NopPipelineMetrics()
	}
	if opt.ActorMetrics == nil {
		opt.ActorMetrics = actor.NopActorMetrics()
	}
	if opt.Transform == nil {
		opt.Transform = func(b []byte) []byte { return b }
	}

	stopper, stop := mailbox.NewStopper(opt.Context)
	chunksTx, chunksRx := mailbox.New[Chunk]()
	transformedTx, transformedRx := mailbox.New[Chunk]()
	commitsTx, commitsRx := mailbox.New[uint64]()

	tailer, err := NewTailer(TailerOptions{
		Config:  opt.Config,
		Input:   input,
		Output:  chunksTx,
		Commits: commitsRx,
		Stop:    stop,
		Logger:  opt.Logger,
		Metrics: opt.Metrics,
	})
	if err != nil {
		stopper.Stop()
		input.Close()
		return nil, err
	}

	consumer := NewConsumer(ConsumerOptions[*mailbox.Outbox[uint64]]{
		Config:       opt.Config,
		Input:        transformedRx,
		Commits:      commitsTx,
		Sink:         opt.Sink,
		AckDelay:     opt.AckDelay,
		Logger:       opt.Logger,
		Metrics:      opt.Metrics,
		ActorMetrics: opt.ActorMetrics,
	})

	spawnOpts := func(id string) []actor.Option {
		return []actor.Option{
			actor.WithID(id),
			actor.WithContext(opt.Context),
			actor.WithLogger(opt.Logger),
			actor.WithMetrics(opt.ActorMetrics),
		}
	}

	transform := opt.Transform
	p := &Pipeline{stopper: stopper}
	p.Consumer = actor.Spawn(consumer, spawnOpts("consumer")...)
	p.Transform = actor.Map[Chunk, Chunk](chunksRx, transformedTx, func(c Chunk) Chunk {
		return Chunk{Data: transform(c.Data), Commit: c.Commit}
	}, spawnOpts("transform")...)
	p.Tailer = actor.Spawn(tailer, spawnOpts("tailer")...)
	return p, nil
}

// Stop asks the tailer to stop reading. The pipeline drains and then stops
// on its own; use Wait to observe that. Calling Stop again does nothing.
func (p *Pipeline) Stop() { p.stopper.Stop() }

// Wait blocks until every stage stopped. It returns the stage errors joined
// in tailer, transform, consumer order, so a failure and the failures it
// caused further along are all reported.
func (p *Pipeline) Wait(ctx context.Context) error {
	stages := []*actor.Handle{p.Tailer, p.Transform, p.Consumer}
	errs := make([]error, len(stages))

	var g errgroup.Group
	for i, h := range stages {
		g.Go(func() error {
			if err := h.Stopped(ctx); err != nil {
				errs[i] = fmt.Errorf("%s: %w", h.ID(), err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}
