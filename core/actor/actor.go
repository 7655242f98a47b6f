package actor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type (
	// Actor is the behavior contract for a unit of work. Run is called once,
	// on its own goroutine, and the actor is done when it returns.
	Actor interface {
		Run(ctx context.Context) error
	}

	// Func adapts a plain function to the Actor interface.
	Func func(ctx context.Context) error
)

func (f Func) Run(ctx context.Context) error { return f(ctx) }

// Handle is the spawner-side token of a running actor.
type Handle struct {
	id   string
	done chan struct{}
	err  error
}

// Spawn schedules a for concurrent execution and returns immediately. The
// caller must not use a afterwards.
func Spawn(a Actor, opts ...Option) *Handle {
	opt := Options{}
	for _, o := range opts {
		o(&opt)
	}
	if opt.ID == "" {
		opt.ID = gonanoid.Must(8)
	}
	if opt.Context == nil {
		opt.Context = context.Background()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = NopActorMetrics()
	}
	log := opt.Logger.With(slog.String("actor", opt.ID))
	if opt.OnPanic == nil {
		opt.OnPanic = func(recovered any, stack []byte) {
			log.Error("actor panicked", slog.Any("recovered", recovered), slog.String("stack", string(stack)))
		}
	}

	h := &Handle{
		id:   opt.ID,
		done: make(chan struct{}),
	}

	opt.Metrics.ActorSpawned()
	go h.run(opt, log, a)
	return h
}

func (h *Handle) run(opt Options, log *slog.Logger, a Actor) {
	defer close(h.done)
	defer opt.Metrics.RunDuration().ObserveDuration()

	log.Debug("actor started")

	h.err = h.safeRun(opt, a)
	opt.Metrics.ActorStopped(h.err == nil)

	if h.err != nil {
		log.Warn("actor stopped with error", slog.Any("error", h.err))
		return
	}
	log.Debug("actor stopped")
}

// safeRun contains panics so the handle always completes.
func (h *Handle) safeRun(opt Options, a Actor) (err error) {
	defer func() {
		if r := recover(); r != nil {
			opt.Metrics.ActorPanic()
			opt.OnPanic(r, debug.Stack())
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}
	}()
	return a.Run(opt.Context)
}

// ID returns the actor ID.
func (h *Handle) ID() string { return h.id }

// Done is closed when the actor stops.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the error Run returned, or nil while the actor is running.
func (h *Handle) Err() error {
	select {
	case <-h.done:
		return h.err
	default:
		return nil
	}
}

// Stopped waits until the actor has stopped and returns its error. It may be
// called any number of times from any goroutine.
func (h *Handle) Stopped(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("wait for actor %s: %w", h.id, ctx.Err())
	case <-h.done:
		return h.err
	}
}
