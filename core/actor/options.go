package actor

import (
	"context"
	"log/slog"
)

type (
	OnPanic func(recovered any, stack []byte)

	Options struct {
		// ID names the actor in logs and metrics. Generated when empty.
		ID      string
		Context context.Context
		Logger  *slog.Logger
		OnPanic OnPanic
		Metrics ActorMetrics
	}

	// Option configures a spawned actor.
	Option func(*Options)
)

// WithID sets the actor ID.
func WithID(id string) Option {
	return func(o *Options) { o.ID = id }
}

// WithContext sets the context passed to Run. Cancelling it is a hard stop;
// prefer a mailbox.Stopper for cooperative shutdown.
func WithContext(ctx context.Context) Option {
	return func(o *Options) { o.Context = ctx }
}

func WithLogger(log *slog.Logger) Option {
	return func(o *Options) { o.Logger = log }
}

func WithOnPanic(f OnPanic) Option {
	return func(o *Options) { o.OnPanic = f }
}

func WithMetrics(m ActorMetrics) Option {
	return func(o *Options) { o.Metrics = m }
}

// WithOptions copies every non-zero field of opt.
func WithOptions(opt Options) Option {
	return func(o *Options) {
		if opt.ID != "" {
			o.ID = opt.ID
		}
		if opt.Context != nil {
			o.Context = opt.Context
		}
		if opt.Logger != nil {
			o.Logger = opt.Logger
		}
		if opt.OnPanic != nil {
			o.OnPanic = opt.OnPanic
		}
		if opt.Metrics != nil {
			o.Metrics = opt.Metrics
		}
	}
}
