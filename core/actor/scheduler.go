package actor

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// TaskFunc is a detached unit of work run by a Scheduler.
type TaskFunc func(ctx context.Context)

type Scheduler interface {
	// Schedule runs f on its own goroutine. It never blocks the caller.
	Schedule(f TaskFunc)
	// Wait blocks until all scheduled tasks complete.
	Wait()
}

type SchedulerOptions struct {
	// Max caps the number of concurrently running tasks. If 0 or negative,
	// scheduling is unlimited.
	Max     int
	Context context.Context
	Logger  *slog.Logger
	// Owner labels the scheduler in metrics, usually the owning actor's ID.
	Owner   string
	Metrics ActorMetrics
}

type scheduler struct {
	ctx      context.Context
	log      *slog.Logger
	inflight atomic.Int32
	sem      *semaphore.Weighted

	wg sync.WaitGroup

	owner   string
	metrics ActorMetrics
}

// NewScheduler creates a scheduler for detached tasks. Tasks that are still
// waiting for a slot when the context is cancelled are dropped.
func NewScheduler(opt SchedulerOptions) Scheduler {
	if opt.Context == nil {
		opt.Context = context.Background()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = NopActorMetrics()
	}
	var sem *semaphore.Weighted
	if opt.Max > 0 {
		sem = semaphore.NewWeighted(int64(opt.Max))
	}
	return &scheduler{
		ctx:     opt.Context,
		log:     opt.Logger,
		sem:     sem,
		owner:   opt.Owner,
		metrics: opt.Metrics,
	}
}

func (s *scheduler) Schedule(f TaskFunc) {
	// Don't schedule if context is already cancelled
	if s.ctx.Err() != nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.sem != nil {
			if err := s.sem.Acquire(s.ctx, 1); err != nil {
				return
			}
			defer s.sem.Release(1)
		}

		count := s.inflight.Add(1)
		s.metrics.SchedulerInflight(s.owner, int(count))
		defer func() {
			count := s.inflight.Add(-1)
			s.metrics.SchedulerInflight(s.owner, int(count))
		}()

		s.runTask(f)
	}()
}

func (s *scheduler) runTask(f TaskFunc) {
	defer s.metrics.SchedulerTaskDuration().ObserveDuration()

	defer func() {
		if r := recover(); r != nil {
			s.metrics.SchedulerTaskCompleted(false)
			// log the panic but don't re-panic
			s.log.Error("scheduled task panicked", slog.Any("recovered", r))
		}
	}()

	f(s.ctx)
	s.metrics.SchedulerTaskCompleted(true)
}

func (s *scheduler) Wait() {
	s.wg.Wait()
}
