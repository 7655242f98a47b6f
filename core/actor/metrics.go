package actor

import "github.com/djmitche/actor-experiment/core/metrics"

// ActorMetrics defines the metrics interface for actors and their
// schedulers. All methods are thread-safe.
type ActorMetrics interface {
	// Lifecycle
	ActorSpawned()
	ActorStopped(success bool)
	ActorPanic()
	RunDuration() metrics.Timer

	// Scheduler
	SchedulerInflight(owner string, count int)
	SchedulerTaskDuration() metrics.Timer
	SchedulerTaskCompleted(success bool)
}

// nopActorMetrics is a no-op implementation of ActorMetrics.
type nopActorMetrics struct{}

func (nopActorMetrics) ActorSpawned()              {}
func (nopActorMetrics) ActorStopped(bool)          {}
func (nopActorMetrics) ActorPanic()                {}
func (nopActorMetrics) RunDuration() metrics.Timer { return metrics.NopTimer() }

func (nopActorMetrics) SchedulerInflight(string, int)        {}
func (nopActorMetrics) SchedulerTaskDuration() metrics.Timer { return metrics.NopTimer() }
func (nopActorMetrics) SchedulerTaskCompleted(bool)          {}

// NopActorMetrics returns a no-op ActorMetrics implementation.
func NopActorMetrics() ActorMetrics { return nopActorMetrics{} }
