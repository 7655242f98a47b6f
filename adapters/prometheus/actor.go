package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/djmitche/actor-experiment/core/actor"
	"github.com/djmitche/actor-experiment/core/metrics"
)

// actorMetrics implements actor.ActorMetrics using Prometheus.
type actorMetrics struct {
	spawnedTotal          prometheus.Counter
	running               prometheus.Gauge
	stoppedTotal          *prometheus.CounterVec
	panicTotal            prometheus.Counter
	runDuration           prometheus.Histogram
	schedulerInflight     *prometheus.GaugeVec
	schedulerTaskDuration prometheus.Histogram
	schedulerTasksTotal   *prometheus.CounterVec
}

// NewActorMetrics creates a new Prometheus implementation of ActorMetrics.
func NewActorMetrics(reg prometheus.Registerer) actor.ActorMetrics {
	m := &actorMetrics{
		spawnedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "actor_spawned_total",
			Help: "Total number of spawned actors",
		}),

		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "actor_running",
			Help: "Number of actors currently running",
		}),

		stoppedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "actor_stopped_total",
			Help: "Total number of stopped actors",
		}, []string{"success"}),

		panicTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "actor_panics_total",
			Help: "Total number of recovered actor panics",
		}),

		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "actor_run_duration_seconds",
			Help:    "Actor lifetime in seconds",
			Buckets: prometheus.ExponentialBuckets(.001, 4, 12),
		}),

		schedulerInflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "actor_scheduler_inflight",
			Help: "Number of concurrent scheduled tasks",
		}, []string{"owner"}),

		schedulerTaskDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "actor_scheduler_task_duration_seconds",
			Help:    "Scheduled task duration in seconds",
			Buckets: defaultBuckets,
		}),

		schedulerTasksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "actor_scheduler_tasks_total",
			Help: "Total number of scheduled tasks completed",
		}, []string{"success"}),
	}

	reg.MustRegister(
		m.spawnedTotal,
		m.running,
		m.stoppedTotal,
		m.panicTotal,
		m.runDuration,
		m.schedulerInflight,
		m.schedulerTaskDuration,
		m.schedulerTasksTotal,
	)

	return m
}

func (m *actorMetrics) ActorSpawned() {
	m.spawnedTotal.Inc()
	m.running.Inc()
}

func (m *actorMetrics) ActorStopped(success bool) {
	m.running.Dec()
	m.stoppedTotal.WithLabelValues(boolToStr(success)).Inc()
}

func (m *actorMetrics) ActorPanic() { m.panicTotal.Inc() }

func (m *actorMetrics) RunDuration() metrics.Timer { return newTimer(m.runDuration) }

func (m *actorMetrics) SchedulerInflight(owner string, count int) {
	m.schedulerInflight.WithLabelValues(owner).Set(float64(count))
}

func (m *actorMetrics) SchedulerTaskDuration() metrics.Timer {
	return newTimer(m.schedulerTaskDuration)
}

func (m *actorMetrics) SchedulerTaskCompleted(success bool) {
	m.schedulerTasksTotal.WithLabelValues(boolToStr(success)).Inc()
}

var _ actor.ActorMetrics = (*actorMetrics)(nil)
