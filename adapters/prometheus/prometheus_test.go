package prometheus

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djmitche/actor-experiment/core/actor"
	"github.com/djmitche/actor-experiment/core/mailbox"
	"github.com/djmitche/actor-experiment/core/pipeline"
)

func gatherNames(t *testing.T, reg *prometheus.Registry) map[string]bool {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	return names
}

func TestNewActorMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewActorMetrics(reg)

	require.NotNil(t, m)

	m.ActorSpawned()
	m.ActorSpawned()
	m.ActorStopped(true)
	m.ActorPanic()
	m.RunDuration().ObserveDuration()

	m.SchedulerInflight("consumer", 5)
	timer := m.SchedulerTaskDuration()
	assert.NotNil(t, timer)
	timer.ObserveDuration()
	m.SchedulerTaskCompleted(true)
	m.SchedulerTaskCompleted(false)

	names := gatherNames(t, reg)
	assert.True(t, names["actor_spawned_total"])
	assert.True(t, names["actor_running"])
	assert.True(t, names["actor_scheduler_inflight"])

	am := m.(*actorMetrics)
	assert.Equal(t, float64(1), testutil.ToFloat64(am.running))
	assert.Equal(t, float64(2), testutil.ToFloat64(am.spawnedTotal))
}

func TestNewPipelineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPipelineMetrics(reg)

	m.BytesRead(10)
	m.BytesCommitted(4)
	m.InFlight(6)
	m.ChunkFlushed(10)
	m.WindowFull()
	m.AckDuration().ObserveDuration()

	names := gatherNames(t, reg)
	assert.True(t, names["pipeline_bytes_in_flight"])
	assert.True(t, names["pipeline_window_full_total"])

	pm := m.(*pipelineMetrics)
	assert.Equal(t, float64(6), testutil.ToFloat64(pm.inFlight))
}

func TestAllMetrics_pipeline(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAllMetrics(reg)
	require.NotNil(t, m.Actor)
	require.NotNil(t, m.Pipeline)

	tx, rx := mailbox.New[byte]()
	p, err := pipeline.Start(rx, pipeline.Options{
		Config:       pipeline.Config{Window: 4, FlushInterval: time.Millisecond},
		Metrics:      m.Pipeline,
		ActorMetrics: m.Actor,
	})
	require.NoError(t, err)

	h := actor.Spawn(pipeline.NewProducer(bytes.NewReader([]byte("0123456789")), tx), actor.WithMetrics(m.Actor))
	require.NoError(t, h.Stopped(t.Context()))
	require.NoError(t, p.Wait(t.Context()))

	assert.Equal(t, float64(10), testutil.ToFloat64(m.Pipeline.bytesCommitted))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.Pipeline.inFlight))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.Actor.spawnedTotal))
}

func TestBoolToStr(t *testing.T) {
	assert.Equal(t, "true", boolToStr(true))
	assert.Equal(t, "false", boolToStr(false))
}
