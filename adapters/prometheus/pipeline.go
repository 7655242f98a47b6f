package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/djmitche/actor-experiment/core/metrics"
	"github.com/djmitche/actor-experiment/core/pipeline"
)

// pipelineMetrics implements pipeline.PipelineMetrics using Prometheus.
type pipelineMetrics struct {
	bytesRead      prometheus.Gauge
	bytesCommitted prometheus.Gauge
	inFlight       prometheus.Gauge
	chunkSize      prometheus.Histogram
	windowFull     prometheus.Counter
	ackDuration    prometheus.Histogram
}

// NewPipelineMetrics creates a new Prometheus implementation of
// PipelineMetrics.
func NewPipelineMetrics(reg prometheus.Registerer) pipeline.PipelineMetrics {
	m := &pipelineMetrics{
		bytesRead: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pipeline_bytes_read",
			Help: "Bytes read by the tailer",
		}),

		bytesCommitted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pipeline_bytes_committed",
			Help: "Bytes acknowledged by the end of the pipeline",
		}),

		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pipeline_bytes_in_flight",
			Help: "Bytes read but not yet committed",
		}),

		chunkSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pipeline_chunk_size_bytes",
			Help:    "Size of flushed chunks",
			Buckets: prometheus.ExponentialBuckets(1, 2, 16),
		}),

		windowFull: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pipeline_window_full_total",
			Help: "Number of times the tailer stopped reading because the window was full",
		}),

		ackDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pipeline_ack_duration_seconds",
			Help:    "Time from scheduling an acknowledgment to delivering it, including time queued for a free slot",
			Buckets: defaultBuckets,
		}),
	}

	reg.MustRegister(
		m.bytesRead,
		m.bytesCommitted,
		m.inFlight,
		m.chunkSize,
		m.windowFull,
		m.ackDuration,
	)

	return m
}

func (m *pipelineMetrics) BytesRead(total uint64)      { m.bytesRead.Set(float64(total)) }
func (m *pipelineMetrics) BytesCommitted(total uint64) { m.bytesCommitted.Set(float64(total)) }
func (m *pipelineMetrics) InFlight(bytes uint64)       { m.inFlight.Set(float64(bytes)) }
func (m *pipelineMetrics) ChunkFlushed(size int)       { m.chunkSize.Observe(float64(size)) }
func (m *pipelineMetrics) WindowFull()                 { m.windowFull.Inc() }

func (m *pipelineMetrics) AckDuration() metrics.Timer { return newTimer(m.ackDuration) }

var _ pipeline.PipelineMetrics = (*pipelineMetrics)(nil)
