package pipeline

import "github.com/djmitche/actor-experiment/core/metrics"

// PipelineMetrics defines the metrics interface for the pipeline stages.
// Tailer methods are called from the tailer goroutine only; AckDuration is
// observed from acknowledgment tasks concurrently.
type PipelineMetrics interface {
	// Tailer
	BytesRead(total uint64)
	BytesCommitted(total uint64)
	InFlight(bytes uint64)
	ChunkFlushed(size int)
	WindowFull()

	// Consumer. AckDuration is started when an acknowledgment is scheduled
	// and observed once it was delivered or dropped.
	AckDuration() metrics.Timer
}

// nopPipelineMetrics is a no-op implementation of PipelineMetrics.
type nopPipelineMetrics struct{}

func (nopPipelineMetrics) BytesRead(uint64)      {}
func (nopPipelineMetrics) BytesCommitted(uint64) {}
func (nopPipelineMetrics) InFlight(uint64)       {}
func (nopPipelineMetrics) ChunkFlushed(int)      {}
func (nopPipelineMetrics) WindowFull()           {}

func (nopPipelineMetrics) AckDuration() metrics.Timer { return metrics.NopTimer() }

// NopPipelineMetrics returns a no-op PipelineMetrics implementation.
func NopPipelineMetrics() PipelineMetrics { return nopPipelineMetrics{} }
