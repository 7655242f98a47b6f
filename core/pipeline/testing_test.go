package pipeline

import (
	"sync"
	"time"

	"github.com/djmitche/actor-experiment/core/metrics"
)

// recorder keeps every value the tailer reports so tests can check the
// window and commitment invariants afterwards.
type recorder struct {
	mu         sync.Mutex
	read       uint64
	committed  uint64
	reads      []uint64
	commits    []uint64
	inFlight   []uint64
	flushed    []int
	windowFull int
	acks       int
	ackTimes   []time.Duration
}

func (r *recorder) BytesRead(total uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.read = total
	r.reads = append(r.reads, total)
}

func (r *recorder) BytesCommitted(total uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = total
	r.commits = append(r.commits, total)
}

func (r *recorder) InFlight(bytes uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight = append(r.inFlight, bytes)
}

func (r *recorder) ChunkFlushed(size int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flushed = append(r.flushed, size)
}

func (r *recorder) WindowFull() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.windowFull++
}

func (r *recorder) AckDuration() metrics.Timer {
	return ackTimer{r: r, start: time.Now()}
}

type ackTimer struct {
	r     *recorder
	start time.Time
}

func (a ackTimer) ObserveDuration() {
	a.r.mu.Lock()
	defer a.r.mu.Unlock()
	a.r.acks++
	a.r.ackTimes = append(a.r.ackTimes, time.Since(a.start))
}

func (r *recorder) snapshot() (read, committed uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read, r.committed
}

var _ PipelineMetrics = (*recorder)(nil)
