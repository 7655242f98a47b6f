package pipeline

import (
	"fmt"
	"time"
)

const (
	DefaultWindow        = 1024
	DefaultFlushInterval = 100 * time.Millisecond
)

// Config holds the pipeline tunables.
type Config struct {
	// Window is the maximum number of bytes read but not yet committed.
	Window int
	// FlushInterval is how long the first byte of a buffer may wait before
	// the buffer is flushed.
	FlushInterval time.Duration
	// AckLatency is the simulated processing time before the consumer
	// acknowledges a chunk.
	AckLatency time.Duration
	// MaxAcks caps concurrently running acknowledgments. 0 means unlimited.
	MaxAcks int
}

// WithDefaults fills zero fields with defaults.
func (c Config) WithDefaults() Config {
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
	if c.FlushInterval == 0 {
		c.FlushInterval = DefaultFlushInterval
	}
	return c
}

func (c Config) Validate() error {
	if c.Window < 1 {
		return fmt.Errorf("%w: window must be positive, got %d", ErrInvalidConfig, c.Window)
	}
	if c.FlushInterval < 0 {
		return fmt.Errorf("%w: negative flush interval %s", ErrInvalidConfig, c.FlushInterval)
	}
	if c.AckLatency < 0 {
		return fmt.Errorf("%w: negative ack latency %s", ErrInvalidConfig, c.AckLatency)
	}
	return nil
}
