package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/djmitche/actor-experiment/core/mailbox"
)

type TailerOptions struct {
	Config Config

	Input   mailbox.Receiver[byte]
	Output  mailbox.Sender[Chunk]
	Commits mailbox.Receiver[uint64]
	// Stop requests a cooperative shutdown. Optional.
	Stop *mailbox.Stop

	Logger  *slog.Logger
	Metrics PipelineMetrics
}

// Tailer is the producing stage. It buffers input bytes, flushes them on a
// debounce timer and refuses new input while the window of uncommitted
// bytes is full.
//
// The tailer reads until its input is closed or a stop is requested, then
// drains: it keeps flushing and collecting commitments until every byte it
// read is committed. Only then does Run return.
type Tailer struct {
	input   mailbox.Receiver[byte]
	output  mailbox.Sender[Chunk]
	commits mailbox.Receiver[uint64]
	stop    *mailbox.Stop

	window   uint64
	interval time.Duration

	// current buffer of not-yet-sent bytes
	buf   []byte
	flush mailbox.Timer

	// total number of bytes read
	read uint64
	// total number of bytes committed at the end of the pipeline
	committed uint64

	stopping   bool
	windowFull bool

	// loop iterations, each one ends in a select that may block
	iterations atomic.Uint64

	log     *slog.Logger
	metrics PipelineMetrics
}

// NewTailer builds a tailer. The tailer owns every mailbox half it is given
// and closes them when Run returns.
func NewTailer(opt TailerOptions) (*Tailer, error) {
	cfg := opt.Config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opt.Input == nil || opt.Output == nil || opt.Commits == nil {
		return nil, fmt.Errorf("%w: tailer needs input, output and commits", ErrInvalidConfig)
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = NopPipelineMetrics()
	}
	return &Tailer{
		input:    opt.Input,
		output:   opt.Output,
		commits:  opt.Commits,
		stop:     opt.Stop,
		window:   uint64(cfg.Window),
		interval: cfg.FlushInterval,
		log:      opt.Logger.With(slog.String("stage", "tailer")),
		metrics:  opt.Metrics,
	}, nil
}

func (t *Tailer) Run(ctx context.Context) error {
	defer t.output.Close()
	defer t.commits.Close()
	defer t.input.Close()
	defer t.flush.Clear()

	for {
		t.iterations.Add(1)
		if t.stopping && t.committed == t.read {
			t.log.Debug("tailer drained", slog.Uint64("read", t.read))
			return nil
		}

		var (
			input <-chan byte
			flush <-chan time.Time
			stop  <-chan struct{}
		)
		if t.admit() {
			input = t.input.C()
		}
		if len(t.buf) > 0 {
			flush = t.flush.C()
		}
		if !t.stopping && t.stop != nil {
			stop = t.stop.C()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case c, ok := <-t.commits.C():
			if !ok {
				return fmt.Errorf("%w: commitment stream closed at %d of %d bytes",
					ErrProtocolViolation, t.committed, t.read)
			}
			if err := t.commit(c); err != nil {
				return err
			}

		case b, ok := <-input:
			if !ok {
				t.log.Debug("input closed", slog.Int("buffered", len(t.buf)))
				if err := t.flushBuf(ctx); err != nil {
					return err
				}
				t.stopping = true
				continue
			}
			t.readByte(b)

		case <-flush:
			if err := t.flushBuf(ctx); err != nil {
				return err
			}

		case <-stop:
			t.log.Debug("stop requested", slog.Uint64("read", t.read), slog.Uint64("committed", t.committed))
			t.stopping = true
		}
	}
}

// admit reports whether the input branch is enabled this iteration.
func (t *Tailer) admit() bool {
	if t.stopping {
		return false
	}
	if t.read-t.committed < t.window {
		t.windowFull = false
		return true
	}
	if !t.windowFull {
		t.windowFull = true
		t.metrics.WindowFull()
		t.log.Debug("window full", slog.Uint64("in_flight", t.read-t.committed))
	}
	return false
}

func (t *Tailer) readByte(b byte) {
	t.read++
	if len(t.buf) == 0 {
		t.flush.SetAfter(t.interval)
	}
	t.buf = append(t.buf, b)
	t.metrics.BytesRead(t.read)
	t.metrics.InFlight(t.read - t.committed)
}

// commit applies a checkpoint. Commitments may arrive out of order, so the
// largest one seen wins and committed never moves backwards.
func (t *Tailer) commit(c uint64) error {
	if c > t.read {
		return fmt.Errorf("%w: commitment %d beyond %d bytes read", ErrProtocolViolation, c, t.read)
	}
	if c <= t.committed {
		return nil
	}
	t.committed = c
	t.metrics.BytesCommitted(t.committed)
	t.metrics.InFlight(t.read - t.committed)
	return nil
}

func (t *Tailer) flushBuf(ctx context.Context) error {
	t.flush.Clear()
	if len(t.buf) == 0 {
		return nil
	}
	chunk := Chunk{Data: t.buf, Commit: t.read}
	t.buf = nil
	if err := t.output.Send(ctx, chunk); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	t.metrics.ChunkFlushed(len(chunk.Data))
	return nil
}
