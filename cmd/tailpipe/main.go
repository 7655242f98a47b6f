// Command tailpipe reads stdin through a windowed-backpressure pipeline and
// prints every flushed chunk with its commitment checkpoint.
//
//	WINDOW=64 FLUSH_INTERVAL=200ms ACK_LATENCY=50ms tailpipe < somefile
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	promadapter "github.com/djmitche/actor-experiment/adapters/prometheus"
	"github.com/djmitche/actor-experiment/core/actor"
	"github.com/djmitche/actor-experiment/core/mailbox"
	"github.com/djmitche/actor-experiment/core/pipeline"
)

// === Config ===

var (
	logLevel      = getEnv("LOG_LEVEL", "info")
	window        = getEnvInt("WINDOW", pipeline.DefaultWindow)
	flushInterval = getEnvDuration("FLUSH_INTERVAL", pipeline.DefaultFlushInterval)
	ackLatency    = getEnvDuration("ACK_LATENCY", 0)
	maxAcks       = getEnvInt("MAX_ACKS", 0)
	metricsAddr   = getEnv("METRICS_ADDR", "")
)

func getEnv(key, fallback string) string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil {
		return fallback
	}
	return v
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(logLevel),
	}))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("tailpipe failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// listenMetrics binds addr and returns a server for the registry's
// /metrics endpoint. An empty addr disables metrics and returns nils.
func listenMetrics(addr string, reg *prometheus.Registry) (*http.Server, net.Listener, error) {
	if addr == "" {
		return nil, nil, nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &http.Server{Handler: mux}, ln, nil
}

func run(log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reg := prometheus.NewRegistry()
	m := promadapter.NewAllMetrics(reg)

	cfg := pipeline.Config{
		Window:        window,
		FlushInterval: flushInterval,
		AckLatency:    ackLatency,
		MaxAcks:       maxAcks,
	}
	// bound before anything reads stdin, so a taken port fails right away
	srv, ln, err := listenMetrics(metricsAddr, reg)
	if err != nil {
		return err
	}

	log.Info("starting pipeline",
		slog.Int("window", cfg.Window),
		slog.Duration("flush_interval", cfg.FlushInterval),
		slog.Duration("ack_latency", cfg.AckLatency),
	)

	inTx, inRx := mailbox.New[byte]()
	p, err := pipeline.Start(inRx, pipeline.Options{
		Config: cfg,
		Logger: log,
		Sink: func(c pipeline.Chunk) {
			fmt.Printf("%8d | %q\n", c.Commit, c.Data)
		},
		Metrics:      m.Pipeline,
		ActorMetrics: m.Actor,
	})
	if err != nil {
		if ln != nil {
			_ = ln.Close()
		}
		return err
	}
	producer := actor.Spawn(pipeline.NewProducer(os.Stdin, inTx),
		actor.WithID("producer"),
		actor.WithLogger(log),
		actor.WithMetrics(m.Actor),
	)

	var g errgroup.Group
	g.Go(func() error {
		// a signal asks the pipeline to drain; a second one is not handled
		select {
		case <-ctx.Done():
			log.Info("stopping pipeline")
			p.Stop()
		case <-p.Tailer.Done():
		}
		return nil
	})
	g.Go(func() error {
		err := p.Wait(context.Background())
		if srv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}
		return err
	})
	if srv != nil {
		g.Go(func() error {
			log.Info("serving metrics", slog.String("addr", ln.Addr().String()))
			if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				p.Stop()
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	// stdin may still be blocked in a read after a stop; don't wait for it
	select {
	case <-producer.Done():
		if err := producer.Err(); err != nil {
			return err
		}
	default:
	}

	log.Info("pipeline drained")
	return nil
}
