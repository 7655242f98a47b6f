package main

import (
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestListenMetrics_disabled(t *testing.T) {
	srv, ln, err := listenMetrics("", prometheus.NewRegistry())
	require.NoError(t, err)
	require.Nil(t, srv)
	require.Nil(t, ln)
}

func TestListenMetrics_port_taken(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	_, _, err = listenMetrics(taken.Addr().String(), prometheus.NewRegistry())
	require.ErrorContains(t, err, "metrics listener")
}

func TestListenMetrics_serves(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "tailpipe_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	srv, ln, err := listenMetrics("127.0.0.1:0", reg)
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "tailpipe_test_total 1")
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TAILPIPE_TEST_DURATION", "250ms")
	require.Equal(t, 250*time.Millisecond, getEnvDuration("TAILPIPE_TEST_DURATION", 0))

	t.Setenv("TAILPIPE_TEST_DURATION", "nope")
	require.Equal(t, time.Second, getEnvDuration("TAILPIPE_TEST_DURATION", time.Second))
}
