package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/cinemaclient/internal/logging"
)

func TestMetricsHandler_ServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "cinema_test_total", Help: "test counter"})
	reg.MustRegister(c)
	c.Add(3)

	srv := httptest.NewServer(metricsHandler(reg))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "cinema_test_total 3")

	resp2, err := http.Get(srv.URL + "/other")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestServeMetrics_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeMetrics(ctx, "127.0.0.1:0", prometheus.NewRegistry(), logging.Nop()) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ServeMetrics did not return")
	}
}

func TestServeMetrics_ListenError(t *testing.T) {
	err := ServeMetrics(context.Background(), "127.0.0.1:99999", prometheus.NewRegistry(), logging.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics server")
}
