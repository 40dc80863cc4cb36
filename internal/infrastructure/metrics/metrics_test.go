package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("tasks.list", 200, 10*time.Millisecond)
	c.RecordRequest("tasks.list", 200, 20*time.Millisecond)
	c.RecordRequest("users.signin", 400, time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(c.requests.WithLabelValues("tasks.list", "200")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.requests.WithLabelValues("users.signin", "400")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(c.latency))
}

func TestRecordRateLimited(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRateLimited("tasks.create")

	assert.InDelta(t, 1, testutil.ToFloat64(c.rateLimited.WithLabelValues("tasks.create")), 0)
}

func TestSetupMetricsRoute_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRequest("users.view", 200, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	SetupMetricsRoute(reg).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "storyterm_requests_total"))
}

func TestServeAndClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	reg := prometheus.NewRegistry()
	NewCollector(reg).RecordRateLimited("users.signin")

	srv, err := Serve("127.0.0.1:0", reg)
	require.NoError(t, err)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Contains(t, string(body), "storyterm_rate_limited_total")

	require.NoError(t, srv.Close())
}
