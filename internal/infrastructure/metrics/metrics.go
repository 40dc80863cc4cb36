// Package metrics collects Prometheus metrics for outgoing service requests.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tesso57/storyterm/internal/infrastructure/logx"
)

// Recorder is the metrics surface used by the API clients.
type Recorder interface {
	RecordRequest(endpoint string, status int, duration time.Duration)
	RecordRateLimited(endpoint string)
}

// Collector records request metrics into a Prometheus registry.
type Collector struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	rateLimited *prometheus.CounterVec
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storyterm_requests_total",
			Help: "Requests sent to the story services by endpoint and status code.",
		}, []string{"endpoint", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storyterm_request_duration_seconds",
			Help:    "Round-trip latency of story service requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		rateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storyterm_rate_limited_total",
			Help: "Responses rejected with HTTP 429.",
		}, []string{"endpoint"}),
	}

	reg.MustRegister(c.requests, c.latency, c.rateLimited)
	return c
}

// RecordRequest records one completed request. Status 0 means a transport failure.
func (c *Collector) RecordRequest(endpoint string, status int, duration time.Duration) {
	c.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordRateLimited records an HTTP 429 response.
func (c *Collector) RecordRateLimited(endpoint string) {
	c.rateLimited.WithLabelValues(endpoint).Inc()
}

// Nop discards everything.
type Nop struct{}

// RecordRequest implements Recorder.
func (Nop) RecordRequest(string, int, time.Duration) {}

// RecordRateLimited implements Recorder.
func (Nop) RecordRateLimited(string) {}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute returns a mux serving /metrics.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}

// Server is an optional /metrics listener.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Serve starts serving /metrics on addr in the background.
func Serve(addr string, gatherer prometheus.Gatherer) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		srv: &http.Server{
			Handler:           SetupMetricsRoute(gatherer),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln: ln,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Error(err, "metrics server stopped")
		}
	}()
	logx.Info("metrics listener started", "addr", ln.Addr().String())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Close shuts the listener down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
