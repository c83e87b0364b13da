// Package metrics exposes scan counters in the Prometheus text format.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the counters for one scan. Each Metrics has its own registry,
// so tests and embedded decoders do not collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	lines       *prometheus.CounterVec
	events      *prometheus.CounterVec
	lineErrors  *prometheus.CounterVec
	batchDur    prometheus.Histogram
	lastLineTS  prometheus.Gauge
	outputFails prometheus.Counter
}

// New creates and registers the scan metrics.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.lines = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Name:      "lines_total",
		Help:      "Journal lines seen, by result (decoded, failed, filtered)",
	}, []string{"result"})
	m.events = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Name:      "events_total",
		Help:      "Decoded events by kind",
	}, []string{"kind"})
	m.lineErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "journal",
		Name:      "line_errors_total",
		Help:      "Lines that failed to decode, by error kind",
	}, []string{"kind"})
	m.batchDur = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "journal",
		Name:      "batch_duration_seconds",
		Help:      "Time spent decoding one batch of lines",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	})
	m.lastLineTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "journal",
		Name:      "last_line_timestamp_seconds",
		Help:      "Unix time at which the last line was handled",
	})
	m.outputFails = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "journal",
		Name:      "output_errors_total",
		Help:      "Outcomes the output failed to write",
	})

	m.registry.MustRegister(
		m.lines, m.events, m.lineErrors,
		m.batchDur, m.lastLineTS, m.outputFails,
	)
	return m
}

// Decoded counts a line that decoded into an event of kind.
func (m *Metrics) Decoded(kind string) {
	m.lines.WithLabelValues("decoded").Inc()
	m.events.WithLabelValues(kind).Inc()
	m.lastLineTS.SetToCurrentTime()
}

// Failed counts a line that failed with the given error kind.
func (m *Metrics) Failed(errKind string) {
	m.lines.WithLabelValues("failed").Inc()
	m.lineErrors.WithLabelValues(errKind).Inc()
	m.lastLineTS.SetToCurrentTime()
}

// Filtered counts a line dropped by the kind filter.
func (m *Metrics) Filtered() {
	m.lines.WithLabelValues("filtered").Inc()
}

// OutputFailed counts a failed output write.
func (m *Metrics) OutputFailed() {
	m.outputFails.Inc()
}

// ObserveBatch records how long a batch took to decode.
func (m *Metrics) ObserveBatch(d time.Duration) {
	m.batchDur.Observe(d.Seconds())
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Server serves /metrics and /healthz on addr.
type Server struct {
	server *http.Server
}

// NewServer creates a metrics server for m. Call Serve to start it.
func NewServer(addr string, m *Metrics) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &Server{server: &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Serve blocks until the server stops. A server stopped by Shutdown returns nil.
func (s *Server) Serve() error {
	if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error { return s.server.Shutdown(ctx) }
