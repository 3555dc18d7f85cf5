// Package metrics implements the observability hooks with Prometheus
// collectors.
//
// Collectors are registered on the Registerer passed to [New], never on the
// global default registry, so tests and multiple servers in one process do
// not collide.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
	"github.com/matzehuels/bwcolor/pkg/observability"
)

const namespace = "bwcolor"

// Metrics holds every collector. It implements observability.SolveHooks,
// observability.CacheHooks and observability.HTTPHooks.
type Metrics struct {
	solveTotal    *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	treeNodes     prometheus.Histogram
	colorTotal    *prometheus.CounterVec
	colorDuration prometheus.Histogram
	renderTotal   *prometheus.CounterVec
	renderBytes   prometheus.Histogram

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheWrites *prometheus.CounterVec
	cacheErrors *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		solveTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solve_total",
			Help:      "MaxWhite table computations by algorithm and result code.",
		}, []string{"algorithm", "code"}),
		solveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "MaxWhite table computation time.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}, []string{"algorithm"}),
		treeNodes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tree_nodes",
			Help:      "Size of solved trees.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		colorTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coloring_total",
			Help:      "Coloring reconstructions by result code.",
		}, []string{"code"}),
		colorDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "coloring_duration_seconds",
			Help:      "Coloring reconstruction time.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		renderTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_total",
			Help:      "Rendered artifacts by format and result code.",
		}, []string{"format", "code"}),
		renderBytes: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_bytes",
			Help:      "Size of rendered artifacts.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		}),
		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits by key type.",
		}, []string{"key_type"}),
		cacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses by key type.",
		}, []string{"key_type"}),
		cacheWrites: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Cache writes by key type.",
		}, []string{"key_type"}),
		cacheErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_errors_total",
			Help:      "Failed cache operations by key type and operation.",
		}, []string{"key_type", "op"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "API requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Register installs m as the process-wide solve, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetSolveHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) OnSolveStart(context.Context, string, int) {}

func (m *Metrics) OnSolveComplete(_ context.Context, algorithm string, nodes int, d time.Duration, err error) {
	m.solveTotal.WithLabelValues(algorithm, code(err)).Inc()
	if err == nil {
		m.solveDuration.WithLabelValues(algorithm).Observe(d.Seconds())
		m.treeNodes.Observe(float64(nodes))
	}
}

func (m *Metrics) OnColor(_ context.Context, _, _, _ int, d time.Duration, err error) {
	m.colorTotal.WithLabelValues(code(err)).Inc()
	if err == nil {
		m.colorDuration.Observe(d.Seconds())
	}
}

func (m *Metrics) OnRender(_ context.Context, format string, size int, _ time.Duration, err error) {
	m.renderTotal.WithLabelValues(format, code(err)).Inc()
	if err == nil {
		m.renderBytes.Observe(float64(size))
	}
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheHits.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheMisses.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	m.cacheWrites.WithLabelValues(keyType).Inc()
}

func (m *Metrics) OnCacheError(_ context.Context, keyType, op string, _ error) {
	m.cacheErrors.WithLabelValues(keyType, op).Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// code is the label for an outcome: "ok", or the error code.
func code(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	if c := bwerrors.GetCode(err); c != "" {
		return string(c)
	}
	return string(bwerrors.ErrCodeInternal)
}

var (
	_ observability.SolveHooks = (*Metrics)(nil)
	_ observability.CacheHooks = (*Metrics)(nil)
	_ observability.HTTPHooks  = (*Metrics)(nil)
)
