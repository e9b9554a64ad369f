// Package metrics exports pipeline, cache and HTTP events to Prometheus.
//
// A [Registry] implements the hook interfaces of package observability, so
// wiring it up is a matter of registering it at startup:
//
//	reg := metrics.NewRegistry()
//	observability.SetPipelineHooks(reg)
//	observability.SetCacheHooks(reg)
//	observability.SetHTTPHooks(reg)
//	router.Handle("/metrics", reg.Handler())
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/valvepath/pkg/observability"
)

const namespace = "valvepath"

// Registry holds all metrics for the application.
type Registry struct {
	// Pipeline metrics
	StageRunsTotal   *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
	StageItems       *prometheus.HistogramVec
	UnreachableTotal prometheus.Counter
	StagesInFlight   *prometheus.GaugeVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheWriteBytes  *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPErrorsTotal      *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every metric initialized, plus the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{registry: reg}
	r.initPipelineMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()
	return r
}

// Prometheus returns the underlying Prometheus registry.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// =============================================================================
// Initialization
// =============================================================================

func (r *Registry) initPipelineMetrics() {
	f := promauto.With(r.registry)

	r.StageRunsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_runs_total",
			Help:      "Pipeline stage executions by outcome",
		},
		[]string{"stage", "status"},
	)
	r.StageDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage latency in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"stage"},
	)
	r.StageItems = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_items",
			Help:      "Items produced per pipeline stage",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"stage"},
	)
	r.UnreachableTotal = f.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unreachable_pairs_total",
			Help:      "Candidate pairs skipped because a leg had no path",
		},
	)
	r.StagesInFlight = f.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stages_in_flight",
			Help:      "Pipeline stages currently executing",
		},
		[]string{"stage"},
	)
}

func (r *Registry) initCacheMetrics() {
	f := promauto.With(r.registry)

	r.CacheHitsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Cache hits by item kind",
		},
		[]string{"kind"},
	)
	r.CacheMissesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cache misses by item kind",
		},
		[]string{"kind"},
	)
	r.CacheWriteBytes = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cache_write_bytes",
			Help:      "Size of cache writes in bytes",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		},
		[]string{"kind"},
	)
}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)

	r.HTTPRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	r.HTTPRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	r.HTTPRequestsInFlight = f.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
	r.HTTPErrorsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Failed HTTP requests by error code",
		},
		[]string{"route", "code"},
	)
}

// =============================================================================
// observability.PipelineHooks
// =============================================================================

// OnStageStart marks a stage as running.
func (r *Registry) OnStageStart(_ context.Context, stage string) {
	r.StagesInFlight.WithLabelValues(stage).Inc()
}

// OnStageComplete records the outcome, latency and output size of a stage.
func (r *Registry) OnStageComplete(_ context.Context, stage string, items int, d time.Duration, err error) {
	r.StagesInFlight.WithLabelValues(stage).Dec()
	r.StageRunsTotal.WithLabelValues(stage, status(err)).Inc()
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	if err == nil {
		r.StageItems.WithLabelValues(stage).Observe(float64(items))
	}
}

// OnUnreachable counts a skipped pair.
func (r *Registry) OnUnreachable(context.Context, string, string) {
	r.UnreachableTotal.Inc()
}

// =============================================================================
// observability.CacheHooks
// =============================================================================

// OnCacheHit records a cache hit.
func (r *Registry) OnCacheHit(_ context.Context, kind string) {
	r.CacheHitsTotal.WithLabelValues(kind).Inc()
}

// OnCacheMiss records a cache miss.
func (r *Registry) OnCacheMiss(_ context.Context, kind string) {
	r.CacheMissesTotal.WithLabelValues(kind).Inc()
}

// OnCacheSet records a cache write.
func (r *Registry) OnCacheSet(_ context.Context, kind string, size int) {
	r.CacheWriteBytes.WithLabelValues(kind).Observe(float64(size))
}

// =============================================================================
// observability.HTTPHooks
// =============================================================================

// OnRequest tracks an in-flight request.
func (r *Registry) OnRequest(context.Context, string, string) {
	r.HTTPRequestsInFlight.Inc()
}

// OnResponse records a completed request.
func (r *Registry) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	r.HTTPRequestsInFlight.Dec()
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// OnError counts a failed request by error code.
func (r *Registry) OnError(_ context.Context, _, route, code string) {
	r.HTTPErrorsTotal.WithLabelValues(route, code).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.HTTPHooks     = (*Registry)(nil)
)
