package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/matzehuels/valvepath/pkg/observability"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Counter.GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return m.Gauge.GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	if r.StageRunsTotal == nil || r.CacheHitsTotal == nil || r.HTTPRequestsTotal == nil {
		t.Fatal("metrics not initialized")
	}
	if r.Prometheus() == nil {
		t.Error("Prometheus registry not initialized")
	}
	// Two registries must not collide on registration.
	_ = NewRegistry()
}

func TestPipelineHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnStageStart(ctx, observability.StageScore)
	if v := gaugeValue(t, r.StagesInFlight.WithLabelValues(observability.StageScore)); v != 1 {
		t.Errorf("in flight = %v, want 1", v)
	}
	r.OnStageComplete(ctx, observability.StageScore, 30, time.Millisecond, nil)
	if v := gaugeValue(t, r.StagesInFlight.WithLabelValues(observability.StageScore)); v != 0 {
		t.Errorf("in flight = %v, want 0", v)
	}

	r.OnStageStart(ctx, observability.StageParse)
	r.OnStageComplete(ctx, observability.StageParse, 0, time.Millisecond, errors.New("bad line"))

	if v := counterValue(t, r.StageRunsTotal.WithLabelValues(observability.StageScore, "success")); v != 1 {
		t.Errorf("score success = %v, want 1", v)
	}
	if v := counterValue(t, r.StageRunsTotal.WithLabelValues(observability.StageParse, "error")); v != 1 {
		t.Errorf("parse error = %v, want 1", v)
	}

	r.OnUnreachable(ctx, "AA", "BB")
	r.OnUnreachable(ctx, "CC", "BB")
	if v := counterValue(t, r.UnreachableTotal); v != 2 {
		t.Errorf("unreachable = %v, want 2", v)
	}
}

func TestCacheHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnCacheHit(ctx, observability.KindNetwork)
	r.OnCacheMiss(ctx, observability.KindResult)
	r.OnCacheMiss(ctx, observability.KindResult)
	r.OnCacheSet(ctx, observability.KindResult, 512)

	if v := counterValue(t, r.CacheHitsTotal.WithLabelValues(observability.KindNetwork)); v != 1 {
		t.Errorf("hits = %v, want 1", v)
	}
	if v := counterValue(t, r.CacheMissesTotal.WithLabelValues(observability.KindResult)); v != 2 {
		t.Errorf("misses = %v, want 2", v)
	}
}

func TestHTTPHooks(t *testing.T) {
	r := NewRegistry()
	ctx := context.Background()

	r.OnRequest(ctx, "POST", "/v1/solve")
	if v := gaugeValue(t, r.HTTPRequestsInFlight); v != 1 {
		t.Errorf("in flight = %v, want 1", v)
	}
	r.OnError(ctx, "POST", "/v1/solve", "INVALID_FORMAT")
	r.OnResponse(ctx, "POST", "/v1/solve", 422, 10*time.Millisecond)

	if v := gaugeValue(t, r.HTTPRequestsInFlight); v != 0 {
		t.Errorf("in flight = %v, want 0", v)
	}
	if v := counterValue(t, r.HTTPRequestsTotal.WithLabelValues("POST", "/v1/solve", "422")); v != 1 {
		t.Errorf("requests = %v, want 1", v)
	}
	if v := counterValue(t, r.HTTPErrorsTotal.WithLabelValues("/v1/solve", "INVALID_FORMAT")); v != 1 {
		t.Errorf("errors = %v, want 1", v)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.OnCacheHit(context.Background(), observability.KindResult)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(string(body), `valvepath_cache_hits_total{kind="result"} 1`) {
		t.Errorf("exposition missing cache hit counter:\n%s", body)
	}
}
