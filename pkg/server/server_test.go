package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/valvepath/pkg/graph"
	"github.com/matzehuels/valvepath/pkg/metrics"
	"github.com/matzehuels/valvepath/pkg/observability"
	"github.com/matzehuels/valvepath/pkg/pipeline"
)

const sampleInput = `Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
Valve BB has flow rate=13; tunnels lead to valves CC, AA
Valve CC has flow rate=2; tunnels lead to valves DD, BB
Valve DD has flow rate=20; tunnels lead to valves CC, AA, EE
Valve EE has flow rate=3; tunnels lead to valves FF, DD
Valve FF has flow rate=0; tunnels lead to valves EE, GG
Valve GG has flow rate=0; tunnels lead to valves FF, HH
Valve HH has flow rate=22; tunnel leads to valve GG
Valve II has flow rate=0; tunnels lead to valves AA, JJ
Valve JJ has flow rate=21; tunnel leads to valve II
`

func newTestServer(opts ...Option) *Server {
	quiet := WithLogger(log.NewWithOptions(io.Discard, log.Options{}))
	return New(pipeline.NewRunner(nil, nil, nil), append([]Option{quiet}, opts...)...)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "dev", body["version"])
	assert.Contains(t, body, "commit")
}

func TestSolve(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/solve?top=3", sampleInput)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[SolveResponse](t, rec)
	assert.Equal(t, 1464, resp.Score)
	assert.Equal(t, "JJ", resp.From)
	assert.Equal(t, "HH", resp.To)
	assert.Equal(t, []string{"AA", "II", "JJ", "II", "AA", "DD", "EE", "FF", "GG", "HH"}, resp.Path)
	assert.Len(t, resp.Ranked, 3)
	assert.Len(t, resp.Openings, 4)
	assert.Equal(t, 30, resp.Stats.Candidates)
	assert.NotEmpty(t, resp.RequestID)
}

func TestSolveDefaults(t *testing.T) {
	s := newTestServer(WithDefaults(pipeline.Options{Budget: 2}))

	rec := do(t, s, http.MethodPost, "/v1/solve", sampleInput)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[SolveResponse](t, rec).Score)

	rec = do(t, s, http.MethodPost, "/v1/solve?budget=30", sampleInput)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1464, decode[SolveResponse](t, rec).Score)
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
		code   string
	}{
		{"malformed line", "/v1/solve", "Valve AA flows\n", http.StatusUnprocessableEntity, "INVALID_FORMAT"},
		{"missing entry", "/v1/solve?entry=ZZ", sampleInput, http.StatusUnprocessableEntity, "MISSING_ENTRY"},
		{"no candidates", "/v1/solve", "Valve AA has flow rate=0; tunnel leads to valve AA\n", http.StatusUnprocessableEntity, "NO_CANDIDATES"},
		{"budget not a number", "/v1/solve?budget=lots", sampleInput, http.StatusBadRequest, "INVALID_INPUT"},
		{"budget too large", "/v1/solve?budget=20000", sampleInput, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, newTestServer(), http.MethodPost, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			body := decode[errorResponse](t, rec)
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	s := newTestServer(WithMaxBodyBytes(16))

	rec := do(t, s, http.MethodPost, "/v1/solve", sampleInput)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "TOO_LARGE", decode[errorResponse](t, rec).Code)
}

func TestNetwork(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodPost, "/v1/network?entry=JJ", sampleInput)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "network=false", rec.Header().Get(CacheHeader))

	n, err := graph.ReadGraph(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "JJ", n.Entry().ID)
	assert.Equal(t, 10, n.NodeCount())
}

func TestRequestID(t *testing.T) {
	s := newTestServer()

	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "abc-123<script>")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123script", rec.Header().Get(RequestIDHeader))
}

func TestSanitizeRequestID(t *testing.T) {
	assert.Equal(t, "a.b_c-d", sanitizeRequestID("a.b_c-d"))
	assert.Equal(t, "", sanitizeRequestID("<>!"))
	assert.Len(t, sanitizeRequestID(strings.Repeat("x", 100)), maxRequestIDLen)
}

func TestMetrics(t *testing.T) {
	reg := metrics.NewRegistry()
	observability.SetHTTPHooks(reg)
	t.Cleanup(observability.Reset)

	s := newTestServer(WithMetrics(reg.Handler()))
	do(t, s, http.MethodPost, "/v1/solve", sampleInput)
	do(t, s, http.MethodPost, "/v1/solve?entry=ZZ", sampleInput)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `valvepath_http_requests_total{method="POST",route="/v1/solve",status="200"} 1`)
	assert.Contains(t, body, `valvepath_http_errors_total{code="MISSING_ENTRY",route="/v1/solve"} 1`)
}

func TestMetricsNotMounted(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor(io.ErrUnexpectedEOF))
	assert.Equal(t, http.StatusRequestEntityTooLarge, StatusFor(&http.MaxBytesError{Limit: 1}))
}
