package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/valvepath/pkg/buildinfo"
	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
	"github.com/matzehuels/valvepath/pkg/graph"
	"github.com/matzehuels/valvepath/pkg/pipeline"
	"github.com/matzehuels/valvepath/pkg/score"
)

// CacheHeader reports whether a response was served from the cache.
const CacheHeader = "X-Valvepath-Cache"

// SolveResponse is the body of a successful POST /v1/solve.
type SolveResponse struct {
	Score     int                `json:"score"`
	From      string             `json:"from"`
	To        string             `json:"to"`
	Path      []string           `json:"path"`
	Openings  []score.Opening    `json:"openings"`
	Ranked    []pipeline.Ranked  `json:"ranked,omitempty"`
	Skipped   []pipeline.Pair    `json:"skipped,omitempty"`
	Stats     pipeline.Stats     `json:"stats"`
	Cache     pipeline.CacheInfo `json:"cache"`
	RequestID string             `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	info := buildinfo.Get()
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": info.Version,
		"commit":  info.Commit,
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	input, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), input, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	sol := res.Solution
	w.Header().Set(CacheHeader, res.CacheInfo.String())
	writeJSON(w, http.StatusOK, SolveResponse{
		Score:     sol.Score,
		From:      sol.Best.From,
		To:        sol.Best.To,
		Path:      sol.Best.Path,
		Openings:  sol.Openings,
		Ranked:    sol.Ranked,
		Skipped:   sol.Skipped,
		Stats:     res.Stats,
		Cache:     res.CacheInfo,
		RequestID: GetRequestID(r.Context()),
	})
}

func (s *Server) handleNetwork(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	input, err := io.ReadAll(r.Body)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	n, hit, err := s.runner.Network(r.Context(), input, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := graph.MarshalGraph(n)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(CacheHeader, "network="+strconv.FormatBool(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// options overlays the request's query parameters on the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	q := r.URL.Query()

	if v := q.Get("entry"); v != "" {
		opts.Entry = v
	}
	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"budget", &opts.Budget},
		{"top", &opts.Top},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, pkgerrors.New(pkgerrors.ErrCodeInvalidInput, "%s: must be an integer, got %q", p.name, v)
		}
		*p.dst = n
	}
	_, opts.Refresh = q["refresh"]
	return opts, nil
}
