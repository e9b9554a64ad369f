package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/valvepath/pkg/cache"
	"github.com/matzehuels/valvepath/pkg/graph"
	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → build → generate → score pipeline
// over input with caching.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}
	n, hash, err := r.network(ctx, input, opts, result)
	if err != nil {
		return nil, err
	}
	result.Network = n
	result.NetworkHash = hash
	result.Stats.Valves = n.NodeCount()
	result.Stats.Tunnels = n.EdgeCount()

	sol, err := r.solve(ctx, n, hash, opts, result)
	if err != nil {
		return nil, err
	}
	result.Solution = sol
	result.Stats.Useful = len(sol.Useful)
	result.Stats.Candidates = sol.Candidates
	result.Stats.Skipped = len(sol.Skipped)
	return result, nil
}

// Network parses and builds the network for input with caching, without
// scoring it.
func (r *Runner) Network(ctx context.Context, input []byte, opts Options) (*network.Network, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	var result Result
	n, _, err := r.network(ctx, input, opts, &result)
	if err != nil {
		return nil, false, err
	}
	return n, result.CacheInfo.NetworkHit, nil
}

func (r *Runner) network(ctx context.Context, input []byte, opts Options, result *Result) (*network.Network, string, error) {
	key := r.Keyer.NetworkKey(cache.Hash(input), opts.Entry)

	if data, ok := r.lookup(ctx, key, observability.KindNetwork, opts); ok {
		if n, err := graph.ReadGraph(bytes.NewReader(data)); err == nil {
			result.CacheInfo.NetworkHit = true
			opts.Logger.Debug("network from cache", "valves", n.NodeCount())
			return n, cache.Hash(data), nil
		}
	}

	records, parseTime, err := Parse(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = parseTime
	opts.Logger.Info("parsed records", "records", len(records), "duration", parseTime)

	n, buildTime, err := Build(ctx, records, opts.Entry)
	if err != nil {
		return nil, "", fmt.Errorf("build: %w", err)
	}
	result.Stats.BuildTime = buildTime
	opts.Logger.Info("built network",
		"valves", n.NodeCount(),
		"tunnels", n.EdgeCount(),
		"entry", opts.Entry,
		"duration", buildTime)

	data, err := graph.MarshalGraph(n)
	if err != nil {
		return nil, "", fmt.Errorf("encode network: %w", err)
	}
	r.store(ctx, key, data, cache.TTLNetwork, observability.KindNetwork, opts)
	return n, cache.Hash(data), nil
}

func (r *Runner) solve(ctx context.Context, n *network.Network, hash string, opts Options, result *Result) (*Solution, error) {
	key := r.Keyer.ResultKey(hash, cache.ResultKeyOpts{Budget: opts.Budget, Top: opts.Top})

	if data, ok := r.lookup(ctx, key, observability.KindResult, opts); ok {
		var sol Solution
		if err := json.Unmarshal(data, &sol); err == nil {
			result.CacheInfo.ResultHit = true
			opts.Logger.Debug("solution from cache", "score", sol.Score)
			return &sol, nil
		}
	}

	set, genTime, err := Generate(ctx, n, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Stats.GenerateTime = genTime
	opts.Logger.Info("generated candidates",
		"useful", len(set.Useful),
		"candidates", set.Len(),
		"skipped", len(set.Skipped),
		"duration", genTime)

	sol, scoreTime, err := Score(ctx, set, opts)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	result.Stats.ScoreTime = scoreTime
	opts.Logger.Info("scored candidates",
		"best", sol.Score,
		"workers", opts.Workers,
		"duration", scoreTime)

	if data, err := json.Marshal(sol); err == nil {
		r.store(ctx, key, data, cache.TTLResult, observability.KindResult, opts)
	}
	return sol, nil
}

// lookup reads key unless opts.Refresh is set. Cache failures count as misses.
func (r *Runner) lookup(ctx context.Context, key, kind string, opts Options) ([]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Debug("cache read failed", "kind", kind, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, kind)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, kind)
	return data, true
}

func (r *Runner) store(ctx context.Context, key string, data []byte, ttl time.Duration, kind string, opts Options) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		opts.Logger.Warn("cache write failed", "kind", kind, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
