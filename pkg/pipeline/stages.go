package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/observability"
	"github.com/matzehuels/valvepath/pkg/route"
	"github.com/matzehuels/valvepath/pkg/score"
	"github.com/matzehuels/valvepath/pkg/valve"
)

// runStage reports start and completion of one stage to the pipeline hooks.
func runStage(ctx context.Context, stage string, fn func() (int, error)) (time.Duration, error) {
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, stage)
	start := time.Now()
	items, err := fn()
	d := time.Since(start)
	hooks.OnStageComplete(ctx, stage, items, d, err)
	return d, err
}

// Parse reads valve records from input.
func Parse(ctx context.Context, input []byte) ([]*valve.Record, time.Duration, error) {
	var records []*valve.Record
	d, err := runStage(ctx, observability.StageParse, func() (int, error) {
		var err error
		records, err = valve.Read(ctx, bytes.NewReader(input))
		return len(records), err
	})
	return records, d, err
}

// Build assembles records into a network with the given entry.
func Build(ctx context.Context, records []*valve.Record, entry string) (*network.Network, time.Duration, error) {
	var n *network.Network
	d, err := runStage(ctx, observability.StageBuild, func() (int, error) {
		var err error
		n, err = network.Build(records, entry)
		if err != nil {
			return 0, err
		}
		return n.NodeCount(), nil
	})
	return n, d, err
}

// Generate composes candidate walks. Skipped pairs are logged at warn and
// reported to the pipeline hooks; they never fail the stage.
func Generate(ctx context.Context, n *network.Network, logger *log.Logger) (*route.Set, time.Duration, error) {
	var set *route.Set
	d, err := runStage(ctx, observability.StageGenerate, func() (int, error) {
		var err error
		set, err = route.Generate(ctx, n)
		if err != nil {
			return 0, err
		}
		return set.Len(), nil
	})
	if err != nil {
		return nil, d, err
	}
	hooks := observability.Pipeline()
	for _, s := range set.Skipped {
		logger.Warn("skipping unreachable pair", "from", s.From, "to", s.To)
		hooks.OnUnreachable(ctx, s.From, s.To)
	}
	return set, d, nil
}

// Score evaluates the candidates in set and builds the [Solution].
// opts must already be validated.
func Score(ctx context.Context, set *route.Set, opts Options) (*Solution, time.Duration, error) {
	var sol *Solution
	d, err := runStage(ctx, observability.StageScore, func() (int, error) {
		if set.Len() == 0 {
			return 0, &score.NoCandidatesError{Skipped: len(set.Skipped)}
		}
		ranked, err := score.Rank(ctx, set.Candidates, opts.ScoreOptions(), max(opts.Top, 1))
		if err != nil {
			return 0, err
		}
		sol = newSolution(set, ranked, opts)
		return set.Len(), nil
	})
	return sol, d, err
}

func newSolution(set *route.Set, ranked []score.Scored, opts Options) *Solution {
	best := ranked[0]
	trace := score.TraceWalk(best.Candidate.Path, opts.Budget)

	sol := &Solution{
		Score:      best.Score,
		Best:       toRanked(best),
		Openings:   trace.Openings,
		Useful:     set.Useful,
		Candidates: set.Len(),
		Budget:     opts.Budget,
	}
	if opts.Top > 0 {
		sol.Ranked = make([]Ranked, len(ranked))
		for i, s := range ranked {
			sol.Ranked[i] = toRanked(s)
		}
	}
	for _, s := range set.Skipped {
		sol.Skipped = append(sol.Skipped, Pair{From: s.From, To: s.To})
	}
	return sol
}

func toRanked(s score.Scored) Ranked {
	return Ranked{
		Index: s.Index,
		From:  s.Candidate.From.ID,
		To:    s.Candidate.To.ID,
		Path:  s.Candidate.Path.IDs(),
		Score: s.Score,
	}
}

// BestPath resolves the best candidate's path against n.
func (s *Solution) BestPath(n *network.Network) route.Path {
	return route.Path(n.Resolve(s.Best.Path))
}

// String returns a one-line summary.
func (s *Solution) String() string {
	return fmt.Sprintf("%d via %s->%s", s.Score, s.Best.From, s.Best.To)
}
