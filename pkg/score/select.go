package score

import (
	"cmp"
	"context"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
	"github.com/matzehuels/valvepath/pkg/route"
)

// NoCandidatesError is returned when there is nothing to evaluate.
// It is always fatal: without a candidate there is no answer.
type NoCandidatesError struct {
	Skipped int // Pairs dropped during generation, if known
}

func (e *NoCandidatesError) Error() string {
	if e.Skipped > 0 {
		return fmt.Sprintf("no candidate paths to evaluate (%d pairs unreachable)", e.Skipped)
	}
	return "no candidate paths to evaluate"
}

// Code classifies the error for pkg/errors.
func (e *NoCandidatesError) Code() pkgerrors.Code { return pkgerrors.ErrCodeNoCandidates }

// Options configures candidate evaluation.
type Options struct {
	// Budget is the number of minutes per walk. Zero means DefaultBudget.
	Budget int

	// Workers bounds parallel evaluation. Zero means runtime.GOMAXPROCS(0).
	Workers int
}

func (o Options) withDefaults() Options {
	if o.Budget <= 0 {
		o.Budget = DefaultBudget
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Scored is a candidate together with its score.
type Scored struct {
	Index     int             `json:"index"` // Position in the evaluated slice
	Candidate route.Candidate `json:"-"`
	Score     int             `json:"score"`
}

// Best evaluates every candidate and returns the highest-scoring one.
// Among equal scores the candidate with the lowest index wins, so the result
// does not depend on scheduling.
//
// Returns [NoCandidatesError] for an empty slice and ctx.Err() if the
// context is cancelled before evaluation completes.
func Best(ctx context.Context, candidates []route.Candidate, opts Options) (Scored, error) {
	scores, err := evaluate(ctx, candidates, opts)
	if err != nil {
		return Scored{}, err
	}
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return Scored{Index: best, Candidate: candidates[best], Score: scores[best]}, nil
}

// Rank evaluates every candidate and returns up to limit of them, best
// first, ordered like [Best]. A limit of zero or less returns all of them.
func Rank(ctx context.Context, candidates []route.Candidate, opts Options, limit int) ([]Scored, error) {
	scores, err := evaluate(ctx, candidates, opts)
	if err != nil {
		return nil, err
	}
	ranked := make([]Scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = Scored{Index: i, Candidate: c, Score: scores[i]}
	}
	slices.SortFunc(ranked, func(a, b Scored) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Index, b.Index)
	})
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// evaluate scores candidates in parallel. Each worker owns a contiguous
// chunk and writes only its own slots.
func evaluate(ctx context.Context, candidates []route.Candidate, opts Options) ([]int, error) {
	if len(candidates) == 0 {
		return nil, &NoCandidatesError{}
	}
	opts = opts.withDefaults()

	scores := make([]int, len(candidates))
	workers := min(opts.Workers, len(candidates))
	chunk := (len(candidates) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(candidates); start += chunk {
		end := min(start+chunk, len(candidates))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				scores[i] = Simulate(candidates[i].Path, opts.Budget)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
