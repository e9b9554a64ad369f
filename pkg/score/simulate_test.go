package score_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/valvepath/pkg/route"
	"github.com/matzehuels/valvepath/pkg/score"
	"github.com/matzehuels/valvepath/pkg/valve"
)

var (
	aa = valve.Valve{ID: "AA"}
	bb = valve.Valve{ID: "BB", Rate: 13}
	cc = valve.Valve{ID: "CC"}
	dd = valve.Valve{ID: "DD", Rate: 5}
)

func TestSimulate(t *testing.T) {
	tests := []struct {
		name   string
		path   route.Path
		budget int
		want   int
	}{
		{"entry only", route.Path{aa}, 30, 0},
		{"single opening", route.Path{aa, bb}, 30, 13 * 28},
		{"zero rate neighbour", route.Path{aa, bb, cc}, 30, 13 * 28},
		{"two openings", route.Path{aa, bb, cc, dd}, 30, 13*28 + 5*25},
		{"revisit not counted", route.Path{aa, bb, aa, bb}, 30, 13 * 28},
		{"opening leaves no time", route.Path{aa, bb}, 2, 0},
		{"step exhausts budget", route.Path{aa, cc, bb}, 2, 0},
		{"useful entry is opened", route.Path{dd, bb}, 30, 5*29 + 13*27},
		{"empty path", nil, 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, score.Simulate(tt.path, tt.budget))
		})
	}
}

func TestSimulateBeyondBudget(t *testing.T) {
	path := route.Path{aa}
	for i := 0; i < 35; i++ {
		path = append(path, cc)
	}
	path = append(path, bb)

	assert.Zero(t, score.Simulate(path, score.DefaultBudget))

	trace := score.TraceWalk(path, score.DefaultBudget)
	assert.Empty(t, trace.Openings)
	assert.Equal(t, score.DefaultBudget, trace.Visited)
}

func TestSimulateStartIsFree(t *testing.T) {
	trace := score.TraceWalk(route.Path{dd}, 30)

	require.Len(t, trace.Openings, 1)
	assert.Equal(t, 0, trace.Openings[0].Position)
	assert.Equal(t, 29, trace.Openings[0].Remaining)
	assert.Equal(t, 5*29, trace.Score)
}

func TestSimulateOpeningCost(t *testing.T) {
	// DD comes after a valve that is opened in one path and merely passed in
	// the other. Opening takes one minute on top of the step.
	opened := score.TraceWalk(route.Path{aa, bb, dd}, 30)
	passed := score.TraceWalk(route.Path{aa, cc, dd}, 30)

	last := func(tr score.Trace) score.Opening { return tr.Openings[len(tr.Openings)-1] }
	assert.Equal(t, 26, last(opened).Remaining)
	assert.Equal(t, 27, last(passed).Remaining)
}

func TestTraceWalk(t *testing.T) {
	trace := score.TraceWalk(route.Path{aa, bb, cc, dd}, 30)

	assert.Equal(t, score.Simulate(route.Path{aa, bb, cc, dd}, 30), trace.Score)
	assert.Equal(t, 4, trace.Visited)
	assert.Equal(t, []score.Opening{
		{Valve: bb, Position: 1, Remaining: 28, Released: 364},
		{Valve: dd, Position: 3, Remaining: 25, Released: 125},
	}, trace.Openings)
}

func TestSimulateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	toPath := func(ids []uint8, rates []uint8) route.Path {
		path := make(route.Path, len(ids))
		for i, id := range ids {
			// Rates are keyed by ID so repeated valves agree.
			path[i] = valve.Valve{ID: string(rune('A' + id%8)), Rate: int(rates[id%8])}
		}
		return path
	}
	pathGen := gen.SliceOf(gen.UInt8())
	ratesGen := gen.SliceOfN(8, gen.UInt8Range(0, 30))
	budgetGen := gen.IntRange(1, 60)

	properties.Property("simulate is pure", prop.ForAll(
		func(ids, rates []uint8, budget int) bool {
			path := toPath(ids, rates)
			return score.Simulate(path, budget) == score.Simulate(path, budget)
		},
		pathGen, ratesGen, budgetGen,
	))

	properties.Property("score is never negative with a positive budget", prop.ForAll(
		func(ids, rates []uint8, budget int) bool {
			return score.Simulate(toPath(ids, rates), budget) >= 0
		},
		pathGen, ratesGen, budgetGen,
	))

	properties.Property("trace agrees with simulate", prop.ForAll(
		func(ids, rates []uint8, budget int) bool {
			path := toPath(ids, rates)
			trace := score.TraceWalk(path, budget)
			sum := 0
			for _, o := range trace.Openings {
				sum += o.Released
			}
			return trace.Score == score.Simulate(path, budget) && sum == trace.Score
		},
		pathGen, ratesGen, budgetGen,
	))

	properties.Property("appending a revisit never changes the score", prop.ForAll(
		func(ids, rates []uint8, budget int) bool {
			path := toPath(ids, rates)
			if len(path) == 0 {
				return true
			}
			longer := append(path[:len(path):len(path)], path[0])
			return score.Simulate(longer, budget) == score.Simulate(path, budget)
		},
		pathGen, ratesGen, budgetGen,
	))

	properties.TestingRun(t)
}
