package score

import (
	"github.com/matzehuels/valvepath/pkg/route"
	"github.com/matzehuels/valvepath/pkg/valve"
)

// DefaultBudget is the number of minutes a walk may spend.
const DefaultBudget = 30

// Opening is one valve opened during a simulated walk.
type Opening struct {
	Valve     valve.Valve `json:"valve"`
	Position  int         `json:"position"`  // Index in the path
	Remaining int         `json:"remaining"` // Minutes left once open; may be negative
	Released  int         `json:"released"`  // Rate * Remaining
}

// Trace is the full accounting of a simulated walk.
type Trace struct {
	Score    int       `json:"score"`
	Openings []Opening `json:"openings"`
	Visited  int       `json:"visited"` // Path positions processed before the budget ran out
}

// Simulate returns the pressure released by walking path within budget.
//
// The walk starts on path[0]. Every later position costs one minute to step
// onto, and accounting stops as soon as a step leaves no time. A valve with
// a positive rate that has not appeared earlier in the path is then opened
// for one more minute and releases rate times the minutes left afterwards.
// That product is added even when it is zero or negative.
//
// Simulate is pure and safe for concurrent use.
func Simulate(path route.Path, budget int) int {
	total, _ := walk(path, budget, nil)
	return total
}

// TraceWalk runs the same accounting as [Simulate] and records every opening.
func TraceWalk(path route.Path, budget int) Trace {
	var t Trace
	t.Score, t.Visited = walk(path, budget, func(o Opening) {
		t.Openings = append(t.Openings, o)
	})
	return t
}

func walk(path route.Path, budget int, onOpen func(Opening)) (total, visited int) {
	remaining := budget
	for i, v := range path {
		if i > 0 {
			remaining--
			if remaining <= 0 {
				break
			}
		}
		visited = i + 1
		if !v.Useful() || seenBefore(path, i) {
			continue
		}
		remaining--
		released := v.Rate * remaining
		total += released
		if onOpen != nil {
			onOpen(Opening{Valve: v, Position: i, Remaining: remaining, Released: released})
		}
	}
	return total, visited
}

func seenBefore(path route.Path, i int) bool {
	for _, p := range path[:i] {
		if p.Equal(path[i]) {
			return true
		}
	}
	return false
}
