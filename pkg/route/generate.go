package route

import (
	"context"
	"fmt"

	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/valve"
)

// Set is the output of [Generate].
type Set struct {
	Candidates []Candidate         // In pair order: x by Useful order, then y
	Skipped    []*UnreachableError // Pairs with a missing leg
	Useful     []valve.Valve       // Waypoint valves considered
}

// Len returns the number of candidates.
func (s *Set) Len() int { return len(s.Candidates) }

// Generate builds one candidate for every ordered pair (x, y) of distinct
// useful valves. The path is the shortest path entry → x without its last
// valve, followed by the shortest path x → y.
//
// A pair with a missing leg is recorded in Set.Skipped rather than failing
// the call. With every pair reachable the set holds exactly k·(k-1)
// candidates for k useful valves. The only errors returned come from ctx.
func Generate(ctx context.Context, n *network.Network) (*Set, error) {
	useful := Useful(n)
	set := &Set{Useful: useful}
	if len(useful) < 2 {
		return set, nil
	}

	entry := n.Entry().ID
	trees := make(map[string]*network.Tree, len(useful)+1)
	tree := func(root string) (*network.Tree, error) {
		if t, ok := trees[root]; ok {
			return t, nil
		}
		t, err := n.BFS(ctx, root)
		if err != nil {
			return nil, err
		}
		trees[root] = t
		return t, nil
	}

	entryTree, err := tree(entry)
	if err != nil {
		return nil, fmt.Errorf("search from %s: %w", entry, err)
	}

	for _, x := range useful {
		head, headErr := entryTree.PathTo(x.ID)
		xTree, err := tree(x.ID)
		if err != nil {
			return nil, fmt.Errorf("search from %s: %w", x.ID, err)
		}
		for _, y := range useful {
			if x.Equal(y) {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if headErr != nil {
				set.Skipped = append(set.Skipped, &UnreachableError{From: entry, To: x.ID})
				continue
			}
			tail, tailErr := xTree.PathTo(y.ID)
			if tailErr != nil {
				set.Skipped = append(set.Skipped, &UnreachableError{From: x.ID, To: y.ID})
				continue
			}
			ids := make([]string, 0, len(head)-1+len(tail))
			ids = append(ids, head[:len(head)-1]...)
			ids = append(ids, tail...)
			set.Candidates = append(set.Candidates, Candidate{
				From: x,
				To:   y,
				Path: Path(n.Resolve(ids)),
			})
		}
	}
	return set, nil
}
