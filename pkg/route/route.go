package route

import (
	"fmt"
	"slices"
	"strings"

	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/valve"
)

// Path is an ordered walk through the network starting at the entry valve.
type Path []valve.Valve

// String returns the valve IDs joined by " -> ".
func (p Path) String() string {
	return strings.Join(valve.IDs(p), " -> ")
}

// IDs returns the valve identifiers along the path.
func (p Path) IDs() []string { return valve.IDs(p) }

// Candidate is the walk entry → From → To, built once per ordered pair of
// useful valves and never mutated afterwards.
type Candidate struct {
	From valve.Valve // First waypoint
	To   valve.Valve // Second waypoint
	Path Path        // Full walk, starting at the entry
}

// String returns "From->To: path".
func (c Candidate) String() string {
	return fmt.Sprintf("%s->%s: %s", c.From.ID, c.To.ID, c.Path)
}

// UnreachableError names the missing leg of a skipped pair: either
// entry → x or x → y. Generation records it and continues with the
// remaining pairs.
type UnreachableError struct {
	From string
	To   string
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("no path from %s to %s", e.From, e.To)
}

// Code classifies the error for pkg/errors.
func (e *UnreachableError) Code() pkgerrors.Code { return pkgerrors.ErrCodeUnreachable }

// Useful returns the valves of n with a positive flow rate, highest rate
// first. Valves with equal rates keep their first-mention order.
func Useful(n *network.Network) []valve.Valve {
	var out []valve.Valve
	for _, v := range n.Valves() {
		if v.Useful() {
			out = append(out, v)
		}
	}
	slices.SortStableFunc(out, func(a, b valve.Valve) int {
		return valve.CompareRate(b, a)
	})
	return out
}
