package valve

import (
	"cmp"
	"fmt"
)

// Valve is an immutable valve identity with its flow rate.
//
// Two valves are the same valve iff their IDs match; use [Valve.Equal] rather
// than == when a rate may differ between snapshots. Ranking helpers order by
// rate only (see [CompareRate]).
type Valve struct {
	ID   string `json:"id"`   // Unique identifier from the record stream
	Rate int    `json:"rate"` // Pressure released per remaining minute once opened
}

// Equal reports whether v and o name the same valve.
func (v Valve) Equal(o Valve) bool { return v.ID == o.ID }

// Useful reports whether opening the valve releases any pressure.
func (v Valve) Useful() bool { return v.Rate > 0 }

// String returns "ID(rate)".
func (v Valve) String() string { return fmt.Sprintf("%s(%d)", v.ID, v.Rate) }

// CompareRate orders valves by flow rate alone, ignoring identity.
// It is suitable for [slices.SortStableFunc]; ties keep their input order.
func CompareRate(a, b Valve) int { return cmp.Compare(a.Rate, b.Rate) }

// IDs extracts the identifiers of vs in order.
func IDs(vs []Valve) []string {
	ids := make([]string, len(vs))
	for i, v := range vs {
		ids[i] = v.ID
	}
	return ids
}
