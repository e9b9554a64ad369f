package valve

import "slices"

// Record is the mutable staging form of a valve used while parsing.
//
// A Record is created on first mention, either as the subject of a line or as
// a tunnel target, and is filled in as more lines are read. Convert it with
// [Record.Valve] once parsing is finished.
type Record struct {
	ID string

	rate    int
	rateSet bool
	tunnels []string
	seen    map[string]struct{}
}

func newRecord(id string) *Record {
	return &Record{ID: id, seen: make(map[string]struct{})}
}

// Rate returns the assigned flow rate and whether one was assigned.
func (r *Record) Rate() (int, bool) { return r.rate, r.rateSet }

// Tunnels returns the IDs this valve leads to, in first-listed order.
func (r *Record) Tunnels() []string { return slices.Clone(r.tunnels) }

// Valve converts the record into an immutable [Valve].
// It fails with [UnsetRateError] if no line ever assigned the rate.
func (r *Record) Valve() (Valve, error) {
	if !r.rateSet {
		return Valve{}, &UnsetRateError{ID: r.ID}
	}
	return Valve{ID: r.ID, Rate: r.rate}, nil
}

func (r *Record) addTunnel(to string) {
	if _, dup := r.seen[to]; dup {
		return
	}
	r.seen[to] = struct{}{}
	r.tunnels = append(r.tunnels, to)
}
