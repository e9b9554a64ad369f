package network

import (
	"errors"
	"fmt"
	"slices"

	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
	"github.com/matzehuels/valvepath/pkg/valve"
)

// DefaultEntry is the conventional identifier of the valve a walk starts at.
const DefaultEntry = "AA"

var (
	// ErrInvalidValveID is returned when a node has an empty identifier.
	ErrInvalidValveID = errors.New("valve ID must not be empty")

	// ErrDuplicateValve is returned when two nodes share an identifier.
	ErrDuplicateValve = errors.New("duplicate valve ID")

	// ErrUnknownSourceValve is returned when an edge starts at a missing node.
	ErrUnknownSourceValve = errors.New("unknown source valve")

	// ErrUnknownTargetValve is returned when an edge ends at a missing node.
	ErrUnknownTargetValve = errors.New("unknown target valve")

	// ErrUnknownValve is returned by traversals asked to start at a missing node.
	ErrUnknownValve = errors.New("unknown valve")
)

// MissingEntryError is returned by [Build] and [New] when no node carries
// the entry identifier. It is always fatal.
type MissingEntryError struct {
	ID string
}

func (e *MissingEntryError) Error() string {
	return fmt.Sprintf("entry valve %q not found in network", e.ID)
}

// Code classifies the error for pkg/errors.
func (e *MissingEntryError) Code() pkgerrors.Code { return pkgerrors.ErrCodeMissingEntry }

// Edge is a directed tunnel between two valves.
type Edge struct {
	From string // Source valve ID
	To   string // Target valve ID
}

// Network is an immutable directed graph of valves with one marked entry.
//
// The zero value is not usable; construct one with [Build] or [New]. After
// construction nothing mutates a Network, so it is safe to share between
// goroutines. Accessors return copies.
type Network struct {
	valves   map[string]valve.Valve
	order    []string            // insertion order, used for determinism
	outgoing map[string][]string // valveID -> tunnel targets
	incoming map[string][]string // valveID -> tunnel sources
	edges    []Edge
	entry    string
}

func newNetwork() *Network {
	return &Network{
		valves:   make(map[string]valve.Valve),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// Build assembles a network from parsed records and marks entryID.
//
// Every record becomes a node, in the given order, and every recorded tunnel
// becomes an edge. A record without a rate fails with [valve.UnsetRateError];
// a missing entry fails with [MissingEntryError].
func Build(records []*valve.Record, entryID string) (*Network, error) {
	n := newNetwork()
	for _, rec := range records {
		v, err := rec.Valve()
		if err != nil {
			return nil, err
		}
		if err := n.addNode(v); err != nil {
			return nil, fmt.Errorf("add valve %s: %w", rec.ID, err)
		}
	}
	for _, rec := range records {
		for _, to := range rec.Tunnels() {
			if err := n.addEdge(Edge{From: rec.ID, To: to}); err != nil {
				return nil, fmt.Errorf("add tunnel %s→%s: %w", rec.ID, to, err)
			}
		}
	}
	if err := n.markEntry(entryID); err != nil {
		return nil, err
	}
	return n, nil
}

// New assembles a network from already-converted valves and edges.
// It is used when decoding serialized networks.
func New(valves []valve.Valve, edges []Edge, entryID string) (*Network, error) {
	n := newNetwork()
	for _, v := range valves {
		if err := n.addNode(v); err != nil {
			return nil, fmt.Errorf("add valve %s: %w", v.ID, err)
		}
	}
	for _, e := range edges {
		if err := n.addEdge(e); err != nil {
			return nil, fmt.Errorf("add tunnel %s→%s: %w", e.From, e.To, err)
		}
	}
	if err := n.markEntry(entryID); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Network) addNode(v valve.Valve) error {
	if v.ID == "" {
		return ErrInvalidValveID
	}
	if _, exists := n.valves[v.ID]; exists {
		return ErrDuplicateValve
	}
	n.valves[v.ID] = v
	n.order = append(n.order, v.ID)
	return nil
}

func (n *Network) addEdge(e Edge) error {
	if _, ok := n.valves[e.From]; !ok {
		return ErrUnknownSourceValve
	}
	if _, ok := n.valves[e.To]; !ok {
		return ErrUnknownTargetValve
	}
	if slices.Contains(n.outgoing[e.From], e.To) {
		return nil
	}
	n.edges = append(n.edges, e)
	n.outgoing[e.From] = append(n.outgoing[e.From], e.To)
	n.incoming[e.To] = append(n.incoming[e.To], e.From)
	return nil
}

func (n *Network) markEntry(id string) error {
	if _, ok := n.valves[id]; !ok {
		return &MissingEntryError{ID: id}
	}
	n.entry = id
	return nil
}

// Entry returns the entry valve.
func (n *Network) Entry() valve.Valve { return n.valves[n.entry] }

// Valve returns the valve with the given ID and true, or false if absent.
func (n *Network) Valve(id string) (valve.Valve, bool) {
	v, ok := n.valves[id]
	return v, ok
}

// Valves returns all valves in insertion (first-mention) order.
func (n *Network) Valves() []valve.Valve {
	out := make([]valve.Valve, len(n.order))
	for i, id := range n.order {
		out[i] = n.valves[id]
	}
	return out
}

// Neighbors returns the IDs reachable through one tunnel from id, in
// insertion order. Returns nil for unknown IDs.
func (n *Network) Neighbors(id string) []string { return slices.Clone(n.outgoing[id]) }

// Predecessors returns the IDs with a tunnel into id.
func (n *Network) Predecessors(id string) []string { return slices.Clone(n.incoming[id]) }

// Edges returns a copy of all edges in insertion order.
func (n *Network) Edges() []Edge { return slices.Clone(n.edges) }

// HasEdge reports whether a tunnel from → to exists.
func (n *Network) HasEdge(from, to string) bool { return slices.Contains(n.outgoing[from], to) }

// NodeCount returns the number of valves.
func (n *Network) NodeCount() int { return len(n.valves) }

// EdgeCount returns the number of tunnels.
func (n *Network) EdgeCount() int { return len(n.edges) }

// Resolve maps IDs to valves. Unknown IDs are skipped.
func (n *Network) Resolve(ids []string) []valve.Valve {
	out := make([]valve.Valve, 0, len(ids))
	for _, id := range ids {
		if v, ok := n.valves[id]; ok {
			out = append(out, v)
		}
	}
	return out
}
