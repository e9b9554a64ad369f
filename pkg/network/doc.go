// Package network provides the immutable directed valve graph.
//
// # Overview
//
// A [Network] holds every valve from the parsed records as a node and every
// tunnel as a directed edge. Exactly one node is marked as the entry, the
// valve every walk starts at ("AA" by convention, see [DefaultEntry]).
//
// # Building
//
// [Build] consumes the records produced by package valve:
//
//	p := valve.NewParser()
//	_ = p.Parse(ctx, r)
//	n, err := network.Build(p.Records(), network.DefaultEntry)
//
// Build fails fast: a valve without a rate or a missing entry aborts it.
// [New] builds from converted valves and edges and is used by decoders.
//
// # Shortest Paths
//
// Tunnels are unweighted, so shortest paths come from breadth-first search.
// [Network.BFS] returns a [Tree] that answers [Tree.PathTo] for every valve
// reached from its root. Expansion follows edge insertion order, which makes
// tie-breaking between equally short paths deterministic.
//
// # Concurrency
//
// A Network is never mutated after construction and can be read from any
// number of goroutines.
package network
