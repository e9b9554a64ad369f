package graph

import (
	"fmt"

	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/valve"
)

// =============================================================================
// Graph - Valve Network Serialization
// =============================================================================

// Graph is the canonical serialization format for valve networks.
// Used for the parse command, API responses, and caching.
//
// Nodes and edges keep the network's insertion order, so a decoded graph
// produces the same shortest paths as the network it was encoded from.
type Graph struct {
	Entry string `json:"entry"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one valve.
type Node struct {
	ID    string `json:"id"`
	Rate  int    `json:"rate"`
	Entry bool   `json:"entry,omitempty"`
}

// Edge represents a directed tunnel.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// Network ↔ Graph Conversion
// =============================================================================

// FromNetwork converts a network to its serialization format.
func FromNetwork(n *network.Network) Graph {
	entry := n.Entry().ID
	valves := n.Valves()
	edges := n.Edges()

	out := Graph{
		Entry: entry,
		Nodes: make([]Node, len(valves)),
		Edges: make([]Edge, len(edges)),
	}
	for i, v := range valves {
		out.Nodes[i] = Node{ID: v.ID, Rate: v.Rate, Entry: v.ID == entry}
	}
	for i, e := range edges {
		out.Edges[i] = Edge{From: e.From, To: e.To}
	}
	return out
}

// ToNetwork converts the serialization format back to a network.
// Returns an error for negative rates, an entry flag that disagrees with
// Entry, or any structural problem reported by [network.New].
func ToNetwork(g Graph) (*network.Network, error) {
	valves := make([]valve.Valve, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.Rate < 0 {
			return nil, fmt.Errorf("node %s: negative rate %d", n.ID, n.Rate)
		}
		if n.Entry && n.ID != g.Entry {
			return nil, fmt.Errorf("node %s: marked as entry but entry is %q", n.ID, g.Entry)
		}
		valves[i] = valve.Valve{ID: n.ID, Rate: n.Rate}
	}
	edges := make([]network.Edge, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = network.Edge{From: e.From, To: e.To}
	}
	return network.New(valves, edges, g.Entry)
}
