// Package graph provides the JSON wire format for valve networks.
//
// The format is used by the parse command, the HTTP API and the cache:
//
//	{
//	  "entry": "AA",
//	  "nodes": [{"id": "AA", "rate": 0, "entry": true}, {"id": "BB", "rate": 13}],
//	  "edges": [{"from": "AA", "to": "BB"}, {"from": "BB", "to": "AA"}]
//	}
//
// Nodes and edges are written in network insertion order. That order drives
// tie-breaking in shortest-path search, so a decoded network yields the same
// candidates as the original.
//
// Use [FromNetwork]/[ToNetwork] to convert between [Graph] and
// network.Network, or the Marshal/Read/Write helpers for bytes, streams and
// files.
package graph
