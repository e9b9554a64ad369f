package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/valvepath/pkg/network"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a network to JSON bytes.
// Output is deterministic for a given network.
func MarshalGraph(n *network.Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(n, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes a network to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(n *network.Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(n, f)
}

// WriteGraph writes a network as JSON to an io.Writer.
func WriteGraph(n *network.Network, w io.Writer) error {
	return writeGraphTo(n, w)
}

// ReadGraphFile reads a JSON file and returns the decoded network.
func ReadGraphFile(path string) (*network.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// ReadGraph decodes a JSON graph from an io.Reader into a network.
func ReadGraph(r io.Reader) (*network.Network, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(n *network.Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromNetwork(n)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*network.Network, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToNetwork(data)
}
