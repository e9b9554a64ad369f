package network

import (
	"context"
	"errors"
	"fmt"

	"github.com/matzehuels/valvepath/pkg/valve"
)

// ErrNoPath is returned when the target cannot be reached from the source.
var ErrNoPath = errors.New("no path")

// Tree is the breadth-first search tree rooted at one valve.
// Depth is the tunnel count of the shortest path from the root.
type Tree struct {
	Root   string
	Order  []string          // valves in visit order
	Depth  map[string]int    // valveID -> distance from Root
	Parent map[string]string // valveID -> predecessor on the shortest path
}

// queueItem pairs a valve ID with its depth.
type queueItem struct {
	id    string
	depth int
}

// walker holds mutable BFS state for one traversal.
type walker struct {
	net   *Network
	ctx   context.Context
	queue []queueItem
	tree  *Tree
}

// BFS runs breadth-first search from root over tunnel edges.
//
// Neighbours are expanded in insertion order and the first discovery of a
// valve fixes its parent, so the tree is the same on every run for a given
// network. Returns ErrUnknownValve if root is not in the network.
func (n *Network) BFS(ctx context.Context, root string) (*Tree, error) {
	if _, ok := n.valves[root]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownValve, root)
	}
	size := len(n.valves)
	w := &walker{
		net:   n,
		ctx:   ctx,
		queue: make([]queueItem, 0, size),
		tree: &Tree{
			Root:   root,
			Order:  make([]string, 0, size),
			Depth:  make(map[string]int, size),
			Parent: make(map[string]string, size),
		},
	}
	w.enqueue(root, 0, "")
	if err := w.loop(); err != nil {
		return nil, err
	}
	return w.tree, nil
}

func (w *walker) enqueue(id string, depth int, parent string) {
	w.tree.Depth[id] = depth
	if parent != "" {
		w.tree.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: depth})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.tree.Order = append(w.tree.Order, item.id)

		for _, next := range w.net.outgoing[item.id] {
			if _, seen := w.tree.Depth[next]; seen {
				continue
			}
			w.enqueue(next, item.depth+1, item.id)
		}
	}
	return nil
}

// Reached reports whether id is reachable from the root.
func (t *Tree) Reached(id string) bool {
	_, ok := t.Depth[id]
	return ok
}

// PathTo reconstructs the shortest path from the root to dest, inclusive
// of both ends. Returns ErrNoPath if dest was not reached.
func (t *Tree) PathTo(dest string) ([]string, error) {
	if !t.Reached(dest) {
		return nil, fmt.Errorf("%w: %s → %s", ErrNoPath, t.Root, dest)
	}
	path := make([]string, 0, t.Depth[dest]+1)
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := t.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// ShortestPath returns the valves on a shortest tunnel path from → to,
// inclusive of both ends. from == to yields a single-valve path.
func (n *Network) ShortestPath(ctx context.Context, from, to string) ([]valve.Valve, error) {
	tree, err := n.BFS(ctx, from)
	if err != nil {
		return nil, err
	}
	ids, err := tree.PathTo(to)
	if err != nil {
		return nil, err
	}
	return n.Resolve(ids), nil
}
