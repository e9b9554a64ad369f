package network_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/valve"
)

func TestShortestPath(t *testing.T) {
	n := mustBuild(t, sampleInput)
	ctx := context.Background()

	tests := []struct {
		from, to string
		want     []string
	}{
		{"AA", "AA", []string{"AA"}},
		{"AA", "BB", []string{"AA", "BB"}},
		{"AA", "HH", []string{"AA", "DD", "EE", "FF", "GG", "HH"}},
		{"JJ", "BB", []string{"JJ", "II", "AA", "BB"}},
		// DD and BB both reach CC in one hop from AA's neighbours; DD is listed first.
		{"AA", "CC", []string{"AA", "DD", "CC"}},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			path, err := n.ShortestPath(ctx, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, valve.IDs(path))
		})
	}
}

func TestShortestPathFollowsTunnelOrder(t *testing.T) {
	n := mustBuild(t, `Valve AA has flow rate=0; tunnels lead to valves ZZ, BB
Valve ZZ has flow rate=0; tunnel leads to valve CC
Valve BB has flow rate=0; tunnel leads to valve CC
Valve CC has flow rate=5; tunnel leads to valve AA
`)
	path, err := n.ShortestPath(context.Background(), "AA", "CC")
	require.NoError(t, err)
	// ZZ is listed before BB, so it wins the tie despite sorting after it.
	assert.Equal(t, []string{"AA", "ZZ", "CC"}, valve.IDs(path))
}

func TestShortestPathDeterministic(t *testing.T) {
	n := mustBuild(t, sampleInput)
	ctx := context.Background()

	first, err := n.ShortestPath(ctx, "HH", "JJ")
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := n.ShortestPath(ctx, "HH", "JJ")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	n := mustBuild(t, `Valve AA has flow rate=0; tunnel leads to valve BB
Valve BB has flow rate=13; tunnel leads to valve BB
Valve CC has flow rate=4; tunnel leads to valve AA
`)
	_, err := n.ShortestPath(context.Background(), "AA", "CC")
	assert.ErrorIs(t, err, network.ErrNoPath)

	_, err = n.ShortestPath(context.Background(), "QQ", "AA")
	assert.ErrorIs(t, err, network.ErrUnknownValve)
}

func TestBFSTree(t *testing.T) {
	n := mustBuild(t, sampleInput)

	tree, err := n.BFS(context.Background(), "AA")
	require.NoError(t, err)
	assert.Equal(t, "AA", tree.Order[0])
	assert.Len(t, tree.Order, n.NodeCount())
	assert.Equal(t, 5, tree.Depth["HH"])
	assert.Equal(t, 2, tree.Depth["JJ"])
	_, hasParent := tree.Parent["AA"]
	assert.False(t, hasParent)
}

func TestBFSCancelled(t *testing.T) {
	n := mustBuild(t, sampleInput)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := n.BFS(ctx, "AA")
	assert.ErrorIs(t, err, context.Canceled)
}
