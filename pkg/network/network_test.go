package network_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/matzehuels/valvepath/pkg/errors"
	"github.com/matzehuels/valvepath/pkg/network"
	"github.com/matzehuels/valvepath/pkg/valve"
)

const sampleInput = `Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
Valve BB has flow rate=13; tunnels lead to valves CC, AA
Valve CC has flow rate=2; tunnels lead to valves DD, BB
Valve DD has flow rate=20; tunnels lead to valves CC, AA, EE
Valve EE has flow rate=3; tunnels lead to valves FF, DD
Valve FF has flow rate=0; tunnels lead to valves EE, GG
Valve GG has flow rate=0; tunnels lead to valves FF, HH
Valve HH has flow rate=22; tunnel leads to valve GG
Valve II has flow rate=0; tunnels lead to valves AA, JJ
Valve JJ has flow rate=21; tunnel leads to valve II
`

func build(t *testing.T, input, entry string) (*network.Network, error) {
	t.Helper()
	records, err := valve.Read(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	return network.Build(records, entry)
}

func mustBuild(t *testing.T, input string) *network.Network {
	t.Helper()
	n, err := build(t, input, network.DefaultEntry)
	require.NoError(t, err)
	return n
}

func TestBuild(t *testing.T) {
	n := mustBuild(t, sampleInput)

	assert.Equal(t, 10, n.NodeCount())
	assert.Equal(t, 20, n.EdgeCount())
	assert.Equal(t, valve.Valve{ID: "AA", Rate: 0}, n.Entry())
	assert.Equal(t, []string{"DD", "II", "BB"}, n.Neighbors("AA"))
	assert.ElementsMatch(t, []string{"AA", "CC"}, n.Predecessors("BB"))
	assert.True(t, n.HasEdge("HH", "GG"))
	assert.False(t, n.HasEdge("GG", "AA"))

	for _, v := range n.Valves() {
		assert.GreaterOrEqual(t, v.Rate, 0, "valve %s", v.ID)
	}
}

func TestBuildEdgesAreDirected(t *testing.T) {
	n := mustBuild(t, `Valve AA has flow rate=0; tunnel leads to valve BB
Valve BB has flow rate=13; tunnel leads to valve CC
Valve CC has flow rate=0; tunnel leads to valve CC
`)
	assert.True(t, n.HasEdge("AA", "BB"))
	assert.False(t, n.HasEdge("BB", "AA"))
	assert.Equal(t, 3, n.EdgeCount())
}

func TestBuildMissingEntry(t *testing.T) {
	_, err := build(t, "Valve BB has flow rate=1; tunnel leads to valve BB\n", "AA")

	var me *network.MissingEntryError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "AA", me.ID)
	assert.True(t, pkgerrors.Is(err, pkgerrors.ErrCodeMissingEntry))
}

func TestBuildCustomEntry(t *testing.T) {
	n, err := build(t, sampleInput, "JJ")
	require.NoError(t, err)
	assert.Equal(t, "JJ", n.Entry().ID)
}

func TestBuildUndescribedValve(t *testing.T) {
	_, err := build(t, "Valve AA has flow rate=0; tunnel leads to valve ZZ\n", "AA")

	var ue *valve.UnsetRateError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "ZZ", ue.ID)
}

func TestNew(t *testing.T) {
	valves := []valve.Valve{{ID: "AA"}, {ID: "BB", Rate: 5}}

	n, err := network.New(valves, []network.Edge{{From: "AA", To: "BB"}}, "AA")
	require.NoError(t, err)
	assert.Equal(t, 1, n.EdgeCount())

	_, err = network.New(valves, []network.Edge{{From: "AA", To: "CC"}}, "AA")
	assert.ErrorIs(t, err, network.ErrUnknownTargetValve)

	_, err = network.New(valves, []network.Edge{{From: "CC", To: "AA"}}, "AA")
	assert.ErrorIs(t, err, network.ErrUnknownSourceValve)

	_, err = network.New(append(valves, valve.Valve{ID: "AA"}), nil, "AA")
	assert.ErrorIs(t, err, network.ErrDuplicateValve)

	_, err = network.New([]valve.Valve{{ID: ""}}, nil, "AA")
	assert.ErrorIs(t, err, network.ErrInvalidValveID)
}

func TestAccessorsReturnCopies(t *testing.T) {
	n := mustBuild(t, sampleInput)

	nb := n.Neighbors("AA")
	nb[0] = "XX"
	assert.Equal(t, "DD", n.Neighbors("AA")[0])

	vs := n.Valves()
	vs[0].Rate = 99
	v, _ := n.Valve(vs[0].ID)
	assert.Equal(t, 0, v.Rate)

	es := n.Edges()
	es[0].To = "XX"
	assert.Equal(t, "DD", n.Edges()[0].To)
}
