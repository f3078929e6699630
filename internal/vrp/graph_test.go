package vrp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNodes() []*Node {
	return []*Node{
		{ID: 0, X: 0, Y: 0, Close: math.Inf(1)},
		{ID: 1, X: 10, Y: 0, Close: 1000, Demand: 1},
		{ID: 2, X: 0, Y: 10, Close: 1000, Demand: 2},
		{ID: 3, X: 10, Y: 10, Close: 1000, Demand: 1},
	}
}

func TestBuildGraphDepotArcs(t *testing.T) {
	g := BuildGraph(testNodes(), 0.1)

	require.Len(t, g.Nodes, 3)
	require.Len(t, g.AllNodes, 4)

	for _, n := range g.Nodes {
		require.NotNil(t, n.DepotOut)
		require.NotNil(t, n.DepotIn)
		assert.Equal(t, g.Depot, n.DepotOut.Origin)
		assert.Equal(t, n, n.DepotOut.End)
		assert.Equal(t, n.DepotOut, n.DepotIn.Inverse)
		assert.Equal(t, n.DepotIn, n.DepotOut.Inverse)
		assert.InDelta(t, g.Depot.Distance(n), n.DepotOut.DeterministicTravelTime, 1e-9)
	}
}

func TestBuildGraphSavingsSortedDescending(t *testing.T) {
	g := BuildGraph(testNodes(), 0.1)

	require.Len(t, g.Savings, 3) // C(3,2) unordered pairs among 3 customers

	for i := 1; i < len(g.Savings); i++ {
		assert.GreaterOrEqual(t, g.Savings[i-1].Saving, g.Savings[i].Saving)
	}
}

func TestBuildGraphSavingsValue(t *testing.T) {
	g := BuildGraph(testNodes(), 0.1)

	var ab *Edge
	for _, e := range g.Savings {
		if e.Origin.ID == 1 && e.End.ID == 2 {
			ab = e
		}
	}
	require.NotNil(t, ab)

	n1, n2 := g.Nodes[0], g.Nodes[1]
	want := n1.DepotIn.DeterministicTravelTime + n2.DepotOut.DeterministicTravelTime - n1.Distance(n2)
	assert.InDelta(t, want, ab.Saving, 1e-9)
	assert.InDelta(t, want, ab.Inverse.Saving, 1e-9)
}

func TestGraphResetClearsPerConstructionState(t *testing.T) {
	g := BuildGraph(testNodes(), 0.1)
	for _, n := range g.Nodes {
		n.Route = &Route{}
		n.Interior = true
	}

	g.reset()

	for _, n := range g.Nodes {
		assert.Nil(t, n.Route)
		assert.False(t, n.Interior)
	}
}
