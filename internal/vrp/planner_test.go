package vrp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestGraph() (*Graph, *Node, *Node, *Node) {
	nodes := []*Node{
		{ID: 0, X: 0, Y: 0, Close: math.Inf(1)},
		{ID: 1, X: 10, Y: 0, Close: math.Inf(1), Demand: 1},
		{ID: 2, X: 20, Y: 0, Close: math.Inf(1), Demand: 1},
	}
	g := BuildGraph(nodes, 0.1)
	for _, n := range g.Nodes {
		r := NewRoute([]*Edge{n.DepotOut, n.DepotIn})
		r.Evaluate()
	}
	return g, g.Depot, g.Nodes[0], g.Nodes[1]
}

func TestPrepareMergesFeasiblePair(t *testing.T) {
	g, _, a, b := buildTestGraph()
	medge := g.Savings[0]

	feasible, bridge, froute, sroute := Prepare(medge, a.Route, b.Route, 1000, 1000)
	require.True(t, feasible)
	require.NotNil(t, bridge)
	assert.Equal(t, bridge.Origin, froute.LastCustomer())
	assert.Equal(t, bridge.End, sroute.FirstCustomer())
}

func TestPrepareRejectsSameRoute(t *testing.T) {
	g, _, a, _ := buildTestGraph()
	medge := g.Savings[0]

	feasible, _, _, _ := Prepare(medge, a.Route, a.Route, 1000, 1000)
	assert.False(t, feasible)
}

func TestPrepareRejectsInteriorNode(t *testing.T) {
	g, _, a, b := buildTestGraph()
	medge := g.Savings[0]
	a.Interior = true

	feasible, _, _, _ := Prepare(medge, a.Route, b.Route, 1000, 1000)
	assert.False(t, feasible)
}

func TestPrepareRejectsOverTravelTimeCeiling(t *testing.T) {
	g, _, a, b := buildTestGraph()
	medge := g.Savings[0]

	feasible, _, _, _ := Prepare(medge, a.Route, b.Route, 1000, 1)
	assert.False(t, feasible)
}

func TestPrepareRejectsOverGammaBothDirections(t *testing.T) {
	nodes := []*Node{
		{ID: 0, X: 0, Y: 0, Close: math.Inf(1)},
		{ID: 1, X: 10, Y: 0, Close: 1, Demand: 1},
		{ID: 2, X: 20, Y: 0, Close: 1, Demand: 1},
	}
	g := BuildGraph(nodes, 0.1)
	for _, n := range g.Nodes {
		r := NewRoute([]*Edge{n.DepotOut, n.DepotIn})
		r.Evaluate()
	}
	medge := g.Savings[0]
	a, b := g.Nodes[0], g.Nodes[1]

	feasible, _, _, _ := Prepare(medge, a.Route, b.Route, 0, 1000)
	assert.False(t, feasible)
}
