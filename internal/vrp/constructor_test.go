package vrp

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareInstance() []*Node {
	return []*Node{
		{ID: 0, X: 0, Y: 0, Close: math.Inf(1)},
		{ID: 1, X: 10, Y: 0, Close: math.Inf(1), Demand: 1},
		{ID: 2, X: 10, Y: 10, Close: math.Inf(1), Demand: 1},
		{ID: 3, X: 0, Y: 10, Close: math.Inf(1), Demand: 1},
		{ID: 4, X: -10, Y: 0, Close: math.Inf(1), Demand: 1},
	}
}

func TestConstructorBuildCoversEveryCustomerExactlyOnce(t *testing.T) {
	g := BuildGraph(squareInstance(), 0.1)
	c := NewConstructor(g, betaDeterministic, 1000, 1000, 4)
	rng := rand.New(rand.NewSource(1))

	sol, err := c.Build(rng)
	require.NoError(t, err)

	seen := make(map[int64]bool)
	for _, r := range sol.Routes {
		for _, e := range r.Edges {
			if !e.End.IsDepot() {
				assert.False(t, seen[e.End.ID], "customer %d visited twice", e.End.ID)
				seen[e.End.ID] = true
			}
		}
		travelTime, _ := r.Evaluate()
		assert.GreaterOrEqual(t, travelTime, 0.0)
	}
	assert.Len(t, seen, len(g.Nodes))
}

func TestConstructorBuildInfeasibleWhenFleetTooSmall(t *testing.T) {
	g := BuildGraph(squareInstance(), 0.1)
	c := NewConstructor(g, betaDeterministic, -1000, 1000, 1)
	rng := rand.New(rand.NewSource(1))

	_, err := c.Build(rng)
	require.Error(t, err)
}

// TestConstructorBuildMergesCollinearCustomersIntoOneRoute exercises spec.md
// §8 scenario 2: three collinear customers with an unbounded T_max and K=1
// must merge into a single route visiting c1, c2, c3 in order, with
// travel_time=6. This is the scenario that regresses if NewRoute/Reverse/
// Merge ever mark a route's exterior (depot-adjacent) customers as interior,
// since Prepare refuses to merge through an interior endpoint.
func TestConstructorBuildMergesCollinearCustomersIntoOneRoute(t *testing.T) {
	nodes := []*Node{
		{ID: 0, X: 0, Y: 0, Close: math.Inf(1)},
		{ID: 1, X: 1, Y: 0, Close: math.Inf(1), Demand: 1},
		{ID: 2, X: 2, Y: 0, Close: math.Inf(1), Demand: 1},
		{ID: 3, X: 3, Y: 0, Close: math.Inf(1), Demand: 1},
	}
	g := BuildGraph(nodes, 0.1)
	c := NewConstructor(g, betaDeterministic, 1000, 100, 1)
	rng := rand.New(rand.NewSource(1))

	sol, err := c.Build(rng)
	require.NoError(t, err)
	require.Len(t, sol.Routes, 1)

	route := sol.Routes[0]
	ids := route.NodeIDs()
	assert.Equal(t, []int64{0, 1, 2, 3, 0}, ids)

	travelTime, cost := route.Evaluate()
	assert.InDelta(t, 6, travelTime, 1e-9)
	assert.Zero(t, cost)
}

// TestConstructorBuildRejectsForcedSplitByTMax exercises spec.md §8 scenario
// 3: the same three collinear customers, but with T_max tight enough that no
// merge can fit, and K raised to match — every customer keeps its own
// singleton route.
func TestConstructorBuildRejectsForcedSplitByTMax(t *testing.T) {
	nodes := []*Node{
		{ID: 0, X: 0, Y: 0, Close: math.Inf(1)},
		{ID: 1, X: 1, Y: 0, Close: math.Inf(1), Demand: 1},
		{ID: 2, X: 2, Y: 0, Close: math.Inf(1), Demand: 1},
		{ID: 3, X: 3, Y: 0, Close: math.Inf(1), Demand: 1},
	}
	g := BuildGraph(nodes, 0.1)
	c := NewConstructor(g, betaDeterministic, 1000, 5, 3)
	rng := rand.New(rand.NewSource(1))

	sol, err := c.Build(rng)
	require.NoError(t, err)
	require.Len(t, sol.Routes, 3)
	for _, r := range sol.Routes {
		require.Len(t, r.Edges, 2)
	}
}

// TestConstructorBuildRejectsMergeOverDelayBudget exercises spec.md §8
// scenario 4: two customers whose merge would induce a delay over their
// close windows, with gamma=0 forbidding any delay at all; the merge is
// rejected in both orientations and two singleton routes remain.
func TestConstructorBuildRejectsMergeOverDelayBudget(t *testing.T) {
	nodes := []*Node{
		{ID: 0, X: 0, Y: 0, Close: math.Inf(1)},
		{ID: 1, X: 3, Y: 0, Close: 5, Demand: 1},
		{ID: 2, X: 0, Y: 3, Close: 5, Demand: 1},
	}
	g := BuildGraph(nodes, 0.1)
	c := NewConstructor(g, betaDeterministic, 0, 100, 2)
	rng := rand.New(rand.NewSource(1))

	sol, err := c.Build(rng)
	require.NoError(t, err)
	require.Len(t, sol.Routes, 2)
	for _, r := range sol.Routes {
		require.Len(t, r.Edges, 2)
	}
}

func TestConstructorBuildIsDeterministicAtFixedBeta(t *testing.T) {
	g1 := BuildGraph(squareInstance(), 0.1)
	g2 := BuildGraph(squareInstance(), 0.1)

	c1 := NewConstructor(g1, betaDeterministic, 1000, 1000, 4)
	c2 := NewConstructor(g2, betaDeterministic, 1000, 1000, 4)

	sol1, err1 := c1.Build(rand.New(rand.NewSource(1)))
	sol2, err2 := c2.Build(rand.New(rand.NewSource(999))) // different seed, same beta

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, len(sol1.Routes), len(sol2.Routes))
	assert.InDelta(t, sol1.Evaluate(), sol2.Evaluate(), 1e-9)
}
