package vrp

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolutionEvaluateSumsRoutes(t *testing.T) {
	depot := &Node{ID: 0, Close: math.Inf(1)}
	a := &Node{ID: 1, X: 3, Y: 4, Close: math.Inf(1)}
	b := &Node{ID: 2, X: 6, Y: 8, Close: math.Inf(1)}
	r1 := buildSingleton(depot, a)
	r2 := buildSingleton(depot, b)

	sol := NewSolution([]*Route{r1, r2})
	cost := sol.Evaluate()
	assert.Zero(t, cost)
}

func TestSolutionDeterministicCostPanicsBeforeEvaluate(t *testing.T) {
	sol := NewSolution(nil)
	assert.Panics(t, func() { sol.DeterministicCost() })
}

func TestSolutionLessPrefersStochasticWhenBothSimulated(t *testing.T) {
	depot := &Node{ID: 0, Close: math.Inf(1)}
	a := &Node{ID: 1, X: 3, Y: 4, Close: math.Inf(1)}
	r := buildSingleton(depot, a)

	s1 := NewSolution([]*Route{r})
	s1.Evaluate()
	s1.stochasticCost, s1.stochasticValid = 5, true

	s2 := NewSolution([]*Route{r})
	s2.deterministicCost, s2.costValid = 1000, true // much worse deterministically
	s2.stochasticCost, s2.stochasticValid = 2, true  // but better stochastically

	assert.True(t, s2.Less(s1))
}

func TestSolutionLessFallsBackToDeterministic(t *testing.T) {
	s1 := NewSolution(nil)
	s1.deterministicCost, s1.costValid = 1, true
	s2 := NewSolution(nil)
	s2.deterministicCost, s2.costValid = 2, true

	assert.True(t, s1.Less(s2))
}

func TestSolutionLessPanicsWhenNotComparable(t *testing.T) {
	s1 := NewSolution(nil)
	s2 := NewSolution(nil)
	assert.Panics(t, func() { s1.Less(s2) })
}

func TestSolutionSimulateDegenerateWhenAnyRouteDiscardsAllTrials(t *testing.T) {
	depot := &Node{ID: 0, Close: math.Inf(1)}
	far := &Node{ID: 1, X: 1000, Y: 0, Close: math.Inf(1)}
	r := buildSingleton(depot, far)
	r.Edges[0].Variance = 1

	sol := NewSolution([]*Route{r})
	rng := rand.New(rand.NewSource(1))
	_, ok := sol.Simulate(5, 1.0, rng)
	assert.False(t, ok)
}

func TestSolutionInvalidateStochasticForcesResample(t *testing.T) {
	depot := &Node{ID: 0, Close: math.Inf(1)}
	a := &Node{ID: 1, X: 3, Y: 4, Close: math.Inf(1)}
	r := buildSingleton(depot, a)
	sol := NewSolution([]*Route{r})

	rng := rand.New(rand.NewSource(1))
	_, ok := sol.Simulate(10, 1000, rng)
	require.True(t, ok)
	assert.True(t, sol.stochasticValid)

	sol.InvalidateStochastic()
	assert.False(t, sol.stochasticValid)
	assert.False(t, r.stochasticValid)
}
