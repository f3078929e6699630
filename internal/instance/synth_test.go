package instance

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrpstw/internal/vrp"
)

func squareInstance() []*vrp.Node {
	return []*vrp.Node{
		{ID: 0, X: 0, Y: 0, Demand: 0},
		{ID: 1, X: 10, Y: 0, Demand: 1},
		{ID: 2, X: 10, Y: 10, Demand: 1},
		{ID: 3, X: 0, Y: 10, Demand: 1},
		{ID: 4, X: -10, Y: 0, Demand: 1},
	}
}

func TestSynthesizeWindowsForcesDepotUnbounded(t *testing.T) {
	nodes := squareInstance()
	rng := rand.New(rand.NewSource(1))

	SynthesizeWindows(nodes, 2, 20, rng)
	assert.True(t, math.IsInf(nodes[0].Close, 1))
}

func TestSynthesizeWindowsProducesNonNegativeOpenBeforeClose(t *testing.T) {
	nodes := squareInstance()
	rng := rand.New(rand.NewSource(1))

	open := SynthesizeWindows(nodes, 2, 20, rng)
	require.Len(t, open, len(nodes))
	for i := 1; i < len(nodes); i++ {
		assert.GreaterOrEqual(t, open[i], 0.0)
		assert.Less(t, open[i], nodes[i].Close)
	}
}

func TestArraySplitDistributesRemainderToLeadingGroups(t *testing.T) {
	nodes := squareInstance()[1:]
	groups := arraySplit(nodes, 3)
	require.Len(t, groups, 3)

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	assert.Equal(t, len(nodes), total)
	assert.GreaterOrEqual(t, len(groups[0]), len(groups[len(groups)-1]))
}

func TestTwoOptNeverWorsensTourCost(t *testing.T) {
	nodes := squareInstance()
	dists := distanceMatrix(nodes)
	cluster := []*vrp.Node{nodes[1], nodes[4], nodes[2], nodes[3]} // deliberately crossed order
	before := tourCost(cluster, dists)

	after := twoOpt(cluster, dists)
	assert.LessOrEqual(t, tourCost(after, dists), before)
}
