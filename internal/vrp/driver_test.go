package vrp

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseDriverConfig() DriverConfig {
	return DriverConfig{
		K:              4,
		TMax:           1000,
		BetaMin:        0.05,
		BetaMax:        0.25,
		MaxIter:        25,
		NElites:        3,
		SimTrialsInner: 20,
		SimTrialsFinal: 50,
		PVariance:      0.1,
		GammaStep:      50,
		GammaMaxSteps:  20,
		SeedSearch:     1,
		SeedSim:        2,
	}
}

func TestDriverHeuristicReturnsFeasibleSolution(t *testing.T) {
	g := BuildGraph(squareInstance(), 0.1)
	d := NewDriver(g, baseDriverConfig(), VariantHeuristic, nil)

	res, err := d.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.Best)
	assert.Equal(t, 1, res.Iterations)
}

func TestDriverBRARunsConfiguredIterations(t *testing.T) {
	g := BuildGraph(squareInstance(), 0.1)
	d := NewDriver(g, baseDriverConfig(), VariantBRA, nil)

	res, err := d.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.Best)
	assert.LessOrEqual(t, res.Iterations, baseDriverConfig().MaxIter)
}

func TestDriverBRARespectsContextCancellation(t *testing.T) {
	g := BuildGraph(squareInstance(), 0.1)
	cfg := baseDriverConfig()
	cfg.MaxIter = 1_000_000
	d := NewDriver(g, cfg, VariantBRA, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := d.Run(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Iterations, 1)
}

func TestDriverSimheuristicProducesSimulatedIncumbent(t *testing.T) {
	g := BuildGraph(squareInstance(), 0.1)
	d := NewDriver(g, baseDriverConfig(), VariantSimheuristic, nil)

	res, err := d.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, res.Best)
	assert.True(t, math.IsInf(res.Best.DeterministicCost(), 0) || res.Best.DeterministicCost() >= 0)
}
