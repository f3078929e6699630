package vrp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeSampleTravelTimeZeroDistance(t *testing.T) {
	e := &Edge{DeterministicTravelTime: 0, Variance: 0}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 10; i++ {
		assert.Zero(t, e.SampleTravelTime(rng))
	}
}

func TestEdgeSampleTravelTimeMeanApproximatesDeterministicTime(t *testing.T) {
	e := &Edge{DeterministicTravelTime: 10, Variance: 4}
	rng := rand.New(rand.NewSource(42))

	var sum float64
	const trials = 20000
	for i := 0; i < trials; i++ {
		sum += e.SampleTravelTime(rng)
	}
	mean := sum / trials

	// The log-normal distribution here is parameterized so that its mean is
	// the deterministic travel time; a generous band keeps this test robust
	// to RNG variation while still catching a broken parameterization (e.g.
	// mu/sigma swapped).
	assert.InDelta(t, e.DeterministicTravelTime, mean, 5.0)
}
