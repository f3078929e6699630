package vrp

import (
	"math"
	"math/rand"
)

// Edge is a directed arc between two nodes, carrying a deterministic travel
// time, a variance used for stochastic sampling, a Clarke-Wright saving
// value, and a reference to the arc running the opposite direction.
//
// Edges are created once per instance by BuildGraph and shared by reference
// across every construction; they are never mutated after creation.
type Edge struct {
	Origin, End *Node

	DeterministicTravelTime float64
	Variance                float64
	Saving                  float64

	Inverse *Edge
}

// SampleTravelTime draws a stochastic travel time for this edge. The
// distribution is log-normal with mean equal to the deterministic travel
// time m and variance v (its mode, m^4/phi^3, lies below m):
//
//	phi   = sqrt(v + m^2)
//	mu    = ln(m^2 / phi)
//	sigma = sqrt(ln(phi^2 / m^2))
//	sample = exp(Normal(mu, sigma))
//
// When m == 0 the sample is 0 deterministically (no distance to traverse).
func (e *Edge) SampleTravelTime(rng *rand.Rand) float64 {
	m := e.DeterministicTravelTime
	if m == 0 {
		return 0
	}
	phi := math.Sqrt(e.Variance + m*m)
	mu := math.Log((m * m) / phi)
	sigma := math.Sqrt(math.Log((phi * phi) / (m * m)))
	return math.Exp(mu + sigma*rng.NormFloat64())
}
