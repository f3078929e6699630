package vrp

import (
	"math/rand"

	"github.com/google/uuid"

	"vrpstw/internal/apperror"
)

// Solution is a complete set of routes covering every customer exactly once.
// Like Route, it caches deterministic and stochastic costs behind explicit
// valid flags.
type Solution struct {
	ID     uuid.UUID
	Routes []*Route

	deterministicCost float64
	costValid         bool

	stochasticCost  float64
	stochasticValid bool
}

// NewSolution wraps a completed set of routes under a fresh identifier.
func NewSolution(routes []*Route) *Solution {
	return &Solution{ID: uuid.New(), Routes: routes}
}

// Evaluate sums each route's deterministic cost, evaluating routes that are
// not already cached.
func (s *Solution) Evaluate() float64 {
	if !s.costValid {
		var total float64
		for _, r := range s.Routes {
			_, cost := r.Evaluate()
			total += cost
		}
		s.deterministicCost = total
		s.costValid = true
	}
	return s.deterministicCost
}

// Simulate sums each route's mean stochastic cost over replications trials.
// If any route discards every trial, the solution as a whole is considered
// simulation-degenerate: ok is false and the aggregate is not cached.
func (s *Solution) Simulate(replications int, tMax float64, rng *rand.Rand) (cost float64, ok bool) {
	if s.stochasticValid {
		return s.stochasticCost, true
	}

	var total float64
	for _, r := range s.Routes {
		routeCost, routeOK := r.Simulate(replications, tMax, rng)
		if !routeOK {
			return 0, false
		}
		total += routeCost
	}

	s.stochasticCost = total
	s.stochasticValid = true
	return total, true
}

// InvalidateStochastic clears the cached stochastic cost of the solution and
// of every route in it, forcing the next Simulate call to draw fresh
// samples instead of returning a cached mean from an earlier, lower-fidelity
// run.
func (s *Solution) InvalidateStochastic() {
	s.stochasticValid = false
	for _, r := range s.Routes {
		r.stochasticValid = false
	}
}

// DeterministicCost returns the cached deterministic cost, panicking via
// apperror if Evaluate has not yet been called.
func (s *Solution) DeterministicCost() float64 {
	if !s.costValid {
		panic(apperror.ErrNotEvaluated)
	}
	return s.deterministicCost
}

// StochasticCost returns the cached stochastic cost, panicking via apperror
// if Simulate has not yet succeeded.
func (s *Solution) StochasticCost() float64 {
	if !s.stochasticValid {
		panic(apperror.ErrNotSimulated)
	}
	return s.stochasticCost
}

// CachedStochasticCost returns the last Simulate result and whether one has
// been computed yet, without panicking.
func (s *Solution) CachedStochasticCost() (cost float64, ok bool) {
	return s.stochasticCost, s.stochasticValid
}

// Less orders solutions by stochastic cost when both have been simulated,
// falling back to deterministic cost when both have at least been
// evaluated. It panics via apperror.ErrNotComparable when neither condition
// holds, matching the reference total order exactly: stochastic comparison
// always takes precedence once available.
func (s *Solution) Less(other *Solution) bool {
	if s.stochasticValid && other.stochasticValid {
		return s.stochasticCost < other.stochasticCost
	}
	if s.costValid && other.costValid {
		return s.deterministicCost < other.deterministicCost
	}
	panic(apperror.ErrNotComparable)
}
