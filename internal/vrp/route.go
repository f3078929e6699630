package vrp

import (
	"math/rand"

	"vrpstw/internal/apperror"
)

// Route is an ordered sequence of edges starting and ending at the depot.
// Deterministic and stochastic costs are cached; each cache carries its own
// explicit valid flag rather than a sentinel value, so "not yet evaluated"
// and "evaluates to zero" are never confused.
type Route struct {
	Edges []*Edge

	travelTime        float64
	deterministicCost float64
	costValid         bool

	stochasticCost  float64
	stochasticValid bool
}

// NewRoute wraps a depot-to-depot edge sequence. It does not evaluate.
func NewRoute(edges []*Edge) *Route {
	r := &Route{Edges: edges}
	for i, e := range edges {
		e.End.Route = r
		e.End.Interior = i != 0 && i != len(edges)-2
	}
	return r
}

// Evaluate computes (or returns the cached) deterministic travel time and
// cost of the route, starting the clock at 0.
func (r *Route) Evaluate() (travelTime, cost float64) {
	if !r.costValid {
		r.travelTime, r.deterministicCost = Evaluate(r.Edges, 0, 0)
		r.costValid = true
	}
	return r.travelTime, r.deterministicCost
}

// Simulate computes (or returns the cached) mean stochastic cost of the
// route over replications trials, discarding any trial that exceeds tMax.
// ok is false when every trial was discarded; the cache is not populated in
// that case, so a later call may retry with a different rng draw.
func (r *Route) Simulate(replications int, tMax float64, rng *rand.Rand) (cost float64, ok bool) {
	if r.stochasticValid {
		return r.stochasticCost, true
	}
	mean, ok := Simulate(r.Edges, replications, tMax, rng)
	if !ok {
		return 0, false
	}
	r.stochasticCost = mean
	r.stochasticValid = true
	return mean, true
}

// NodeIDs returns the depot-to-depot sequence of node IDs visited by r.
func (r *Route) NodeIDs() []int64 {
	ids := make([]int64, 0, len(r.Edges)+1)
	ids = append(ids, r.Edges[0].Origin.ID)
	for _, e := range r.Edges {
		ids = append(ids, e.End.ID)
	}
	return ids
}

// CachedStochasticCost returns the last Simulate result and whether one has
// been computed yet.
func (r *Route) CachedStochasticCost() (cost float64, ok bool) {
	return r.stochasticCost, r.stochasticValid
}

// FirstCustomer returns the first customer node visited after the depot.
func (r *Route) FirstCustomer() *Node {
	return r.Edges[0].End
}

// LastCustomer returns the last customer node visited before returning to
// the depot.
func (r *Route) LastCustomer() *Node {
	return r.Edges[len(r.Edges)-1].Origin
}

// Reverse replaces the route's edges with the inverse sequence run backward,
// i.e. [e.Inverse for e in reversed(edges)]. A route of at most two edges
// (depot-customer-depot) has the same cost whichever direction it is read,
// so re-evaluation is skipped in that case, matching the reference
// implementation's short-circuit exactly.
func (r *Route) Reverse() {
	r.Edges = inverseReversed(r.Edges)

	for i, e := range r.Edges {
		e.End.Route = r
		e.End.Interior = i != 0 && i != len(r.Edges)-2
	}

	if len(r.Edges) > 2 {
		r.travelTime, r.deterministicCost = Evaluate(r.Edges, 0, 0)
		r.stochasticValid = false
	}
}

// MergeError reports a violated Merge precondition: the bridging edge by
// must run from the end of r to the start of other.
type MergeError struct {
	Reason string
}

func (e *MergeError) Error() string { return "vrp: merge precondition violated: " + e.Reason }

// Merge appends other onto r via the bridging edge by, which must originate
// at r's last node and terminate at other's first node. On success, r's edge
// list is extended in place and other must no longer be used; on a violated
// precondition, Merge panics with an *apperror.Error wrapping a *MergeError,
// to be recovered at a public entry point via apperror.Recover.
func (r *Route) Merge(other *Route, by *Edge) {
	last := r.Edges[len(r.Edges)-1]
	first := other.Edges[0]

	if by.Origin != last.Origin {
		panic(apperror.Wrap(&MergeError{Reason: "bridging edge does not originate at the merging node of r"}, apperror.CodeMergePrecond, "route merge"))
	}
	if by.End != first.End {
		panic(apperror.Wrap(&MergeError{Reason: "bridging edge does not terminate at the merging node of other"}, apperror.CodeMergePrecond, "route merge"))
	}

	if !r.costValid {
		r.Evaluate()
	}
	// The dropped leg runs into the depot, whose Close is +Inf, so it never
	// contributed a penalty; only the travel-time clock needs rewinding.
	t0 := r.travelTime - last.DeterministicTravelTime
	c0 := r.deterministicCost

	suffix := make([]*Edge, 0, len(other.Edges))
	suffix = append(suffix, by)
	suffix = append(suffix, other.Edges[1:]...)

	r.Edges = append(r.Edges[:len(r.Edges)-1], suffix...)

	for i, e := range r.Edges {
		e.End.Route = r
		e.End.Interior = i != 0 && i != len(r.Edges)-2
	}

	r.travelTime, r.deterministicCost = Evaluate(suffix, t0, c0)
	r.costValid = true
	r.stochasticValid = false
}
