package vrp

import (
	"math/rand"

	"vrpstw/internal/apperror"
)

// Constructor builds one Solution from a Graph using the biased-randomized
// Clarke-Wright savings heuristic: candidate merges are drawn from the
// savings list via a biased index draw rather than taken strictly in
// savings-descending order, which is what turns a single deterministic
// construction into a family of constructions suitable for iterated search.
type Constructor struct {
	graph *Graph
	beta  float64
	gamma float64
	tMax  float64
	k     int
}

// NewConstructor returns a Constructor for graph, biasing merge candidate
// selection with beta in (0, 1), accepting a merge only when its delay is
// within gamma and its total route time within tMax, and rejecting any
// construction that needs more than k routes.
func NewConstructor(graph *Graph, beta, gamma, tMax float64, k int) *Constructor {
	return &Constructor{graph: graph, beta: beta, gamma: gamma, tMax: tMax, k: k}
}

// Build runs one construction pass and returns the resulting Solution.
//
// Build returns a non-nil error in two disjoint cases: a structural misuse
// (a violated Route.Merge precondition) is recovered from panic by
// apperror.Recover and returned as the *apperror.Error it panicked with
// (CodeMergePrecond); a clean search failure (more than k routes remain
// after every feasible merge has been exhausted) is returned, without ever
// panicking, as an *apperror.Error with CodeInfeasible carrying the route
// count and the limit as details.
func (c *Constructor) Build(rng *rand.Rand) (sol *Solution, err error) {
	defer apperror.Recover(&err)

	c.graph.reset()

	for _, n := range c.graph.Nodes {
		r := NewRoute([]*Edge{n.DepotOut, n.DepotIn})
		r.Evaluate()
	}

	remaining := make([]*Edge, len(c.graph.Savings))
	copy(remaining, c.graph.Savings)

	for len(remaining) > 0 {
		idx := biasedIndex(len(remaining), c.beta, rng)
		edge := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)

		feasible, bridge, froute, sroute := Prepare(edge, edge.Origin.Route, edge.End.Route, c.gamma, c.tMax)
		if !feasible {
			continue
		}
		froute.Merge(sroute, bridge)
	}

	routes := c.distinctRoutes()
	if len(routes) > c.k {
		infeasible := apperror.New(apperror.CodeInfeasible, "no feasible construction within the configured fleet size")
		infeasible.WithDetails("routes", len(routes)).WithDetails("limit", c.k)
		return nil, infeasible
	}

	return NewSolution(routes), nil
}

func (c *Constructor) distinctRoutes() []*Route {
	seen := make(map[*Route]bool)
	routes := make([]*Route, 0, c.k)
	for _, n := range c.graph.Nodes {
		if r := n.Route; !seen[r] {
			seen[r] = true
			routes = append(routes, r)
		}
	}
	return routes
}
