package vrp

import (
	"math"
	"sort"
)

// Graph owns the node set and the initial edge set of one problem instance.
// Both outlive every Solution built against them; edges are immutable once
// constructed and shared by reference across constructions.
type Graph struct {
	Depot    *Node
	Nodes    []*Node // customers only, depot excluded
	AllNodes []*Node // depot first, then Nodes, in ID order

	// Savings is the Clarke-Wright savings list: one representative edge per
	// unordered non-depot pair, sorted by Saving descending. Sort is stable;
	// ties keep the insertion (pair-enumeration) order.
	Savings []*Edge

	PVariance float64
}

// BuildGraph constructs the depot arcs and the inter-customer arc pairs for
// the given nodes (nodes[0] must be the depot, ID == DepotID) and returns a
// Graph whose Savings list is ready for the constructor.
//
// pvariance is the proportional-variance factor: each arc's stochastic
// variance is (pvariance * distance)^2.
func BuildGraph(nodes []*Node, pvariance float64) *Graph {
	depot := nodes[0]
	customers := nodes[1:]

	for _, n := range customers {
		d := depot.Distance(n)
		variance := math.Pow(pvariance*d, 2)

		out := &Edge{Origin: depot, End: n, DeterministicTravelTime: d, Variance: variance}
		in := &Edge{Origin: n, End: depot, DeterministicTravelTime: d, Variance: variance}
		out.Inverse = in
		in.Inverse = out

		n.DepotOut = out
		n.DepotIn = in
	}

	savings := make([]*Edge, 0, len(customers)*(len(customers)-1)/2)
	for i := 0; i < len(customers); i++ {
		for j := i + 1; j < len(customers); j++ {
			a, b := customers[i], customers[j]
			d := a.Distance(b)
			variance := math.Pow(pvariance*d, 2)

			ab := &Edge{Origin: a, End: b, DeterministicTravelTime: d, Variance: variance}
			ba := &Edge{Origin: b, End: a, DeterministicTravelTime: d, Variance: variance}
			ab.Inverse = ba
			ba.Inverse = ab

			saving := a.DepotIn.DeterministicTravelTime + b.DepotOut.DeterministicTravelTime - d
			ab.Saving = saving
			ba.Saving = saving

			savings = append(savings, ab)
		}
	}

	stableSortBySavingDesc(savings)

	return &Graph{
		Depot:     depot,
		Nodes:     customers,
		AllNodes:  nodes,
		Savings:   savings,
		PVariance: pvariance,
	}
}

// stableSortBySavingDesc sorts edges by Saving descending, breaking ties by
// insertion (pair-enumeration) order, matching Python's
// sorted(edges, key=lambda e: e.saving, reverse=True).
func stableSortBySavingDesc(edges []*Edge) {
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Saving > edges[j].Saving
	})
}

// reset clears per-construction mutable state on every node of g, and must
// be called at the start of every Constructor.Build.
func (g *Graph) reset() {
	for _, n := range g.AllNodes {
		n.reset()
	}
}
