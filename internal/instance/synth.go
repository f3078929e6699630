package instance

import (
	"math"
	"math/rand"

	"vrpstw/internal/vrp"
)

// SynthesizeWindows derives soft time windows for an instance that does not
// yet carry them, grounded on util.build_time_windows: customers are
// shuffled, split into nVehicles clusters, each cluster is locally
// sequenced with a first-improvement 2-opt, and open/close windows are
// derived from the cumulative arrival time along that sequence.
//
// It mutates every node's Close in place and returns the matching Open
// values in node order (depot included, Open[0] is unused — the depot's
// window is unbounded). nodes[0] must be the depot.
func SynthesizeWindows(nodes []*vrp.Node, nVehicles int, window float64, rng *rand.Rand) []float64 {
	dists := distanceMatrix(nodes)

	customers := make([]*vrp.Node, len(nodes)-1)
	copy(customers, nodes[1:])
	shuffle(customers, rng)

	open := make([]float64, len(nodes))
	clusters := arraySplit(customers, nVehicles)
	for _, cluster := range clusters {
		sequence := twoOpt(cluster, dists)
		arrival := 0.0
		current := int64(0)
		for _, n := range sequence {
			arrival += dists[current][n.ID]
			n.Close = arrival + window/2
			open[n.ID] = math.Max(arrival-window/2, 0)
			current = n.ID
		}
	}

	nodes[0].Close = math.Inf(1)
	return open
}

func distanceMatrix(nodes []*vrp.Node) [][]float64 {
	d := make([][]float64, len(nodes))
	for i, a := range nodes {
		d[i] = make([]float64, len(nodes))
		for j, b := range nodes {
			d[i][j] = a.Distance(b)
		}
	}
	return d
}

func shuffle(nodes []*vrp.Node, rng *rand.Rand) {
	rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
}

// arraySplit partitions nodes into n roughly-even, contiguous groups, the
// first len(nodes)%n of which receive one extra element, matching
// numpy.array_split's allocation order.
func arraySplit(nodes []*vrp.Node, n int) [][]*vrp.Node {
	groups := make([][]*vrp.Node, n)
	base := len(nodes) / n
	extra := len(nodes) % n
	idx := 0
	for i := 0; i < n; i++ {
		size := base
		if i < extra {
			size++
		}
		groups[i] = nodes[idx : idx+size]
		idx += size
	}
	return groups
}

// twoOpt runs first-improvement 2-opt over cluster's visiting order, scoring
// a candidate tour by the closed-loop cost through the depot (node ID 0)
// and back, restarting the scan from the first cut point whenever an
// improving reversal is found. Mirrors build_time_windows' cut_points loop.
func twoOpt(cluster []*vrp.Node, dists [][]float64) []*vrp.Node {
	current := make([]*vrp.Node, len(cluster))
	copy(current, cluster)
	cost := tourCost(current, dists)

	type cut struct{ a, b int }
	var cuts []cut
	for a := 0; a < len(current); a++ {
		for b := a + 1; b < len(current); b++ {
			cuts = append(cuts, cut{a, b})
		}
	}

	i := 0
	for i < len(cuts) {
		a, b := cuts[i].a, cuts[i].b
		candidate := reversedSegment(current, a, b)
		candidateCost := tourCost(candidate, dists)
		if candidateCost < cost {
			current, cost = candidate, candidateCost
			i = -1
		}
		i++
	}
	return current
}

func reversedSegment(tour []*vrp.Node, a, b int) []*vrp.Node {
	out := make([]*vrp.Node, 0, len(tour))
	out = append(out, tour[:a]...)
	for k := b - 1; k >= a; k-- {
		out = append(out, tour[k])
	}
	out = append(out, tour[b:]...)
	return out
}

// tourCost sums the depot -> tour[0] -> ... -> tour[n-1] -> depot loop.
func tourCost(tour []*vrp.Node, dists [][]float64) float64 {
	if len(tour) == 0 {
		return 0
	}
	total := dists[0][tour[0].ID]
	for k := 0; k+1 < len(tour); k++ {
		total += dists[tour[k].ID][tour[k+1].ID]
	}
	total += dists[tour[len(tour)-1].ID][0]
	return total
}
