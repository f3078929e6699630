package vrp

// Prepare decides whether medge can merge route1 and route2, and if so in
// which orientation. Four conditions are checked in order: the routes must
// be distinct; both endpoints of medge must be exterior (non-interior)
// nodes; the combined travel time must not exceed tMax; and at least one of
// the two possible bridging orientations (forward via medge, or backward via
// medge.Inverse) must keep the cumulated penalty cost within gamma.
//
// When feasible, Prepare reverses route1 and/or route2 in place as needed
// and returns the bridging edge together with the ordered pair (froute,
// sroute) ready for froute.Merge(sroute, bridge).
func Prepare(medge *Edge, route1, route2 *Route, gamma, tMax float64) (feasible bool, bridge *Edge, froute, sroute *Route) {
	if route1 == route2 {
		return false, nil, nil, nil
	}

	iNode, jNode := medge.Origin, medge.End
	if iNode.Interior || jNode.Interior {
		return false, nil, nil, nil
	}

	if tMax < route1.travelTime+route2.travelTime-medge.Saving {
		return false, nil, nil, nil
	}

	iFront := iNode == route1.FirstCustomer()
	jBack := jNode == route2.LastCustomer()

	iedges, iedgesInv := route1.Edges, inverseReversed(route1.Edges)
	if iFront {
		iedges, iedgesInv = iedgesInv, iedges
	}
	jedges, jedgesInv := route2.Edges, inverseReversed(route2.Edges)
	if jBack {
		jedges, jedgesInv = jedgesInv, jedges
	}

	_, delay := evaluateChain(iedges[:len(iedges)-1], medge, jedges[1:])
	_, delayInv := evaluateChain(jedgesInv[:len(jedgesInv)-1], medge.Inverse, iedgesInv[1:])

	if delay > gamma && delayInv > gamma {
		return false, nil, nil, nil
	}

	if delay <= delayInv {
		if iFront {
			route1.Reverse()
		}
		if jBack {
			route2.Reverse()
		}
		return true, medge, route1, route2
	}

	if medge.Inverse.Origin == route2.FirstCustomer() {
		route2.Reverse()
	}
	if medge.Inverse.End == route1.LastCustomer() {
		route1.Reverse()
	}
	return true, medge.Inverse, route2, route1
}

// inverseReversed returns [e.Inverse for e in reversed(edges)], the edge
// list edges would have if its route were reversed, without mutating
// anything.
func inverseReversed(edges []*Edge) []*Edge {
	n := len(edges)
	out := make([]*Edge, n)
	for i, e := range edges {
		out[n-1-i] = e.Inverse
	}
	return out
}

// evaluateChain evaluates prefix, then bridge, then suffix as one continuous
// sequence starting from a fresh clock and cost.
func evaluateChain(prefix []*Edge, bridge *Edge, suffix []*Edge) (t, c float64) {
	combined := make([]*Edge, 0, len(prefix)+1+len(suffix))
	combined = append(combined, prefix...)
	combined = append(combined, bridge)
	combined = append(combined, suffix...)
	return Evaluate(combined, 0, 0)
}
