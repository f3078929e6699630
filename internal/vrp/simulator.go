package vrp

import "math/rand"

// Simulate runs replications independent Monte-Carlo trials over edges,
// sampling each arc's stochastic travel time and accumulating soft
// time-window penalties exactly as Evaluate does deterministically (travel
// time itself is not part of the accumulated cost). Any trial whose running
// clock exceeds tMax part-way through the route is discarded entirely (its
// cost does not contribute to the mean).
//
// It returns the mean cost over the surviving trials, and ok == false when
// every trial was discarded (the caller must treat the route as having no
// usable stochastic cost for this call).
func Simulate(edges []*Edge, replications int, tMax float64, rng *rand.Rand) (mean float64, ok bool) {
	var sum float64
	var kept int

	for trial := 0; trial < replications; trial++ {
		var t, c float64
		discarded := false

		for _, e := range edges {
			sample := e.SampleTravelTime(rng)
			t += sample
			if t > tMax {
				discarded = true
				break
			}
			if delay := t - e.End.Close; delay > 0 {
				c += Predict(delay, e.End.Importance)
			}
		}

		if discarded {
			continue
		}
		sum += c
		kept++
	}

	if kept == 0 {
		return 0, false
	}
	return sum / float64(kept), true
}
