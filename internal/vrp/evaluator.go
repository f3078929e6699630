package vrp

// Evaluate walks edges in order starting from clock t0 and accumulated
// penalty cost c0, accumulating a soft time-window penalty at the end of
// every arc whose destination closes before the arrival clock.
//
// The returned cost is the sum of Predict() penalties only — it does not
// include travel time, which the caller tracks separately (travel time
// bounds feasibility via T_max; cost is what the search minimizes).
//
// It returns the arrival clock and accumulated cost after the last edge,
// suitable as the (t0, c0) seed for a subsequent incremental call over an
// appended suffix.
func Evaluate(edges []*Edge, t0, c0 float64) (t, c float64) {
	t, c = t0, c0
	for _, e := range edges {
		t += e.DeterministicTravelTime
		if delay := t - e.End.Close; delay > 0 {
			c += Predict(delay, e.End.Importance)
		}
	}
	return t, c
}
