package report

import (
	"time"

	"vrpstw/internal/vrp"
)

// FromResult builds a format-agnostic Data from a completed search Result.
func FromResult(res *vrp.Result, variant string, seed int64, runID string, generatedAt time.Time) *Data {
	data := &Data{
		RunID:       runID,
		Variant:     variant,
		GeneratedAt: generatedAt,
		Seed:        seed,
		Iterations:  res.Iterations,
		Gamma:       res.Gamma,
	}

	data.DeterministicCost = res.Best.DeterministicCost()
	if cost, ok := res.Best.CachedStochasticCost(); ok {
		data.StochasticCost = cost
		data.HasStochastic = true
	}

	for i, r := range res.Best.Routes {
		travelTime, cost := r.Evaluate()
		rd := RouteData{
			Index:      i,
			NodeIDs:    r.NodeIDs(),
			TravelTime: travelTime,
			Cost:       cost,
		}
		if stoch, ok := r.CachedStochasticCost(); ok {
			rd.StochasticCost = stoch
			rd.HasStochastic = true
		}
		data.Routes = append(data.Routes, rd)
	}

	return data
}
