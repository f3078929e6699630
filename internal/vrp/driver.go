package vrp

import (
	"context"
	"math/rand"
	"time"

	"vrpstw/internal/apperror"
	"vrpstw/internal/metrics"
)

// DriverConfig holds every tunable of the iterated search, mirroring the
// search section of the application configuration.
type DriverConfig struct {
	K              int // fleet size bound
	TMax           float64
	BetaMin        float64
	BetaMax        float64
	MaxIter        int
	NElites        int
	SimTrialsInner int
	SimTrialsFinal int
	PVariance      float64
	GammaStep      float64
	GammaMaxSteps  int
	SeedSearch     int64
	SeedSim        int64
	Deadline       time.Duration // 0 means no wall-clock bound
}

// Variant selects which of the three driver behaviors Run executes.
type Variant int

const (
	// VariantHeuristic runs the plain, non-randomized Clarke-Wright
	// construction once: beta is pinned to betaDeterministic and no local
	// search iterations follow.
	VariantHeuristic Variant = iota
	// VariantBRA iterates the biased-randomized construction, keeping only
	// the best deterministic incumbent.
	VariantBRA
	// VariantSimheuristic additionally maintains a stochastic incumbent and
	// a bounded elite queue, re-simulated at high fidelity at the end.
	VariantSimheuristic
)

// Result is the outcome of one Driver.Run call.
type Result struct {
	Best       *Solution
	Iterations int
	Gamma      float64
}

// Driver runs the iterated local search over repeated constructions.
type Driver struct {
	graph   *Graph
	cfg     DriverConfig
	variant Variant
	metrics *metrics.Metrics
}

// NewDriver returns a Driver over graph using cfg and the requested variant.
// m may be nil, in which case metrics are not recorded.
func NewDriver(graph *Graph, cfg DriverConfig, variant Variant, m *metrics.Metrics) *Driver {
	return &Driver{graph: graph, cfg: cfg, variant: variant, metrics: m}
}

// Run executes the configured variant and returns its best incumbent.
//
// Construction loops stop at MaxIter iterations, at ctx cancellation, or (if
// Deadline > 0) once the wall clock since the first construction exceeds
// Deadline, whichever comes first. Run returns apperror.ErrInfeasible if the
// gamma bootstrap exhausts GammaMaxSteps without a construction that
// satisfies the fleet size bound; failed constructions inside the loop are
// skipped.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	searchRNG := rand.New(rand.NewSource(d.cfg.SeedSearch))
	simRNG := rand.New(rand.NewSource(d.cfg.SeedSim))

	switch d.variant {
	case VariantHeuristic:
		return d.runHeuristic(searchRNG)
	case VariantBRA:
		return d.runBRA(ctx, searchRNG)
	default:
		return d.runSimheuristic(ctx, searchRNG, simRNG)
	}
}

func (d *Driver) runHeuristic(rng *rand.Rand) (*Result, error) {
	gamma, _, sol, ok := d.bootstrapGamma(rng, betaDeterministic)
	if !ok {
		return nil, apperror.ErrInfeasible
	}

	sol.Evaluate()
	d.recordConstruction(true, sol)
	return &Result{Best: sol, Iterations: 1, Gamma: gamma}, nil
}

func (d *Driver) runBRA(ctx context.Context, rng *rand.Rand) (*Result, error) {
	gamma, tMax, starting, ok := d.bootstrapGamma(rng, d.cfg.BetaMax)
	if !ok {
		return nil, apperror.ErrInfeasible
	}

	deadline := d.deadline()
	starting.Evaluate()
	best := starting
	iterations := 0

	for i := 0; i < d.cfg.MaxIter; i++ {
		if ctxDone(ctx) || deadlinePassed(deadline) {
			break
		}

		beta := d.cfg.BetaMin + rng.Float64()*(d.cfg.BetaMax-d.cfg.BetaMin)
		c := NewConstructor(d.graph, beta, gamma, tMax, d.cfg.K)
		sol, err := c.Build(rng)
		if err != nil {
			d.recordConstruction(false, nil)
			continue
		}
		sol.Evaluate()
		d.recordConstruction(true, sol)
		iterations++

		if best == nil || sol.DeterministicCost() < best.DeterministicCost() {
			best = sol
		}
	}

	if best == nil {
		return nil, apperror.ErrInfeasible
	}
	if d.metrics != nil {
		d.metrics.BestDeterministicCost.Set(best.DeterministicCost())
	}
	return &Result{Best: best, Iterations: iterations, Gamma: gamma}, nil
}

func (d *Driver) runSimheuristic(ctx context.Context, rng, simRNG *rand.Rand) (*Result, error) {
	gamma, tMax, starting, ok := d.bootstrapGamma(rng, d.cfg.BetaMax)
	if !ok {
		return nil, apperror.ErrInfeasible
	}

	deadline := d.deadline()
	elites := newEliteQueue(d.cfg.NElites)
	starting.Evaluate()
	bestDet := starting
	var bestStoch *Solution
	if _, ok := starting.Simulate(d.cfg.SimTrialsInner, tMax, simRNG); ok {
		bestStoch = starting
		elites.admit(starting)
	}
	iterations := 0

	for i := 0; i < d.cfg.MaxIter; i++ {
		if ctxDone(ctx) || deadlinePassed(deadline) {
			break
		}

		beta := d.cfg.BetaMin + rng.Float64()*(d.cfg.BetaMax-d.cfg.BetaMin)
		c := NewConstructor(d.graph, beta, gamma, tMax, d.cfg.K)
		sol, err := c.Build(rng)
		if err != nil {
			d.recordConstruction(false, nil)
			continue
		}
		sol.Evaluate()
		d.recordConstruction(true, sol)
		iterations++

		// A new solution is only ever simulated (and so only ever eligible
		// for elite admission) once it has already improved the
		// deterministic incumbent, mirroring the reference driver exactly.
		if bestDet != nil && sol.DeterministicCost() >= bestDet.DeterministicCost() {
			continue
		}
		bestDet = sol

		if _, ok := sol.Simulate(d.cfg.SimTrialsInner, tMax, simRNG); !ok {
			continue
		}
		if bestStoch == nil || sol.stochasticCost < bestStoch.stochasticCost {
			bestStoch = sol
			elites.admit(sol)
			if d.metrics != nil {
				d.metrics.EliteAdmissionsTotal.Inc()
			}
		}
	}

	if bestDet == nil {
		return nil, apperror.ErrInfeasible
	}

	var final *Solution
	for _, e := range elites.items {
		e.InvalidateStochastic()
		if cost, ok := e.Simulate(d.cfg.SimTrialsFinal, tMax, simRNG); ok {
			if final == nil || cost < final.StochasticCost() {
				final = e
			}
		}
	}
	if final == nil {
		final = bestDet
	}

	if d.metrics != nil {
		d.metrics.BestDeterministicCost.Set(bestDet.DeterministicCost())
		if final.stochasticValid {
			d.metrics.BestStochasticCost.Set(final.StochasticCost())
		}
	}

	return &Result{Best: final, Iterations: iterations, Gamma: gamma}, nil
}

// bootstrapGamma escalates the delay tolerance from -GammaStep upward in
// GammaStep increments, up to GammaMaxSteps attempts, until a construction
// with the given beta succeeds within d.cfg.K routes. It returns the gamma
// and tMax that produced the first success along with that construction's
// Solution, or ok == false if no step ever succeeded.
func (d *Driver) bootstrapGamma(rng *rand.Rand, beta float64) (gamma, tMax float64, sol *Solution, ok bool) {
	gamma = -d.cfg.GammaStep
	for step := 0; step < d.cfg.GammaMaxSteps; step++ {
		gamma += d.cfg.GammaStep
		c := NewConstructor(d.graph, beta, gamma, d.cfg.TMax, d.cfg.K)
		if s, err := c.Build(rng); err == nil {
			return gamma, d.cfg.TMax, s, true
		}
		if d.metrics != nil {
			d.metrics.GammaEscalationsTotal.Inc()
		}
	}
	return 0, 0, nil, false
}

func (d *Driver) deadline() time.Time {
	if d.cfg.Deadline <= 0 {
		return time.Time{}
	}
	return time.Now().Add(d.cfg.Deadline)
}

func (d *Driver) recordConstruction(feasible bool, sol *Solution) {
	if d.metrics == nil {
		return
	}
	label := "false"
	if feasible {
		label = "true"
	}
	d.metrics.ConstructionsTotal.WithLabelValues(label).Inc()
}

func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func deadlinePassed(deadline time.Time) bool {
	if deadline.IsZero() {
		return false
	}
	return time.Now().After(deadline)
}

// eliteQueue is a bounded FIFO of stochastic incumbents, admitting every
// improving solution without deduplication: an elite evicted by age may
// still have been the best seen, but re-simulation at the end only ever
// needs the most recently admitted NElites candidates.
type eliteQueue struct {
	items []*Solution
	cap   int
}

func newEliteQueue(capacity int) *eliteQueue {
	return &eliteQueue{items: make([]*Solution, 0, capacity), cap: capacity}
}

func (q *eliteQueue) admit(sol *Solution) {
	if q.cap <= 0 {
		return
	}
	q.items = append(q.items, sol)
	if len(q.items) > q.cap {
		q.items = q.items[1:]
	}
}
