package vrp

import (
	"math"
	"math/rand"
)

// betaDeterministic is the biasing parameter that degenerates the sampler to
// always picking index 0 (a pure, non-randomized greedy choice). Exactly
// 1.0 would make log(1-beta) undefined, so the cutoff sits 1e-7 below 1,
// matching the reference implementation's constant.
const betaDeterministic = 0.9999999

// biasedIndex draws an index in [0, n) from a quasi-geometric distribution
// controlled by beta in (0, 1): values near 1 concentrate mass at index 0,
// values near 0 approach a uniform draw. beta >= betaDeterministic always
// returns 0 without consuming randomness.
func biasedIndex(n int, beta float64, rng *rand.Rand) int {
	if n <= 1 {
		return 0
	}
	if beta >= betaDeterministic {
		return 0
	}

	u := rng.Float64()
	for u == 0 {
		u = rng.Float64()
	}

	idx := int(logBase(1-beta, u))
	return idx % n
}

// logBase returns log_base(x) for base in (0, 1), x in (0, 1].
func logBase(base, x float64) float64 {
	return math.Log(x) / math.Log(base)
}
