package vrp

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"vrpstw/internal/cache"
)

// Soft delay-cost coefficients, tuned against the reference instance set.
const (
	penaltyIntercept      = 5.42
	penaltyCoefDelay      = 0.98
	penaltyCoefImportance = 452.25
	penaltyMemoEntries    = 126 // matches functools.lru_cache(maxsize=126) in the reference
)

var penaltyMemo = cache.New(&cache.Options{MaxEntries: penaltyMemoEntries})

// Predict is the soft time-window penalty kernel. It returns 0 when delay is
// non-positive, otherwise a + c1*delay + c2*importance. The function is pure;
// results are memoized in a bounded LRU cache keyed on its rounded arguments,
// since the cache is an optimization and must never change the value returned.
func Predict(delay, importance float64) float64 {
	if delay <= 0 {
		return 0
	}

	key := penaltyKey(delay, importance)
	ctx := context.Background()
	if raw, err := penaltyMemo.Get(ctx, key); err == nil {
		return decodeFloat(raw)
	}

	result := penaltyIntercept + penaltyCoefDelay*delay + penaltyCoefImportance*importance
	penaltyMemo.Set(ctx, key, encodeFloat(result), 0)
	return result
}

func penaltyKey(delay, importance float64) string {
	return fmt.Sprintf("%.9f|%.9f", delay, importance)
}

func encodeFloat(v float64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(v))
	return buf
}

func decodeFloat(buf []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(buf))
}
