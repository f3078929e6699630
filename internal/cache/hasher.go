package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// InstanceNode is the minimal projection of internal/vrp.Node needed to build
// a stable cache key; kept independent of internal/vrp to avoid an import
// cycle (internal/vrp imports internal/cache for the penalty memo).
type InstanceNode struct {
	ID     int64
	X, Y   float64
	Close  float64
	Demand float64
}

// InstanceHash computes a deterministic hash of a problem instance plus the
// fleet size, travel-time ceiling, p-variance and both seeds, for use as a
// solution-cache key. Other search settings (beta range, maxiter, elite
// count, simulation trial counts, gamma step) are not part of the hash.
func InstanceHash(nodes []InstanceNode, k int, maxTravelTime, pvariance float64, seedSearch, seedSim int64) string {
	sorted := make([]InstanceNode, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var buf []byte
	buf = append(buf, []byte(fmt.Sprintf("k:%d;t:%.6f;p:%.6f;ss:%d;sm:%d;", k, maxTravelTime, pvariance, seedSearch, seedSim))...)
	for _, n := range sorted {
		buf = append(buf, []byte(fmt.Sprintf("n:%d:%.6f:%.6f:%.6f:%.6f;", n.ID, n.X, n.Y, n.Close, n.Demand))...)
	}

	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:16])
}

// SolutionKey builds the cache key for a cached solution encoding.
func SolutionKey(instanceHash, variant string) string {
	return fmt.Sprintf("solution:%s:%s", variant, instanceHash)
}
