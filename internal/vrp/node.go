// Package vrp implements the simheuristic search engine for the vehicle
// routing problem with soft time windows and stochastic travel times: the
// route-merging state machine, the biased random sampler, the deterministic
// evaluator and stochastic simulator, and the iterated search driver.
package vrp

import "math"

// DepotID is the reserved identifier of the depot node. Every route starts
// and ends here.
const DepotID int64 = 0

// Node is a customer location (or, for ID == DepotID, the depot itself).
//
// Route and Interior are per-construction mutable state: they are reset at
// the start of every Constructor.Build call and must not be read across
// constructions. Go's garbage collector reclaims routes that are no longer
// referenced regardless of the back-pointer here, so unlike the arena+index
// scheme sketched for manually-memory-managed hosts, a plain pointer is both
// sufficient and idiomatic — see DESIGN.md.
type Node struct {
	ID         int64
	X, Y       float64
	Close      float64 // +Inf for the depot
	Demand     float64
	Importance float64 // demand_i / sum(demand), derived at instance load time

	DepotOut *Edge // depot -> node, created once, reused across constructions
	DepotIn  *Edge // node -> depot, created once, reused across constructions

	Route    *Route
	Interior bool
}

// IsDepot reports whether n is the depot node.
func (n *Node) IsDepot() bool {
	return n.ID == DepotID
}

// Distance returns the Euclidean distance between n and other.
func (n *Node) Distance(other *Node) float64 {
	dx := n.X - other.X
	dy := n.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// reset clears the per-construction mutable state of n. Called once per node
// at the start of every Constructor.Build.
func (n *Node) reset() {
	n.Route = nil
	n.Interior = false
}
