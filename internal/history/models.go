// Package history persists completed search runs: the configuration used,
// the seeds drawn, and the resulting costs, grounded on the teacher's
// history-svc repository pattern.
package history

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a run ID has no matching row.
var ErrNotFound = errors.New("history: run not found")

// SearchRun is one completed Driver.Run invocation.
type SearchRun struct {
	ID                uuid.UUID
	InstancePath      string
	Variant           string
	SeedSearch        int64
	SeedSim           int64
	NVehicles         int
	Iterations        int
	Gamma             float64
	DeterministicCost float64
	StochasticCost    *float64 // nil when the run never simulated
	ElapsedMs         float64
	CreatedAt         time.Time
}

// ListFilter narrows List results.
type ListFilter struct {
	Variant   string
	StartTime *time.Time
	EndTime   *time.Time
}

// ListOptions paginates and sorts List results.
type ListOptions struct {
	Limit  int
	Offset int
	Filter *ListFilter
}
