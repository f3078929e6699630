package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository persists and queries SearchRuns.
type Repository interface {
	Create(ctx context.Context, run *SearchRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*SearchRun, error)
	List(ctx context.Context, opts *ListOptions) ([]*SearchRun, int64, error)
}

// MemoryRepository is an in-memory Repository, the default when
// history.enabled is false or no database is configured.
type MemoryRepository struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]*SearchRun
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{runs: make(map[uuid.UUID]*SearchRun)}
}

func (r *MemoryRepository) Create(_ context.Context, run *SearchRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	cp := *run
	r.runs[run.ID] = &cp
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*SearchRun, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *run
	return &cp, nil
}

func (r *MemoryRepository) List(_ context.Context, opts *ListOptions) ([]*SearchRun, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*SearchRun
	for _, run := range r.runs {
		if matchesFilter(run, opts) {
			cp := *run
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	limit, offset := paginationDefaults(opts)
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func matchesFilter(run *SearchRun, opts *ListOptions) bool {
	if opts == nil || opts.Filter == nil {
		return true
	}
	f := opts.Filter
	if f.Variant != "" && run.Variant != f.Variant {
		return false
	}
	if f.StartTime != nil && run.CreatedAt.Before(*f.StartTime) {
		return false
	}
	if f.EndTime != nil && run.CreatedAt.After(*f.EndTime) {
		return false
	}
	return true
}

func paginationDefaults(opts *ListOptions) (limit, offset int) {
	limit, offset = 20, 0
	if opts == nil {
		return limit, offset
	}
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	if opts.Limit > 100 {
		limit = 100
	}
	if opts.Offset > 0 {
		offset = opts.Offset
	}
	return limit, offset
}
