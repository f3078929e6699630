package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryCreateAssignsID(t *testing.T) {
	repo := NewMemoryRepository()
	run := &SearchRun{Variant: "bra", DeterministicCost: 42}

	require.NoError(t, repo.Create(context.Background(), run))
	assert.NotEqual(t, uuid.Nil, run.ID)
}

func TestMemoryRepositoryGetByIDNotFound(t *testing.T) {
	repo := NewMemoryRepository()
	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositoryListFiltersByVariant(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &SearchRun{Variant: "bra"}))
	require.NoError(t, repo.Create(ctx, &SearchRun{Variant: "simheuristic"}))

	runs, total, err := repo.List(ctx, &ListOptions{Filter: &ListFilter{Variant: "bra"}})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "bra", runs[0].Variant)
}

func TestMemoryRepositoryListPaginates(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &SearchRun{Variant: "bra"}))
	}

	runs, total, err := repo.List(ctx, &ListOptions{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, runs, 1)
	assert.Equal(t, int64(5), total)
}

func TestMemoryRepositoryListFiltersByTimeRange(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Create(ctx, &SearchRun{Variant: "bra", CreatedAt: old}))
	require.NoError(t, repo.Create(ctx, &SearchRun{Variant: "bra", CreatedAt: time.Now()}))

	cutoff := time.Now().Add(-1 * time.Hour)
	runs, _, err := repo.List(ctx, &ListOptions{Filter: &ListFilter{StartTime: &cutoff}})
	require.NoError(t, err)
	require.Len(t, runs, 1)
}
