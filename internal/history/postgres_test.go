package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (pgxmock.PgxPoolIface, *PostgresRepository) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPostgresRepository(mock)
}

func TestPostgresRepositoryCreateScansGeneratedCreatedAt(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO search_runs").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	run := &SearchRun{
		InstancePath:      "instances/a-n32.txt",
		Variant:           "bra",
		SeedSearch:        1,
		SeedSim:           2,
		NVehicles:         5,
		Iterations:        100,
		Gamma:             50,
		DeterministicCost: 123.4,
	}
	require.NoError(t, repo.Create(context.Background(), run))
	assert.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, now, run.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetByIDNotFound(t *testing.T) {
	mock, repo := setupMockDB(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT (.|\n)* FROM search_runs").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "instance_path", "variant", "seed_search", "seed_sim", "n_vehicles",
			"iterations", "gamma", "deterministic_cost", "stochastic_cost", "elapsed_ms", "created_at",
		}))

	_, err := repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepositoryListReturnsTotalAndRows(t *testing.T) {
	mock, repo := setupMockDB(t)
	now := time.Now()
	runID := uuid.New()

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery("SELECT id, instance_path").WillReturnRows(
		pgxmock.NewRows([]string{
			"id", "instance_path", "variant", "seed_search", "seed_sim", "n_vehicles",
			"iterations", "gamma", "deterministic_cost", "stochastic_cost", "elapsed_ms", "created_at",
		}).AddRow(runID, "instances/a.txt", "bra", int64(1), int64(2), 5, 10, 50.0, 100.0, nil, 5.0, now),
	)

	runs, total, err := repo.List(context.Background(), &ListOptions{Filter: &ListFilter{Variant: "bra"}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
}
