package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PostgresRepository persists SearchRuns in the search_runs table.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository wraps db behind Repository.
func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, run *SearchRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}

	query := `
		INSERT INTO search_runs (
			id, instance_path, variant, seed_search, seed_sim, n_vehicles,
			iterations, gamma, deterministic_cost, stochastic_cost, elapsed_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`

	err := r.db.QueryRow(ctx, query,
		run.ID, run.InstancePath, run.Variant, run.SeedSearch, run.SeedSim,
		run.NVehicles, run.Iterations, run.Gamma, run.DeterministicCost,
		run.StochasticCost, run.ElapsedMs,
	).Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("history: create search run: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*SearchRun, error) {
	query := `
		SELECT id, instance_path, variant, seed_search, seed_sim, n_vehicles,
		       iterations, gamma, deterministic_cost, stochastic_cost, elapsed_ms, created_at
		FROM search_runs
		WHERE id = $1
	`

	run := &SearchRun{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&run.ID, &run.InstancePath, &run.Variant, &run.SeedSearch, &run.SeedSim,
		&run.NVehicles, &run.Iterations, &run.Gamma, &run.DeterministicCost,
		&run.StochasticCost, &run.ElapsedMs, &run.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("history: get search run: %w", err)
	}
	return run, nil
}

func (r *PostgresRepository) List(ctx context.Context, opts *ListOptions) ([]*SearchRun, int64, error) {
	limit, offset := paginationDefaults(opts)
	where, args := buildWhereClause(opts)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM search_runs WHERE %s`, where)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("history: count search runs: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, instance_path, variant, seed_search, seed_sim, n_vehicles,
		       iterations, gamma, deterministic_cost, stochastic_cost, elapsed_ms, created_at
		FROM search_runs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("history: list search runs: %w", err)
	}
	defer rows.Close()

	var runs []*SearchRun
	for rows.Next() {
		run := &SearchRun{}
		if err := rows.Scan(
			&run.ID, &run.InstancePath, &run.Variant, &run.SeedSearch, &run.SeedSim,
			&run.NVehicles, &run.Iterations, &run.Gamma, &run.DeterministicCost,
			&run.StochasticCost, &run.ElapsedMs, &run.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("history: scan search run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("history: rows: %w", err)
	}
	return runs, total, nil
}

func buildWhereClause(opts *ListOptions) (string, []any) {
	if opts == nil || opts.Filter == nil {
		return "TRUE", nil
	}
	f := opts.Filter
	conditions := []string{"TRUE"}
	var args []any
	argNum := 1

	if f.Variant != "" {
		conditions = append(conditions, fmt.Sprintf("variant = $%d", argNum))
		args = append(args, f.Variant)
		argNum++
	}
	if f.StartTime != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", argNum))
		args = append(args, *f.StartTime)
		argNum++
	}
	if f.EndTime != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", argNum))
		args = append(args, *f.EndTime)
	}
	return strings.Join(conditions, " AND "), args
}
