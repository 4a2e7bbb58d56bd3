package repository

import (
	"context"
	"fmt"

	"teabag/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CohortRepository struct {
	pool *pgxpool.Pool
}

func NewCohortRepository(pool *pgxpool.Pool) *CohortRepository {
	return &CohortRepository{pool: pool}
}

func (r *CohortRepository) ListCohorts(ctx context.Context) ([]domain.Cohort, error) {
	query := `SELECT id, name, created_at FROM cohorts ORDER BY name`
	return r.queryCohorts(ctx, query)
}

func (r *CohortRepository) ListCohortsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Cohort, error) {
	query := `
        SELECT c.id, c.name, c.created_at
        FROM cohorts c
        JOIN cohort_memberships cm ON cm.cohort_id = c.id
        WHERE cm.user_id = $1
        ORDER BY c.name
    `
	return r.queryCohorts(ctx, query, userID)
}

func (r *CohortRepository) queryCohorts(ctx context.Context, query string, args ...any) ([]domain.Cohort, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cohorts: %w", err)
	}
	defer rows.Close()

	cohorts := []domain.Cohort{}
	for rows.Next() {
		var c domain.Cohort
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cohort: %w", err)
		}
		cohorts = append(cohorts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cohorts: %w", err)
	}
	return cohorts, nil
}

func ensureCohorts(ctx context.Context, tx pgx.Tx, names []string) (int, error) {
	query := `
        INSERT INTO cohorts (name)
        SELECT DISTINCT unnest($1::text[])
        ON CONFLICT (name) DO NOTHING
    `
	tag, err := tx.Exec(ctx, query, names)
	if err != nil {
		return 0, fmt.Errorf("failed to create cohorts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func addCohortMemberships(ctx context.Context, tx pgx.Tx, emails, cohorts []string) (int, error) {
	query := `
        INSERT INTO cohort_memberships (user_id, cohort_id)
        SELECT u.id, c.id
        FROM unnest($1::text[], $2::text[]) AS r(email, cohort)
        JOIN users u ON u.email = r.email
        JOIN cohorts c ON c.name = r.cohort
        ON CONFLICT DO NOTHING
    `
	tag, err := tx.Exec(ctx, query, emails, cohorts)
	if err != nil {
		return 0, fmt.Errorf("failed to add cohort memberships: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
