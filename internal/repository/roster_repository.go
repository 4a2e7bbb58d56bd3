package repository

import (
	"context"

	"teabag/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RosterRepository struct {
	pool *pgxpool.Pool
}

func NewRosterRepository(pool *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{pool: pool}
}

// ImportRoster provisions users, cohorts and cohort memberships in one transaction.
func (r *RosterRepository) ImportRoster(ctx context.Context, roster *domain.Roster) (*domain.ImportResult, error) {
	result := &domain.ImportResult{
		Parsed:  roster.Parsed,
		Skipped: roster.Skipped,
	}

	var memberEmails, memberCohorts, cohortNames []string
	for _, entry := range roster.Entries {
		if entry.Cohort == "" {
			continue
		}
		memberEmails = append(memberEmails, entry.Email)
		memberCohorts = append(memberCohorts, entry.Cohort)
		cohortNames = append(cohortNames, entry.Cohort)
	}

	err := runInTx(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		inserted, err := insertEmails(ctx, tx, roster.Emails())
		if err != nil {
			return err
		}
		result.InsertedEmails = inserted

		if len(cohortNames) == 0 {
			return nil
		}

		if result.CohortsCreated, err = ensureCohorts(ctx, tx, cohortNames); err != nil {
			return err
		}
		result.MembershipsAdded, err = addCohortMemberships(ctx, tx, memberEmails, memberCohorts)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
