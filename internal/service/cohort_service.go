package service

import (
	"context"
	"fmt"

	"teabag/internal/domain"
	"teabag/internal/my_errors"
)

type CohortService struct {
	cohortRepo CohortRepository
}

func NewCohortService(cohortRepo CohortRepository) *CohortService {
	return &CohortService{cohortRepo: cohortRepo}
}

// ListCohorts returns every cohort to admins and the member cohorts to everyone else.
func (s *CohortService) ListCohorts(ctx context.Context, requester *domain.User) ([]domain.Cohort, error) {
	if requester == nil {
		return nil, fmt.Errorf("%w", my_errors.ErrUnauthenticated)
	}

	var (
		cohorts []domain.Cohort
		err     error
	)
	if requester.IsAdmin() {
		cohorts, err = s.cohortRepo.ListCohorts(ctx)
	} else {
		cohorts, err = s.cohortRepo.ListCohortsForUser(ctx, requester.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list cohorts: %w", err)
	}
	return cohorts, nil
}
