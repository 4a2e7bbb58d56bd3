package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"teabag/internal/domain"
	"teabag/internal/my_errors"
)

type RosterService struct {
	rosterRepo RosterRepository
}

func NewRosterService(rosterRepo RosterRepository) *RosterService {
	return &RosterService{
		rosterRepo: rosterRepo,
	}
}

// ImportRoster parses an uploaded CSV and provisions its users. Emails that
// already exist are skipped silently.
func (s *RosterService) ImportRoster(ctx context.Context, file io.Reader) (*domain.ImportResult, error) {
	roster, err := ParseRoster(file)
	if err != nil {
		return nil, err
	}

	if len(roster.Entries) == 0 {
		return nil, fmt.Errorf("%d rows parsed: %w", roster.Parsed, my_errors.ErrNoValidRows)
	}

	result, err := s.rosterRepo.ImportRoster(ctx, roster)
	if err != nil {
		return nil, fmt.Errorf("failed to import roster: %w", err)
	}

	slog.Info("roster imported",
		"parsed", result.Parsed,
		"skipped", result.Skipped,
		"inserted", len(result.InsertedEmails),
		"cohorts_created", result.CohortsCreated,
		"memberships_added", result.MembershipsAdded,
	)

	return result, nil
}
