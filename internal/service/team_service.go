package service

import (
	"context"
	"fmt"
	"strings"

	"teabag/internal/domain"
	"teabag/internal/my_errors"

	"github.com/google/uuid"
)

type TeamService struct {
	teamRepo TeamRepository
}

func NewTeamService(teamRepo TeamRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
	}
}

// ListTeams returns the cohort's teams that are still unpublished.
func (s *TeamService) ListTeams(ctx context.Context, cohortID uuid.UUID) ([]domain.Team, error) {
	if cohortID == uuid.Nil {
		return nil, fmt.Errorf("cohortId: %w", my_errors.ErrEmptyField)
	}

	teams, err := s.teamRepo.ListUnpublishedTeams(ctx, cohortID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	if teamID == uuid.Nil {
		return nil, fmt.Errorf("team id: %w", my_errors.ErrEmptyField)
	}
	return s.teamRepo.GetTeamByID(ctx, teamID)
}

// CreateTeam creates a team led by requester, who becomes its first member.
func (s *TeamService) CreateTeam(ctx context.Context, requester *domain.User, name, description string, cohortID uuid.UUID) (*domain.Team, error) {
	if requester == nil {
		return nil, fmt.Errorf("%w", my_errors.ErrUnauthenticated)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name: %w", my_errors.ErrEmptyField)
	}
	if cohortID == uuid.Nil {
		return nil, fmt.Errorf("cohortId: %w", my_errors.ErrEmptyField)
	}

	team, err := s.teamRepo.CreateTeamWithLeader(ctx, domain.NewTeam{
		Name:        name,
		Description: strings.TrimSpace(description),
		CohortID:    cohortID,
		LeaderID:    requester.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

func (s *TeamService) JoinTeam(ctx context.Context, requester *domain.User, teamID uuid.UUID) (*domain.Team, error) {
	if requester == nil {
		return nil, fmt.Errorf("%w", my_errors.ErrUnauthenticated)
	}

	if err := s.teamRepo.AddMember(ctx, teamID, requester.ID); err != nil {
		return nil, fmt.Errorf("failed to join team: %w", err)
	}

	return s.teamRepo.GetTeamByID(ctx, teamID)
}

func (s *TeamService) LeaveTeam(ctx context.Context, requester *domain.User, teamID uuid.UUID) error {
	if requester == nil {
		return fmt.Errorf("%w", my_errors.ErrUnauthenticated)
	}

	team, err := s.teamRepo.GetTeamByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.IsLeader(requester.ID) {
		return fmt.Errorf("%w", my_errors.ErrLeaderCannotLeave)
	}
	if !team.HasMember(requester.ID) {
		return fmt.Errorf("not a member of this team: %w", my_errors.ErrForbidden)
	}

	return s.teamRepo.RemoveMember(ctx, teamID, requester.ID)
}

func (s *TeamService) SetPublished(ctx context.Context, requester *domain.User, teamID uuid.UUID, published bool) (*domain.Team, error) {
	if err := s.requireLeader(ctx, requester, teamID); err != nil {
		return nil, err
	}
	return s.teamRepo.SetPublished(ctx, teamID, published)
}

func (s *TeamService) DisbandTeam(ctx context.Context, requester *domain.User, teamID uuid.UUID) (*domain.Team, error) {
	if err := s.requireLeader(ctx, requester, teamID); err != nil {
		return nil, err
	}
	return s.teamRepo.Disband(ctx, teamID)
}

// IsTeamLeader reads the current leader from the store on every call.
func (s *TeamService) IsTeamLeader(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	leaderID, err := s.teamRepo.GetLeaderID(ctx, teamID)
	if err != nil {
		return false, err
	}
	return leaderID == userID, nil
}

func (s *TeamService) requireLeader(ctx context.Context, requester *domain.User, teamID uuid.UUID) error {
	if requester == nil {
		return fmt.Errorf("%w", my_errors.ErrUnauthenticated)
	}

	isLeader, err := s.IsTeamLeader(ctx, teamID, requester.ID)
	if err != nil {
		return err
	}
	if !isLeader {
		return fmt.Errorf("%w", my_errors.ErrNotTeamLeader)
	}
	return nil
}
