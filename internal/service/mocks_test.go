package service_test

import (
	"context"
	"time"

	"teabag/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthRepo struct{ mock.Mock }

func (m *mockAuthRepo) SaveRefreshToken(ctx context.Context, tokenID, userID uuid.UUID, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, userID, expiresAt).Error(0)
}

func (m *mockAuthRepo) ConsumeRefreshToken(ctx context.Context, tokenID, userID uuid.UUID) error {
	return m.Called(ctx, tokenID, userID).Error(0)
}

func (m *mockAuthRepo) RevokeRefreshToken(ctx context.Context, tokenID uuid.UUID) error {
	return m.Called(ctx, tokenID).Error(0)
}

func (m *mockAuthRepo) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) TouchLogin(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) UpsertGoogleUser(ctx context.Context, identity *domain.ExternalIdentity) (*domain.User, error) {
	args := m.Called(ctx, identity)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

type mockProvider struct{ mock.Mock }

func (m *mockProvider) Exchange(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	args := m.Called(ctx, code)
	identity, _ := args.Get(0).(*domain.ExternalIdentity)
	return identity, args.Error(1)
}

type mockTeamRepo struct{ mock.Mock }

func (m *mockTeamRepo) ListUnpublishedTeams(ctx context.Context, cohortID uuid.UUID) ([]domain.Team, error) {
	args := m.Called(ctx, cohortID)
	teams, _ := args.Get(0).([]domain.Team)
	return teams, args.Error(1)
}

func (m *mockTeamRepo) GetTeamByID(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *mockTeamRepo) GetLeaderID(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTeamRepo) CreateTeamWithLeader(ctx context.Context, newTeam domain.NewTeam) (*domain.Team, error) {
	args := m.Called(ctx, newTeam)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *mockTeamRepo) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	return m.Called(ctx, teamID, userID).Error(0)
}

func (m *mockTeamRepo) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	return m.Called(ctx, teamID, userID).Error(0)
}

func (m *mockTeamRepo) SetPublished(ctx context.Context, teamID uuid.UUID, published bool) (*domain.Team, error) {
	args := m.Called(ctx, teamID, published)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *mockTeamRepo) Disband(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

type mockNoticeRepo struct{ mock.Mock }

func (m *mockNoticeRepo) CreateNotice(ctx context.Context, teamID, postedBy uuid.UUID, message string) (*domain.Notice, error) {
	args := m.Called(ctx, teamID, postedBy, message)
	notice, _ := args.Get(0).(*domain.Notice)
	return notice, args.Error(1)
}

func (m *mockNoticeRepo) GetNoticeByID(ctx context.Context, noticeID uuid.UUID) (*domain.Notice, error) {
	args := m.Called(ctx, noticeID)
	notice, _ := args.Get(0).(*domain.Notice)
	return notice, args.Error(1)
}

func (m *mockNoticeRepo) ListNoticesByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Notice, error) {
	args := m.Called(ctx, teamID)
	notices, _ := args.Get(0).([]domain.Notice)
	return notices, args.Error(1)
}

func (m *mockNoticeRepo) UpdateNoticeMessage(ctx context.Context, noticeID uuid.UUID, message string) (*domain.Notice, error) {
	args := m.Called(ctx, noticeID, message)
	notice, _ := args.Get(0).(*domain.Notice)
	return notice, args.Error(1)
}

func (m *mockNoticeRepo) DeleteNotice(ctx context.Context, noticeID uuid.UUID) error {
	return m.Called(ctx, noticeID).Error(0)
}

type mockCohortRepo struct{ mock.Mock }

func (m *mockCohortRepo) ListCohorts(ctx context.Context) ([]domain.Cohort, error) {
	args := m.Called(ctx)
	cohorts, _ := args.Get(0).([]domain.Cohort)
	return cohorts, args.Error(1)
}

func (m *mockCohortRepo) ListCohortsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Cohort, error) {
	args := m.Called(ctx, userID)
	cohorts, _ := args.Get(0).([]domain.Cohort)
	return cohorts, args.Error(1)
}

type mockRosterRepo struct{ mock.Mock }

func (m *mockRosterRepo) ImportRoster(ctx context.Context, roster *domain.Roster) (*domain.ImportResult, error) {
	args := m.Called(ctx, roster)
	result, _ := args.Get(0).(*domain.ImportResult)
	return result, args.Error(1)
}
