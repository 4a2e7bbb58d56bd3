package handler_test

import (
	"context"
	"io"

	"teabag/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, code string) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, code)
	user, _ := args.Get(0).(*domain.User)
	pair, _ := args.Get(1).(*domain.TokenPair)
	return user, pair, args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	user, _ := args.Get(0).(*domain.User)
	pair, _ := args.Get(1).(*domain.TokenPair)
	return user, pair, args.Error(2)
}

func (m *MockAuthService) SignOut(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) ListTeams(ctx context.Context, cohortID uuid.UUID) ([]domain.Team, error) {
	args := m.Called(ctx, cohortID)
	teams, _ := args.Get(0).([]domain.Team)
	return teams, args.Error(1)
}

func (m *MockTeamService) GetTeam(ctx context.Context, teamID uuid.UUID) (*domain.Team, error) {
	args := m.Called(ctx, teamID)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *MockTeamService) CreateTeam(ctx context.Context, requester *domain.User, name, description string, cohortID uuid.UUID) (*domain.Team, error) {
	args := m.Called(ctx, requester, name, description, cohortID)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *MockTeamService) JoinTeam(ctx context.Context, requester *domain.User, teamID uuid.UUID) (*domain.Team, error) {
	args := m.Called(ctx, requester, teamID)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *MockTeamService) LeaveTeam(ctx context.Context, requester *domain.User, teamID uuid.UUID) error {
	args := m.Called(ctx, requester, teamID)
	return args.Error(0)
}

func (m *MockTeamService) SetPublished(ctx context.Context, requester *domain.User, teamID uuid.UUID, published bool) (*domain.Team, error) {
	args := m.Called(ctx, requester, teamID, published)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

func (m *MockTeamService) DisbandTeam(ctx context.Context, requester *domain.User, teamID uuid.UUID) (*domain.Team, error) {
	args := m.Called(ctx, requester, teamID)
	team, _ := args.Get(0).(*domain.Team)
	return team, args.Error(1)
}

type MockNoticeService struct {
	mock.Mock
}

func (m *MockNoticeService) CreateNotice(ctx context.Context, teamID, postedBy uuid.UUID, message string) (*domain.Notice, error) {
	args := m.Called(ctx, teamID, postedBy, message)
	notice, _ := args.Get(0).(*domain.Notice)
	return notice, args.Error(1)
}

func (m *MockNoticeService) ListNotices(ctx context.Context, teamID uuid.UUID) ([]domain.Notice, error) {
	args := m.Called(ctx, teamID)
	notices, _ := args.Get(0).([]domain.Notice)
	return notices, args.Error(1)
}

func (m *MockNoticeService) UpdateNotice(ctx context.Context, noticeID, postedBy uuid.UUID, message string) (*domain.Notice, error) {
	args := m.Called(ctx, noticeID, postedBy, message)
	notice, _ := args.Get(0).(*domain.Notice)
	return notice, args.Error(1)
}

func (m *MockNoticeService) DeleteNotice(ctx context.Context, noticeID, postedBy uuid.UUID) error {
	args := m.Called(ctx, noticeID, postedBy)
	return args.Error(0)
}

type MockRosterService struct {
	mock.Mock
}

func (m *MockRosterService) ImportRoster(ctx context.Context, file io.Reader) (*domain.ImportResult, error) {
	// drain so assertions can inspect what was uploaded
	body, _ := io.ReadAll(file)
	args := m.Called(ctx, string(body))
	result, _ := args.Get(0).(*domain.ImportResult)
	return result, args.Error(1)
}

type MockCohortService struct {
	mock.Mock
}

func (m *MockCohortService) ListCohorts(ctx context.Context, requester *domain.User) ([]domain.Cohort, error) {
	args := m.Called(ctx, requester)
	cohorts, _ := args.Get(0).([]domain.Cohort)
	return cohorts, args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
