package service

import (
	"context"
	"time"

	"teabag/internal/domain"

	"github.com/google/uuid"
)

type AuthRepository interface {
	SaveRefreshToken(ctx context.Context, tokenID, userID uuid.UUID, expiresAt time.Time) error
	ConsumeRefreshToken(ctx context.Context, tokenID, userID uuid.UUID) error
	RevokeRefreshToken(ctx context.Context, tokenID uuid.UUID) error
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}

type UserRepository interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	TouchLogin(ctx context.Context, googleID string) (*domain.User, error)
	UpsertGoogleUser(ctx context.Context, identity *domain.ExternalIdentity) (*domain.User, error)
}

// IdentityProvider turns an authorization code into a verified external identity.
type IdentityProvider interface {
	Exchange(ctx context.Context, code string) (*domain.ExternalIdentity, error)
}

type TeamRepository interface {
	ListUnpublishedTeams(ctx context.Context, cohortID uuid.UUID) ([]domain.Team, error)
	GetTeamByID(ctx context.Context, teamID uuid.UUID) (*domain.Team, error)
	GetLeaderID(ctx context.Context, teamID uuid.UUID) (uuid.UUID, error)
	CreateTeamWithLeader(ctx context.Context, newTeam domain.NewTeam) (*domain.Team, error)
	AddMember(ctx context.Context, teamID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error
	SetPublished(ctx context.Context, teamID uuid.UUID, published bool) (*domain.Team, error)
	Disband(ctx context.Context, teamID uuid.UUID) (*domain.Team, error)
}

type NoticeRepository interface {
	CreateNotice(ctx context.Context, teamID, postedBy uuid.UUID, message string) (*domain.Notice, error)
	GetNoticeByID(ctx context.Context, noticeID uuid.UUID) (*domain.Notice, error)
	ListNoticesByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Notice, error)
	UpdateNoticeMessage(ctx context.Context, noticeID uuid.UUID, message string) (*domain.Notice, error)
	DeleteNotice(ctx context.Context, noticeID uuid.UUID) error
}

// LeaderChecker is the shared authorization primitive for leader-only actions.
type LeaderChecker interface {
	IsTeamLeader(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
}

type CohortRepository interface {
	ListCohorts(ctx context.Context) ([]domain.Cohort, error)
	ListCohortsForUser(ctx context.Context, userID uuid.UUID) ([]domain.Cohort, error)
}

type RosterRepository interface {
	ImportRoster(ctx context.Context, roster *domain.Roster) (*domain.ImportResult, error)
}
