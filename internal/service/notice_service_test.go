package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"teabag/internal/domain"
	"teabag/internal/my_errors"
	"teabag/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type noticeFixture struct {
	notices  *mockNoticeRepo
	teams    *mockTeamRepo
	svc      *service.NoticeService
	teamID   uuid.UUID
	leaderID uuid.UUID
	memberID uuid.UUID
}

// newNoticeFixture wires NoticeService to a real TeamService so leadership is
// resolved the same way as in production.
func newNoticeFixture() *noticeFixture {
	f := &noticeFixture{
		notices:  new(mockNoticeRepo),
		teams:    new(mockTeamRepo),
		teamID:   uuid.New(),
		leaderID: uuid.New(),
		memberID: uuid.New(),
	}
	f.teams.On("GetLeaderID", mock.Anything, f.teamID).Return(f.leaderID, nil)
	f.svc = service.NewNoticeService(f.notices, service.NewTeamService(f.teams))
	return f
}

func TestNoticeService_CreateNotice_ByLeader(t *testing.T) {
	f := newNoticeFixture()
	ctx := context.Background()
	want := &domain.Notice{ID: uuid.New(), TeamID: f.teamID, PostedBy: f.leaderID, Message: "standup at 10"}

	f.notices.On("CreateNotice", ctx, f.teamID, f.leaderID, "standup at 10").Return(want, nil).Once()

	notice, err := f.svc.CreateNotice(ctx, f.teamID, f.leaderID, "  standup at 10 ")
	require.NoError(t, err)
	assert.Equal(t, want, notice)
	f.notices.AssertExpectations(t)
}

func TestNoticeService_MutationsForbiddenForNonLeader(t *testing.T) {
	f := newNoticeFixture()
	ctx := context.Background()
	noticeID := uuid.New()
	f.notices.On("GetNoticeByID", ctx, noticeID).
		Return(&domain.Notice{ID: noticeID, TeamID: f.teamID, PostedBy: f.leaderID, Message: "hi"}, nil)

	for _, postedBy := range []uuid.UUID{f.memberID, uuid.New()} {
		_, err := f.svc.CreateNotice(ctx, f.teamID, postedBy, "hello")
		assert.ErrorIs(t, err, my_errors.ErrNotTeamLeader)

		_, err = f.svc.UpdateNotice(ctx, noticeID, postedBy, "edited")
		assert.ErrorIs(t, err, my_errors.ErrNotTeamLeader)

		err = f.svc.DeleteNotice(ctx, noticeID, postedBy)
		assert.ErrorIs(t, err, my_errors.ErrNotTeamLeader)
	}

	f.notices.AssertNotCalled(t, "CreateNotice", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.notices.AssertNotCalled(t, "UpdateNoticeMessage", mock.Anything, mock.Anything, mock.Anything)
	f.notices.AssertNotCalled(t, "DeleteNotice", mock.Anything, mock.Anything)
}

func TestNoticeService_CreateNotice_Validation(t *testing.T) {
	f := newNoticeFixture()
	ctx := context.Background()

	_, err := f.svc.CreateNotice(ctx, f.teamID, f.leaderID, "   ")
	assert.ErrorIs(t, err, my_errors.ErrEmptyField)

	_, err = f.svc.CreateNotice(ctx, uuid.Nil, f.leaderID, "hello")
	assert.ErrorIs(t, err, my_errors.ErrEmptyField)

	_, err = f.svc.CreateNotice(ctx, f.teamID, uuid.Nil, "hello")
	assert.ErrorIs(t, err, my_errors.ErrEmptyField)

	_, err = f.svc.CreateNotice(ctx, f.teamID, f.leaderID, strings.Repeat("a", 2001))
	assert.ErrorIs(t, err, my_errors.ErrInvalidInput)
}

func TestNoticeService_CreateNotice_MissingTeam(t *testing.T) {
	f := newNoticeFixture()
	ctx := context.Background()
	missing := uuid.New()
	f.teams.On("GetLeaderID", ctx, missing).Return(uuid.Nil, my_errors.ErrTeamNotFound).Once()

	_, err := f.svc.CreateNotice(ctx, missing, f.leaderID, "hello")
	assert.ErrorIs(t, err, my_errors.ErrTeamNotFound)
}

func TestNoticeService_UpdateNotice_ReplacesMessageOnly(t *testing.T) {
	f := newNoticeFixture()
	ctx := context.Background()
	created := time.Now().Add(-time.Hour)
	original := &domain.Notice{ID: uuid.New(), TeamID: f.teamID, PostedBy: f.leaderID, Message: "old", CreatedAt: created}
	updated := *original
	updated.Message = "new"

	f.notices.On("GetNoticeByID", ctx, original.ID).Return(original, nil).Once()
	f.notices.On("UpdateNoticeMessage", ctx, original.ID, "new").Return(&updated, nil).Once()

	got, err := f.svc.UpdateNotice(ctx, original.ID, f.leaderID, " new ")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Message)
	assert.Equal(t, original.TeamID, got.TeamID)
	assert.Equal(t, original.PostedBy, got.PostedBy)
	assert.Equal(t, created, got.CreatedAt)
	f.notices.AssertExpectations(t)
}

func TestNoticeService_UpdateNotice_NotFound(t *testing.T) {
	f := newNoticeFixture()
	ctx := context.Background()
	noticeID := uuid.New()

	f.notices.On("GetNoticeByID", ctx, noticeID).Return(nil, my_errors.ErrNoticeNotFound).Once()

	_, err := f.svc.UpdateNotice(ctx, noticeID, f.leaderID, "new")
	assert.ErrorIs(t, err, my_errors.ErrNoticeNotFound)
}

func TestNoticeService_DeleteNotice_ByLeader(t *testing.T) {
	f := newNoticeFixture()
	ctx := context.Background()
	noticeID := uuid.New()

	f.notices.On("GetNoticeByID", ctx, noticeID).
		Return(&domain.Notice{ID: noticeID, TeamID: f.teamID, PostedBy: f.leaderID}, nil).Once()
	f.notices.On("DeleteNotice", ctx, noticeID).Return(nil).Once()

	require.NoError(t, f.svc.DeleteNotice(ctx, noticeID, f.leaderID))
	f.notices.AssertExpectations(t)
}

func TestNoticeService_ListNotices_Empty(t *testing.T) {
	f := newNoticeFixture()
	ctx := context.Background()

	f.notices.On("ListNoticesByTeam", ctx, f.teamID).Return([]domain.Notice{}, nil).Once()

	notices, err := f.svc.ListNotices(ctx, f.teamID)
	require.NoError(t, err)
	assert.NotNil(t, notices)
	assert.Empty(t, notices)
}
