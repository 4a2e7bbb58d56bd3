package service

import (
	"context"
	"fmt"
	"strings"

	"teabag/internal/domain"
	"teabag/internal/my_errors"

	"github.com/google/uuid"
)

const maxNoticeLength = 2000

type NoticeService struct {
	noticeRepo NoticeRepository
	leaders    LeaderChecker
}

func NewNoticeService(noticeRepo NoticeRepository, leaders LeaderChecker) *NoticeService {
	return &NoticeService{
		noticeRepo: noticeRepo,
		leaders:    leaders,
	}
}

func (s *NoticeService) CreateNotice(ctx context.Context, teamID, postedBy uuid.UUID, message string) (*domain.Notice, error) {
	if teamID == uuid.Nil {
		return nil, fmt.Errorf("teamId: %w", my_errors.ErrEmptyField)
	}
	message, err := normalizeMessage(message, postedBy)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, teamID, postedBy); err != nil {
		return nil, err
	}

	notice, err := s.noticeRepo.CreateNotice(ctx, teamID, postedBy, message)
	if err != nil {
		return nil, fmt.Errorf("failed to create notice: %w", err)
	}
	return notice, nil
}

// ListNotices returns the team's notices oldest first; no notices is an empty list.
func (s *NoticeService) ListNotices(ctx context.Context, teamID uuid.UUID) ([]domain.Notice, error) {
	if teamID == uuid.Nil {
		return nil, fmt.Errorf("teamId: %w", my_errors.ErrEmptyField)
	}

	notices, err := s.noticeRepo.ListNoticesByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	return notices, nil
}

// UpdateNotice replaces the notice's message. Leadership is checked against
// the team the notice belongs to.
func (s *NoticeService) UpdateNotice(ctx context.Context, noticeID, postedBy uuid.UUID, message string) (*domain.Notice, error) {
	message, err := normalizeMessage(message, postedBy)
	if err != nil {
		return nil, err
	}

	notice, err := s.noticeRepo.GetNoticeByID(ctx, noticeID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, notice.TeamID, postedBy); err != nil {
		return nil, err
	}

	return s.noticeRepo.UpdateNoticeMessage(ctx, noticeID, message)
}

func (s *NoticeService) DeleteNotice(ctx context.Context, noticeID, postedBy uuid.UUID) error {
	if postedBy == uuid.Nil {
		return fmt.Errorf("postedBy: %w", my_errors.ErrEmptyField)
	}

	notice, err := s.noticeRepo.GetNoticeByID(ctx, noticeID)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, notice.TeamID, postedBy); err != nil {
		return err
	}

	return s.noticeRepo.DeleteNotice(ctx, noticeID)
}

func (s *NoticeService) authorize(ctx context.Context, teamID, postedBy uuid.UUID) error {
	isLeader, err := s.leaders.IsTeamLeader(ctx, teamID, postedBy)
	if err != nil {
		return err
	}
	if !isLeader {
		return fmt.Errorf("%w", my_errors.ErrNotTeamLeader)
	}
	return nil
}

func normalizeMessage(message string, postedBy uuid.UUID) (string, error) {
	if postedBy == uuid.Nil {
		return "", fmt.Errorf("postedBy: %w", my_errors.ErrEmptyField)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("message: %w", my_errors.ErrEmptyField)
	}
	if len([]rune(message)) > maxNoticeLength {
		return "", fmt.Errorf("message longer than %d characters: %w", maxNoticeLength, my_errors.ErrInvalidInput)
	}
	return message, nil
}
