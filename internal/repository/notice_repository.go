package repository

import (
	"context"
	"errors"
	"fmt"

	"teabag/internal/domain"
	"teabag/internal/my_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const noticeColumns = `id, team_id, message, posted_by, created_at`

type NoticeRepository struct {
	pool *pgxpool.Pool
}

func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{pool: pool}
}

func scanNotice(row pgx.Row) (*domain.Notice, error) {
	var n domain.Notice
	if err := row.Scan(&n.ID, &n.TeamID, &n.Message, &n.PostedBy, &n.CreatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NoticeRepository) CreateNotice(ctx context.Context, teamID, postedBy uuid.UUID, message string) (*domain.Notice, error) {
	query := `
        INSERT INTO notices (team_id, posted_by, message)
        VALUES ($1, $2, $3)
        RETURNING ` + noticeColumns
	notice, err := scanNotice(r.pool.QueryRow(ctx, query, teamID, postedBy, message))
	if err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return nil, fmt.Errorf("%w", my_errors.ErrTeamNotFound)
		}
		return nil, fmt.Errorf("failed to create notice: %w", err)
	}
	return notice, nil
}

func (r *NoticeRepository) GetNoticeByID(ctx context.Context, noticeID uuid.UUID) (*domain.Notice, error) {
	query := `SELECT ` + noticeColumns + ` FROM notices WHERE id = $1`
	notice, err := scanNotice(r.pool.QueryRow(ctx, query, noticeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w", my_errors.ErrNoticeNotFound)
		}
		return nil, fmt.Errorf("failed to get notice: %w", err)
	}
	return notice, nil
}

// ListNoticesByTeam returns the team's notices oldest first.
func (r *NoticeRepository) ListNoticesByTeam(ctx context.Context, teamID uuid.UUID) ([]domain.Notice, error) {
	query := `
        SELECT ` + noticeColumns + `
        FROM notices
        WHERE team_id = $1
        ORDER BY created_at ASC, id ASC
    `
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	notices := []domain.Notice{}
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		notices = append(notices, *notice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notices: %w", err)
	}
	return notices, nil
}

// UpdateNoticeMessage replaces the message only.
func (r *NoticeRepository) UpdateNoticeMessage(ctx context.Context, noticeID uuid.UUID, message string) (*domain.Notice, error) {
	query := `
        UPDATE notices
        SET message = $2
        WHERE id = $1
        RETURNING ` + noticeColumns
	notice, err := scanNotice(r.pool.QueryRow(ctx, query, noticeID, message))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w", my_errors.ErrNoticeNotFound)
		}
		return nil, fmt.Errorf("failed to update notice: %w", err)
	}
	return notice, nil
}

func (r *NoticeRepository) DeleteNotice(ctx context.Context, noticeID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id = $1`, noticeID)
	if err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w", my_errors.ErrNoticeNotFound)
	}
	return nil
}
