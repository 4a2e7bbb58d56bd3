package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"teabag/internal/domain"
	"teabag/internal/my_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuthRepository stores issued refresh tokens by jti so they can be revoked.
type AuthRepository struct {
	pool *pgxpool.Pool
}

func NewAuthRepository(pool *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{pool: pool}
}

func (r *AuthRepository) SaveRefreshToken(ctx context.Context, tokenID, userID uuid.UUID, expiresAt time.Time) error {
	query := `
        INSERT INTO refresh_tokens (id, user_id, expires_at)
        VALUES ($1, $2, $3)
    `
	_, err := r.pool.Exec(ctx, query, tokenID, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

func (r *AuthRepository) GetRefreshToken(ctx context.Context, tokenID uuid.UUID) (*domain.RefreshToken, error) {
	query := `
        SELECT id, user_id, expires_at, revoked_at, created_at
        FROM refresh_tokens
        WHERE id = $1
    `
	var token domain.RefreshToken
	err := r.pool.QueryRow(ctx, query, tokenID).Scan(
		&token.ID,
		&token.UserID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("refresh token not found: %w", my_errors.ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	return &token, nil
}

// RevokeRefreshToken marks the token revoked. Revoking twice is not an error.
func (r *AuthRepository) RevokeRefreshToken(ctx context.Context, tokenID uuid.UUID) error {
	query := `
        UPDATE refresh_tokens
        SET revoked_at = NOW()
        WHERE id = $1 AND revoked_at IS NULL
    `
	if _, err := r.pool.Exec(ctx, query, tokenID); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// ConsumeRefreshToken revokes a live token owned by userID in a single
// statement. A revoked, expired, foreign or unknown token yields ErrInvalidToken.
func (r *AuthRepository) ConsumeRefreshToken(ctx context.Context, tokenID, userID uuid.UUID) error {
	query := `
        UPDATE refresh_tokens
        SET revoked_at = NOW()
        WHERE id = $1 AND user_id = $2 AND revoked_at IS NULL AND expires_at > NOW()
    `
	tag, err := r.pool.Exec(ctx, query, tokenID, userID)
	if err != nil {
		return fmt.Errorf("failed to consume refresh token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("refresh token revoked, expired or unknown: %w", my_errors.ErrInvalidToken)
	}
	return nil
}

// DeleteExpiredRefreshTokens prunes tokens past their expiry.
func (r *AuthRepository) DeleteExpiredRefreshTokens(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
