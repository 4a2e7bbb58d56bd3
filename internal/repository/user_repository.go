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

const userColumns = `id, google_id, email, name, role, created_at, updated_at, last_login_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(
		&user.ID,
		&user.GoogleID,
		&user.Email,
		&user.Name,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	return &user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w", my_errors.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// TouchLogin stamps last_login_at for the user linked to googleID.
func (r *UserRepository) TouchLogin(ctx context.Context, googleID string) (*domain.User, error) {
	query := `
        UPDATE users
        SET last_login_at = NOW(), updated_at = NOW()
        WHERE google_id = $1
        RETURNING ` + userColumns
	user, err := scanUser(r.pool.QueryRow(ctx, query, googleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w", my_errors.ErrUserNotFound)
		}
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	return user, nil
}

// UpsertGoogleUser creates the user on first sign-in or links a roster-provisioned
// row with the same email. An already linked google_id is never overwritten.
func (r *UserRepository) UpsertGoogleUser(ctx context.Context, identity *domain.ExternalIdentity) (*domain.User, error) {
	query := `
        INSERT INTO users (google_id, email, name, last_login_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (email) DO UPDATE
        SET google_id     = COALESCE(users.google_id, EXCLUDED.google_id),
            name          = CASE WHEN users.name = '' THEN EXCLUDED.name ELSE users.name END,
            last_login_at = NOW(),
            updated_at    = NOW()
        RETURNING ` + userColumns
	user, err := scanUser(r.pool.QueryRow(ctx, query, identity.Subject, identity.Email, identity.Name))
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return nil, fmt.Errorf("google_id already linked: %w", my_errors.ErrIdentityMismatch)
		}
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}

// insertEmails bulk-inserts roster users, skipping emails that already exist.
// Returns the emails that were actually inserted.
func insertEmails(ctx context.Context, tx pgx.Tx, emails []string) ([]string, error) {
	query := `
        INSERT INTO users (email)
        SELECT DISTINCT unnest($1::text[])
        ON CONFLICT (email) DO NOTHING
        RETURNING email
    `
	rows, err := tx.Query(ctx, query, emails)
	if err != nil {
		return nil, fmt.Errorf("failed to insert users: %w", err)
	}
	inserted, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect inserted users: %w", err)
	}
	return inserted, nil
}
