package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"teabag/internal/domain"
	"teabag/internal/jwt"
	"teabag/internal/my_errors"

	"github.com/google/uuid"
)

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type AuthService struct {
	repo     AuthRepository
	userRepo UserRepository
	provider IdentityProvider
	tokens   TokenConfig
	now      func() time.Time
}

func NewAuthService(repo AuthRepository, userRepo UserRepository, provider IdentityProvider, tokens TokenConfig) *AuthService {
	return &AuthService{
		repo:     repo,
		userRepo: userRepo,
		provider: provider,
		tokens:   tokens,
		now:      time.Now,
	}
}

// SignIn exchanges a Google authorization code, resolves or provisions the
// user and issues a fresh token pair.
func (s *AuthService) SignIn(ctx context.Context, code string) (*domain.User, *domain.TokenPair, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil, fmt.Errorf("code: %w", my_errors.ErrEmptyField)
	}

	identity, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	identity.Email = strings.ToLower(strings.TrimSpace(identity.Email))
	if identity.Subject == "" || identity.Email == "" {
		return nil, nil, fmt.Errorf("identity without subject or email: %w", my_errors.ErrIdentityExchange)
	}
	if !identity.EmailVerified {
		return nil, nil, fmt.Errorf("email %s is not verified: %w", identity.Email, my_errors.ErrIdentityExchange)
	}

	user, err := s.userRepo.TouchLogin(ctx, identity.Subject)
	switch {
	case errors.Is(err, my_errors.ErrUserNotFound):
		user, err = s.userRepo.UpsertGoogleUser(ctx, identity)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to provision user: %w", err)
		}
		if user.GoogleID == nil || *user.GoogleID != identity.Subject {
			return nil, nil, fmt.Errorf("%w", my_errors.ErrIdentityMismatch)
		}
		slog.Info("user signed in for the first time", "user_id", user.ID)
	case err != nil:
		return nil, nil, fmt.Errorf("failed to record login: %w", err)
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Authenticate resolves an access token to a fresh user row.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w", my_errors.ErrUnauthenticated)
	}

	claims, err := jwt.ParseToken(accessToken, s.tokens.AccessSecret, jwt.TokenAccess)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	userID, err := claims.UserUUID()
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, my_errors.ErrUserNotFound) {
			return nil, fmt.Errorf("user no longer exists: %w", my_errors.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}

// Refresh validates a refresh token and rotates it: the presented token is
// consumed and a new pair is issued. Each refresh token is redeemable once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *domain.TokenPair, error) {
	if refreshToken == "" {
		return nil, nil, fmt.Errorf("refresh token: %w", my_errors.ErrEmptyField)
	}

	claims, err := jwt.ParseToken(refreshToken, s.tokens.RefreshSecret, jwt.TokenRefresh)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return nil, nil, err
	}
	tokenID, err := claims.TokenUUID()
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user: %w", err)
	}

	// the conditional update is the only gate; two refreshes racing on one token cannot both pass
	if err := s.repo.ConsumeRefreshToken(ctx, tokenID, userID); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// SignOut revokes the refresh token when it verifies. An unverifiable token
// is already useless, so it is not treated as an error.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("refresh token: %w", my_errors.ErrEmptyField)
	}

	claims, err := jwt.ParseToken(refreshToken, s.tokens.RefreshSecret, jwt.TokenRefresh)
	if err != nil {
		slog.Debug("sign-out with unverifiable refresh token", "error", err)
		return nil
	}

	tokenID, err := claims.TokenUUID()
	if err != nil {
		return nil
	}

	return s.repo.RevokeRefreshToken(ctx, tokenID)
}

func (s *AuthService) PruneExpiredTokens(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredRefreshTokens(ctx)
}

func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID) (*domain.TokenPair, error) {
	now := s.now()

	access, err := jwt.GenerateToken(userID, jwt.TokenAccess, s.tokens.AccessSecret, s.tokens.AccessTTL, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := jwt.GenerateToken(userID, jwt.TokenRefresh, s.tokens.RefreshSecret, s.tokens.RefreshTTL, now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.repo.SaveRefreshToken(ctx, refresh.ID, userID, refresh.ExpiresAt); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:      access.Token,
		AccessExpiresAt:  access.ExpiresAt,
		RefreshToken:     refresh.Token,
		RefreshExpiresAt: refresh.ExpiresAt,
	}, nil
}
