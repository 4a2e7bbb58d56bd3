package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"teabag/internal/domain"
	"teabag/internal/dto"
	"teabag/internal/my_errors"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}

type contextKey string

const userKey contextKey = "user"

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user attached by AuthMiddleware.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}

// AuthMiddleware resolves the access token from the accessToken cookie, or
// from an Authorization: Bearer header, into the current user.
func AuthMiddleware(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := accessToken(r)
			if token == "" {
				respondError(w, http.StatusUnauthorized, dto.ErrorResponse{
					Error: "missing access token",
					Code:  dto.ErrCodeUnauthenticated,
				})
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, my_errors.ErrInvalidToken) || errors.Is(err, my_errors.ErrUnauthenticated) {
					respondError(w, http.StatusUnauthorized, dto.ErrorResponse{
						Error: "invalid or expired token",
						Code:  dto.ErrCodeUnauthenticated,
					})
					return
				}
				slog.Error("failed to authenticate request", "error", err)
				respondError(w, http.StatusInternalServerError, dto.ErrorResponse{
					Error: "internal server error",
					Code:  dto.ErrCodeInternal,
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				respondError(w, http.StatusUnauthorized, dto.ErrorResponse{
					Error: my_errors.ErrUnauthenticated.Error(),
					Code:  dto.ErrCodeUnauthenticated,
				})
				return
			}
			if !user.IsAdmin() {
				respondError(w, http.StatusForbidden, dto.ErrorResponse{
					Error: my_errors.ErrAdminRequired.Error(),
					Code:  dto.ErrCodeForbidden,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func accessToken(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func respondError(w http.ResponseWriter, status int, errResp dto.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		slog.Warn("failed to encode JSON response", "error", err)
	}
}
