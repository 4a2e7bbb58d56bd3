package handler

import (
	"context"
	"net/http"

	"teabag/internal/domain"
	"teabag/internal/dto"
	"teabag/internal/mapper"
	"teabag/internal/middleware"
	"teabag/internal/request"
	"teabag/internal/response"

	"github.com/go-playground/validator/v10"
)

type AuthService interface {
	SignIn(ctx context.Context, code string) (*domain.User, *domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.User, *domain.TokenPair, error)
	SignOut(ctx context.Context, refreshToken string) error
}

type AuthHandler struct {
	authService AuthService
	validator   *validator.Validate
	cookies     CookieConfig
}

func NewAuthHandler(authService AuthService, validator *validator.Validate, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		cookies:     cookies,
	}
}

// SignIn godoc
// @Summary Sign in with Google
// @Description Exchange a Google authorization code for accessToken and refreshToken cookies
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request.SignInRequest true "Authorization code"
// @Success 200 {object} response.UserResponse "Signed in"
// @Failure 400 {object} dto.ErrorResponse "Invalid code"
// @Failure 409 {object} dto.ErrorResponse "Email linked to another Google account"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/sign-in [post]
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req request.SignInRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	user, pair, err := h.authService.SignIn(r.Context(), req.Code)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	h.cookies.setAuthCookies(w, pair)
	respondJSON(w, http.StatusOK, response.UserResponse{User: mapper.MapDomainUserToDTO(user)})
}

// SignOut godoc
// @Summary Sign out
// @Description Revoke the refresh token and clear auth cookies
// @Tags Auth
// @Produce json
// @Success 200 {object} response.SignOutResponse "Signed out"
// @Failure 400 {object} dto.ErrorResponse "Refresh token cookie missing"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/sign-out [post]
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := refreshCookie(w, r)
	if !ok {
		return
	}

	if err := h.authService.SignOut(r.Context(), token); err != nil {
		respondServiceError(w, r, err)
		return
	}

	h.cookies.clearAuthCookies(w)
	respondJSON(w, http.StatusOK, response.SignOutResponse{Success: true})
}

// RefreshTokens godoc
// @Summary Rotate auth tokens
// @Description Validate the refresh token cookie and issue a new token pair
// @Tags Auth
// @Produce json
// @Success 200 {object} response.UserResponse "Tokens rotated"
// @Failure 400 {object} dto.ErrorResponse "Refresh token cookie missing"
// @Failure 401 {object} dto.ErrorResponse "Invalid, expired or revoked token"
// @Failure 404 {object} dto.ErrorResponse "User no longer exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/refresh-tokens [post]
func (h *AuthHandler) RefreshTokens(w http.ResponseWriter, r *http.Request) {
	token, ok := refreshCookie(w, r)
	if !ok {
		return
	}

	user, pair, err := h.authService.Refresh(r.Context(), token)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	h.cookies.setAuthCookies(w, pair)
	respondJSON(w, http.StatusOK, response.UserResponse{User: mapper.MapDomainUserToDTO(user)})
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} response.UserResponse "Signed-in user"
// @Failure 401 {object} dto.ErrorResponse "Unauthenticated"
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, response.UserResponse{User: mapper.MapDomainUserToDTO(user)})
}

func refreshCookie(w http.ResponseWriter, r *http.Request) (string, bool) {
	cookie, err := r.Cookie(middleware.RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "refresh token cookie is missing")
		return "", false
	}
	return cookie.Value, true
}
