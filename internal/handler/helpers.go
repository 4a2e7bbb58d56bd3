package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"teabag/internal/domain"
	"teabag/internal/dto"
	"teabag/internal/middleware"
	"teabag/internal/my_errors"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const maxJSONBodyBytes = 1 << 20

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings is checked in order; the first sentinel matched wins.
var errorMappings = []errorMapping{
	{my_errors.ErrInvalidInput, http.StatusBadRequest, dto.ErrCodeBadRequest},
	{my_errors.ErrEmptyField, http.StatusBadRequest, dto.ErrCodeBadRequest},
	{my_errors.ErrInvalidCSV, http.StatusBadRequest, dto.ErrCodeBadRequest},
	{my_errors.ErrNoValidRows, http.StatusBadRequest, dto.ErrCodeBadRequest},
	{my_errors.ErrIdentityExchange, http.StatusBadRequest, dto.ErrCodeBadRequest},

	{my_errors.ErrUnauthenticated, http.StatusUnauthorized, dto.ErrCodeUnauthenticated},
	{my_errors.ErrInvalidToken, http.StatusUnauthorized, dto.ErrCodeUnauthenticated},

	{my_errors.ErrForbidden, http.StatusForbidden, dto.ErrCodeForbidden},
	{my_errors.ErrNotTeamLeader, http.StatusForbidden, dto.ErrCodeForbidden},
	{my_errors.ErrAdminRequired, http.StatusForbidden, dto.ErrCodeForbidden},

	{my_errors.ErrUserNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
	{my_errors.ErrTeamNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
	{my_errors.ErrNoticeNotFound, http.StatusNotFound, dto.ErrCodeNotFound},
	{my_errors.ErrCohortNotFound, http.StatusNotFound, dto.ErrCodeNotFound},

	{my_errors.ErrActiveTeamExists, http.StatusConflict, dto.ErrCodeConflict},
	{my_errors.ErrAlreadyTeamMember, http.StatusConflict, dto.ErrCodeConflict},
	{my_errors.ErrTeamNotRecruiting, http.StatusConflict, dto.ErrCodeConflict},
	{my_errors.ErrTeamDisbanded, http.StatusConflict, dto.ErrCodeConflict},
	{my_errors.ErrLeaderCannotLeave, http.StatusConflict, dto.ErrCodeConflict},
	{my_errors.ErrIdentityMismatch, http.StatusConflict, dto.ErrCodeConflict},
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondWithError(w, status, &dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func respondWithError(w http.ResponseWriter, status int, errResp *dto.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errResp); err != nil {
		slog.Warn("failed to encode error response", "error", err)
	}
}

// respondServiceError translates a service error into its HTTP status. The
// client sees only the sentinel's message; unknown errors are logged and
// reported as a generic 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			slog.Debug("request failed", "path", r.URL.Path, "error", err)
			respondError(w, m.status, m.code, m.err.Error())
			return
		}
	}

	slog.Error("internal error",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	respondError(w, http.StatusInternalServerError, dto.ErrCodeInternal, "internal server error")
}

// currentUser writes a 401 and returns false when the request is anonymous.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, dto.ErrCodeUnauthenticated, my_errors.ErrUnauthenticated.Error())
		return nil, false
	}
	return user, true
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "validation error: "+err.Error())
		return false
	}
	return true
}
