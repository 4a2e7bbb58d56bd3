package handler

import (
	"context"
	"net/http"

	"teabag/internal/domain"
	"teabag/internal/dto"
	"teabag/internal/mapper"
	"teabag/internal/my_errors"
	"teabag/internal/request"
	"teabag/internal/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type NoticeService interface {
	CreateNotice(ctx context.Context, teamID, postedBy uuid.UUID, message string) (*domain.Notice, error)
	ListNotices(ctx context.Context, teamID uuid.UUID) ([]domain.Notice, error)
	UpdateNotice(ctx context.Context, noticeID, postedBy uuid.UUID, message string) (*domain.Notice, error)
	DeleteNotice(ctx context.Context, noticeID, postedBy uuid.UUID) error
}

type NoticeHandler struct {
	service   NoticeService
	validator *validator.Validate
}

func NewNoticeHandler(service NoticeService, validator *validator.Validate) *NoticeHandler {
	return &NoticeHandler{
		service:   service,
		validator: validator,
	}
}

// CreateNotice godoc
// @Summary Post a notice (team leader only)
// @Tags Notices
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body request.CreateNoticeRequest true "Notice"
// @Success 201 {object} dto.NoticeDTO "Notice created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notices [post]
func (h *NoticeHandler) CreateNotice(w http.ResponseWriter, r *http.Request) {
	var req request.CreateNoticeRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "invalid teamId")
		return
	}
	postedBy, ok := h.poster(w, r, req.PostedBy)
	if !ok {
		return
	}

	notice, err := h.service.CreateNotice(r.Context(), teamID, postedBy, req.Message)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapper.MapDomainNoticeToDTO(notice))
}

// ListNotices godoc
// @Summary List a team's notices
// @Description Oldest first; empty list when the team has none
// @Tags Notices
// @Produce json
// @Security CookieAuth
// @Param teamId path string true "Team ID"
// @Success 200 {array} dto.NoticeDTO "Notices"
// @Failure 400 {object} dto.ErrorResponse "Invalid team id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notices/{teamId} [get]
func (h *NoticeHandler) ListNotices(w http.ResponseWriter, r *http.Request) {
	teamID, ok := uuidParam(w, r, "teamId")
	if !ok {
		return
	}

	notices, err := h.service.ListNotices(r.Context(), teamID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainNoticesToDTO(notices))
}

// UpdateNotice godoc
// @Summary Edit a notice's message (team leader only)
// @Tags Notices
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Notice ID"
// @Param request body request.UpdateNoticeRequest true "New message"
// @Success 200 {object} dto.NoticeDTO "Notice updated"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notices/{id} [put]
func (h *NoticeHandler) UpdateNotice(w http.ResponseWriter, r *http.Request) {
	noticeID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.UpdateNoticeRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	postedBy, ok := h.poster(w, r, req.PostedBy)
	if !ok {
		return
	}

	notice, err := h.service.UpdateNotice(r.Context(), noticeID, postedBy, req.Message)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainNoticeToDTO(notice))
}

// DeleteNotice godoc
// @Summary Delete a notice (team leader only)
// @Tags Notices
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Notice ID"
// @Param request body request.DeleteNoticeRequest true "Poster"
// @Success 200 {object} response.MessageResponse "Notice deleted"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Not the team leader"
// @Failure 404 {object} dto.ErrorResponse "Notice not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notices/{id} [delete]
func (h *NoticeHandler) DeleteNotice(w http.ResponseWriter, r *http.Request) {
	noticeID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.DeleteNoticeRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	postedBy, ok := h.poster(w, r, req.PostedBy)
	if !ok {
		return
	}

	if err := h.service.DeleteNotice(r.Context(), noticeID, postedBy); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, response.MessageResponse{Message: "Notice deleted"})
}

// poster parses postedBy and requires it to be the signed-in user.
func (h *NoticeHandler) poster(w http.ResponseWriter, r *http.Request, raw string) (uuid.UUID, bool) {
	user, ok := currentUser(w, r)
	if !ok {
		return uuid.Nil, false
	}

	postedBy, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "invalid postedBy")
		return uuid.Nil, false
	}
	if postedBy != user.ID {
		respondError(w, http.StatusForbidden, dto.ErrCodeForbidden, my_errors.ErrForbidden.Error()+": postedBy must be the signed-in user")
		return uuid.Nil, false
	}
	return postedBy, true
}
