package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"teabag/internal/domain"
	"teabag/internal/dto"
	"teabag/internal/mapper"
)

const rosterFormField = "file"

type RosterService interface {
	ImportRoster(ctx context.Context, file io.Reader) (*domain.ImportResult, error)
}

type AdminHandler struct {
	service        RosterService
	maxUploadBytes int64
}

func NewAdminHandler(service RosterService, maxUploadBytes int64) *AdminHandler {
	return &AdminHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadCSV godoc
// @Summary Upload a user roster (admin only)
// @Description CSV with an email column and optional cohort column. Existing emails are skipped.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Security CookieAuth
// @Param file formData file true "Roster CSV"
// @Success 200 {object} response.UploadResponse "Roster imported"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid file"
// @Failure 401 {object} dto.ErrorResponse "Unauthenticated"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 413 {object} dto.ErrorResponse "File too large"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/upload-csv [post]
func (h *AdminHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxUploadBytes {
		respondError(w, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "file is too large")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, dto.ErrCodePayloadTooLarge, "file is too large")
			return
		}
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "expected multipart form upload")
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			slog.Warn("failed to remove multipart temp files", "error", err)
		}
	}()

	file, header, err := r.FormFile(rosterFormField)
	if err != nil {
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if !isCSV(header.Filename, header.Header.Get("Content-Type")) {
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "only .csv files are accepted")
		return
	}

	result, err := h.service.ImportRoster(r.Context(), file)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapImportResultToResponse(result))
}

func isCSV(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return true
	}
	return strings.Contains(strings.ToLower(contentType), "csv")
}
