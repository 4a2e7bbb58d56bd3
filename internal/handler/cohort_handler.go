package handler

import (
	"context"
	"net/http"

	"teabag/internal/domain"
	"teabag/internal/mapper"
)

type CohortService interface {
	ListCohorts(ctx context.Context, requester *domain.User) ([]domain.Cohort, error)
}

type CohortHandler struct {
	service CohortService
}

func NewCohortHandler(service CohortService) *CohortHandler {
	return &CohortHandler{service: service}
}

// ListCohorts godoc
// @Summary List cohorts
// @Description Admins see every cohort, users the cohorts they belong to
// @Tags Cohorts
// @Produce json
// @Security CookieAuth
// @Success 200 {array} dto.CohortDTO "Cohorts"
// @Failure 401 {object} dto.ErrorResponse "Unauthenticated"
// @Router /cohorts [get]
func (h *CohortHandler) ListCohorts(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	cohorts, err := h.service.ListCohorts(r.Context(), user)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainCohortsToDTO(cohorts))
}
