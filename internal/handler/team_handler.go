package handler

import (
	"context"
	"net/http"

	"teabag/internal/domain"
	"teabag/internal/dto"
	"teabag/internal/mapper"
	"teabag/internal/request"
	"teabag/internal/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type TeamService interface {
	ListTeams(ctx context.Context, cohortID uuid.UUID) ([]domain.Team, error)
	GetTeam(ctx context.Context, teamID uuid.UUID) (*domain.Team, error)
	CreateTeam(ctx context.Context, requester *domain.User, name, description string, cohortID uuid.UUID) (*domain.Team, error)
	JoinTeam(ctx context.Context, requester *domain.User, teamID uuid.UUID) (*domain.Team, error)
	LeaveTeam(ctx context.Context, requester *domain.User, teamID uuid.UUID) error
	SetPublished(ctx context.Context, requester *domain.User, teamID uuid.UUID, published bool) (*domain.Team, error)
	DisbandTeam(ctx context.Context, requester *domain.User, teamID uuid.UUID) (*domain.Team, error)
}

type TeamHandler struct {
	service   TeamService
	validator *validator.Validate
}

func NewTeamHandler(service TeamService, validator *validator.Validate) *TeamHandler {
	return &TeamHandler{
		service:   service,
		validator: validator,
	}
}

// ListTeams godoc
// @Summary List unpublished teams of a cohort
// @Description Teams that are still unpublished and not disbanded
// @Tags Teams
// @Produce json
// @Security CookieAuth
// @Param cohortId query string true "Cohort ID"
// @Success 200 {array} dto.TeamDTO "Teams"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid cohortId"
// @Failure 401 {object} dto.ErrorResponse "Unauthenticated"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teams [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	cohortID, err := uuid.Parse(r.URL.Query().Get("cohortId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "cohortId query parameter must be a valid id")
		return
	}

	teams, err := h.service.ListTeams(r.Context(), cohortID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainTeamsToDTO(teams))
}

// GetTeam godoc
// @Summary Get team by id
// @Description Team attributes with one row per member
// @Tags Teams
// @Produce json
// @Security CookieAuth
// @Param id path string true "Team ID"
// @Success 200 {object} dto.TeamDetailsDTO "Team"
// @Failure 400 {object} dto.ErrorResponse "Invalid id"
// @Failure 401 {object} dto.ErrorResponse "Unauthenticated"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /teams/{id} [get]
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	team, err := h.service.GetTeam(r.Context(), teamID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainTeamToDetailsDTO(team))
}

// CreateTeam godoc
// @Summary Create a team
// @Description The caller becomes leader and first member. One active team per user per cohort.
// @Tags Teams
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body request.CreateTeamRequest true "Team"
// @Success 201 {object} dto.TeamDTO "Team created"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthenticated"
// @Failure 404 {object} dto.ErrorResponse "Cohort not found"
// @Failure 409 {object} dto.ErrorResponse "Already in an active team in this cohort"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateTeamRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	cohortID, err := uuid.Parse(req.CohortID)
	if err != nil {
		respondError(w, http.StatusBadRequest, dto.ErrCodeBadRequest, "invalid cohortId")
		return
	}

	team, err := h.service.CreateTeam(r.Context(), user, req.Name, req.Description, cohortID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, mapper.MapDomainTeamToDTO(team))
}

// JoinTeam godoc
// @Summary Join a team
// @Tags Teams
// @Produce json
// @Security CookieAuth
// @Param id path string true "Team ID"
// @Success 200 {object} dto.TeamDetailsDTO "Joined"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Failure 409 {object} dto.ErrorResponse "Already in a team, or team not recruiting"
// @Router /teams/{id}/join [post]
func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	team, err := h.service.JoinTeam(r.Context(), user, teamID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainTeamToDetailsDTO(team))
}

// LeaveTeam godoc
// @Summary Leave a team
// @Tags Teams
// @Produce json
// @Security CookieAuth
// @Param id path string true "Team ID"
// @Success 200 {object} response.MessageResponse "Left"
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Failure 409 {object} dto.ErrorResponse "Leader cannot leave"
// @Router /teams/{id}/leave [post]
func (h *TeamHandler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.LeaveTeam(r.Context(), user, teamID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, response.MessageResponse{Message: "Left team"})
}

// PublishTeam godoc
// @Summary Publish or unpublish a team (leader only)
// @Tags Teams
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Team ID"
// @Param request body request.PublishTeamRequest true "Publish flag"
// @Success 200 {object} dto.TeamDTO "Updated"
// @Failure 403 {object} dto.ErrorResponse "Not the leader"
// @Failure 409 {object} dto.ErrorResponse "Team disbanded"
// @Router /teams/{id}/publish [patch]
func (h *TeamHandler) PublishTeam(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.PublishTeamRequest
	if !decodeJSON(w, r, h.validator, &req) {
		return
	}

	team, err := h.service.SetPublished(r.Context(), user, teamID, *req.IsPublished)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainTeamToDTO(team))
}

// DisbandTeam godoc
// @Summary Disband a team (leader only)
// @Tags Teams
// @Produce json
// @Security CookieAuth
// @Param id path string true "Team ID"
// @Success 200 {object} dto.TeamDTO "Disbanded"
// @Failure 403 {object} dto.ErrorResponse "Not the leader"
// @Failure 409 {object} dto.ErrorResponse "Already disbanded"
// @Router /teams/{id}/disband [post]
func (h *TeamHandler) DisbandTeam(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	team, err := h.service.DisbandTeam(r.Context(), user, teamID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, mapper.MapDomainTeamToDTO(team))
}
