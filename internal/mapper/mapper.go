package mapper

import (
	"fmt"

	"teabag/internal/domain"
	"teabag/internal/dto"
	"teabag/internal/response"
)

// User mappers
func MapDomainUserToDTO(user *domain.User) dto.UserDTO {
	return dto.UserDTO{
		ID:          user.ID.String(),
		Email:       user.Email,
		Name:        user.Name,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}
}

// Team mappers
func MapDomainTeamToDTO(team *domain.Team) dto.TeamDTO {
	return dto.TeamDTO{
		ID:          team.ID.String(),
		Name:        team.Name,
		Description: team.Description,
		CohortID:    team.CohortID.String(),
		LeaderID:    team.LeaderID.String(),
		IsPublished: team.IsPublished,
		CreatedAt:   team.CreatedAt,
		DisbandedAt: team.DisbandedAt,
	}
}

func MapDomainTeamsToDTO(teams []domain.Team) []dto.TeamDTO {
	result := make([]dto.TeamDTO, len(teams))
	for i := range teams {
		result[i] = MapDomainTeamToDTO(&teams[i])
	}
	return result
}

func MapDomainTeamToDetailsDTO(team *domain.Team) dto.TeamDetailsDTO {
	members := make([]dto.TeamMemberDTO, len(team.Members))
	for i, m := range team.Members {
		members[i] = dto.TeamMemberDTO{
			MembershipID: m.MembershipID.String(),
			UserID:       m.UserID.String(),
			Name:         m.Name,
			Email:        m.Email,
			JoinedAt:     m.JoinedAt,
		}
	}
	return dto.TeamDetailsDTO{
		TeamDTO: MapDomainTeamToDTO(team),
		Members: members,
	}
}

// Notice mappers
func MapDomainNoticeToDTO(notice *domain.Notice) dto.NoticeDTO {
	return dto.NoticeDTO{
		ID:        notice.ID.String(),
		TeamID:    notice.TeamID.String(),
		Message:   notice.Message,
		PostedBy:  notice.PostedBy.String(),
		CreatedAt: notice.CreatedAt,
	}
}

func MapDomainNoticesToDTO(notices []domain.Notice) []dto.NoticeDTO {
	result := make([]dto.NoticeDTO, len(notices))
	for i := range notices {
		result[i] = MapDomainNoticeToDTO(&notices[i])
	}
	return result
}

// Cohort mappers
func MapDomainCohortsToDTO(cohorts []domain.Cohort) []dto.CohortDTO {
	result := make([]dto.CohortDTO, len(cohorts))
	for i, c := range cohorts {
		result[i] = dto.CohortDTO{
			ID:        c.ID.String(),
			Name:      c.Name,
			CreatedAt: c.CreatedAt,
		}
	}
	return result
}

// Roster mapper
func MapImportResultToResponse(result *domain.ImportResult) response.UploadResponse {
	inserted := result.InsertedEmails
	if inserted == nil {
		inserted = []string{}
	}
	return response.UploadResponse{
		Message:          fmt.Sprintf("Inserted %d new users", len(inserted)),
		Parsed:           result.Parsed,
		Inserted:         len(inserted),
		Skipped:          result.Skipped,
		CohortsCreated:   result.CohortsCreated,
		MembershipsAdded: result.MembershipsAdded,
		InsertedEmails:   inserted,
	}
}
