package domain

import (
	"time"

	"github.com/google/uuid"
)

type Team struct {
	CreatedAt   time.Time    `json:"createdAt"`
	DisbandedAt *time.Time   `json:"disbandedAt,omitempty"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Members     []TeamMember `json:"members,omitempty"`
	ID          uuid.UUID    `json:"id"`
	CohortID    uuid.UUID    `json:"cohortId"`
	LeaderID    uuid.UUID    `json:"leaderId"`
	IsPublished bool         `json:"isPublished"`
}

// TeamMember is one flattened membership row of a team.
type TeamMember struct {
	JoinedAt     time.Time `json:"joinedAt"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MembershipID uuid.UUID `json:"membershipId"`
	UserID       uuid.UUID `json:"userId"`
}

func (t *Team) IsLeader(userID uuid.UUID) bool {
	return t.LeaderID == userID
}

func (t *Team) IsActive() bool {
	return t.DisbandedAt == nil
}

func (t *Team) HasMember(userID uuid.UUID) bool {
	for _, m := range t.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

type NewTeam struct {
	Name        string
	Description string
	CohortID    uuid.UUID
	LeaderID    uuid.UUID
}
