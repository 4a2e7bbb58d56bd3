package dto

import "time"

type TeamDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CohortID    string     `json:"cohortId"`
	LeaderID    string     `json:"leaderId"`
	IsPublished bool       `json:"isPublished"`
	CreatedAt   time.Time  `json:"createdAt"`
	DisbandedAt *time.Time `json:"disbandedAt"`
}

// TeamMemberDTO is one membership row of a team.
type TeamMemberDTO struct {
	MembershipID string    `json:"membershipId"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	JoinedAt     time.Time `json:"joinedAt"`
}

type TeamDetailsDTO struct {
	TeamDTO
	Members []TeamMemberDTO `json:"members"`
}
