package request

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=1000"`
	CohortID    string `json:"cohortId" validate:"required,uuid"`
}

type PublishTeamRequest struct {
	IsPublished *bool `json:"isPublished" validate:"required"`
}
