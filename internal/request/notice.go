package request

type CreateNoticeRequest struct {
	TeamID   string `json:"teamId" validate:"required,uuid"`
	Message  string `json:"message" validate:"required,max=2000"`
	PostedBy string `json:"postedBy" validate:"required,uuid"`
}

type UpdateNoticeRequest struct {
	Message  string `json:"message" validate:"required,max=2000"`
	PostedBy string `json:"postedBy" validate:"required,uuid"`
}

type DeleteNoticeRequest struct {
	PostedBy string `json:"postedBy" validate:"required,uuid"`
}
