package dto

import "time"

type NoticeDTO struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"teamId"`
	Message   string    `json:"message"`
	PostedBy  string    `json:"postedBy"`
	CreatedAt time.Time `json:"createdAt"`
}
