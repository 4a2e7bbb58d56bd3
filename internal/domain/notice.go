package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notice struct {
	CreatedAt time.Time `json:"createdAt"`
	Message   string    `json:"message"`
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"teamId"`
	PostedBy  uuid.UUID `json:"postedBy"`
}
