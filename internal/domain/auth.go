package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExternalIdentity is the verified assertion returned by the identity provider.
type ExternalIdentity struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

// RefreshToken is the server-side record of an issued refresh token, keyed by its jti.
type RefreshToken struct {
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
	ID        uuid.UUID
	UserID    uuid.UUID
}

func (t *RefreshToken) Usable(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}

type TokenPair struct {
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	AccessToken      string
	RefreshToken     string
}
