package jwt

import (
	"errors"
	"fmt"
	"time"

	"teabag/internal/my_errors"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

type Claims struct {
	jwt.RegisteredClaims
	UserID string    `json:"user_id"`
	Type   TokenType `json:"typ"`
}

// Issued is a signed token together with the claims it carries.
type Issued struct {
	Token     string
	ID        uuid.UUID
	ExpiresAt time.Time
}

func GenerateToken(userID uuid.UUID, tokenType TokenType, secret string, ttl time.Duration, now time.Time) (*Issued, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret: %w", my_errors.ErrEmptyField)
	}

	jti := uuid.New()
	expiresAt := now.UTC().Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now.UTC()),
		},
		UserID: userID.String(),
		Type:   tokenType,
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Issued{
		Token:     tokenString,
		ID:        jti,
		ExpiresAt: expiresAt,
	}, nil
}

// ParseToken verifies signature, expiry and token type. Every failure wraps ErrInvalidToken.
func ParseToken(tokenString string, secret string, expected TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) && validationErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, fmt.Errorf("token expired: %w", my_errors.ErrInvalidToken)
		}
		return nil, fmt.Errorf("failed to parse token: %v: %w", err, my_errors.ErrInvalidToken)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w", my_errors.ErrInvalidToken)
	}

	if claims.Type != expected {
		return nil, fmt.Errorf("expected %s token, got %q: %w", expected, claims.Type, my_errors.ErrInvalidToken)
	}

	return claims, nil
}

func (c *Claims) UserUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("user_id claim: %w", my_errors.ErrInvalidToken)
	}
	return id, nil
}

func (c *Claims) TokenUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("jti claim: %w", my_errors.ErrInvalidToken)
	}
	return id, nil
}
