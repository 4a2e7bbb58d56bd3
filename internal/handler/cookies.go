package handler

import (
	"net/http"
	"time"

	"teabag/internal/domain"
	"teabag/internal/middleware"
)

// CookieConfig controls the auth cookie attributes. Secure also switches
// SameSite from Lax to Strict.
type CookieConfig struct {
	Secure bool
	Domain string
}

func (c CookieConfig) sameSite() http.SameSite {
	if c.Secure {
		return http.SameSiteStrictMode
	}
	return http.SameSiteLaxMode
}

func (c CookieConfig) cookie(name, value string, expires time.Time) *http.Cookie {
	maxAge := int(time.Until(expires).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.sameSite(),
	}
}

func (c CookieConfig) setAuthCookies(w http.ResponseWriter, pair *domain.TokenPair) {
	http.SetCookie(w, c.cookie(middleware.AccessTokenCookie, pair.AccessToken, pair.AccessExpiresAt))
	http.SetCookie(w, c.cookie(middleware.RefreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresAt))
}

func (c CookieConfig) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(middleware.AccessTokenCookie, "", time.Unix(0, 0)))
	http.SetCookie(w, c.cookie(middleware.RefreshTokenCookie, "", time.Unix(0, 0)))
}
