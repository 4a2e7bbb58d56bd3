package oauth

import (
	"context"
	"errors"
	"fmt"

	"teabag/internal/domain"
	"teabag/internal/my_errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Issuer       string
}

// GoogleProvider exchanges authorization codes from the frontend's Google
// sign-in popup and verifies the returned id_token.
type GoogleProvider struct {
	oauth2   *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewGoogleProvider performs OIDC discovery against the issuer.
func NewGoogleProvider(ctx context.Context, cfg GoogleConfig) (*GoogleProvider, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover oidc provider %s: %w", cfg.Issuer, err)
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
	}

	return newGoogleProvider(oauthCfg, provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})), nil
}

func newGoogleProvider(cfg *oauth2.Config, verifier *oidc.IDTokenVerifier) *GoogleProvider {
	return &GoogleProvider{
		oauth2:   cfg,
		verifier: verifier,
	}
}

type googleClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*domain.ExternalIdentity, error) {
	if code == "" {
		return nil, fmt.Errorf("code: %w", my_errors.ErrEmptyField)
	}

	token, err := p.oauth2.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			// provider rejected the code itself
			return nil, fmt.Errorf("code exchange rejected: %v: %w", err, my_errors.ErrIdentityExchange)
		}
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("id_token not found in token response: %w", my_errors.ErrIdentityExchange)
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify id_token: %v: %w", err, my_errors.ErrIdentityExchange)
	}

	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to decode id_token claims: %v: %w", err, my_errors.ErrIdentityExchange)
	}

	return &domain.ExternalIdentity{
		Subject:       idToken.Subject,
		Email:         claims.Email,
		Name:          claims.Name,
		EmailVerified: claims.EmailVerified,
	}, nil
}
