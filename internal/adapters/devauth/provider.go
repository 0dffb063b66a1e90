package devauth

// Package devauth provides a simple, config-driven IdentityProvider for local
// development. It accepts a fixed token pair and returns the configured
// identity, so the full gate pipeline can run without a real provider.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
	apperrors "github.com/framevault/studio-gate/internal/errors"
)

// Well-known dev credentials. Anything else is rejected, which makes the
// redirect-to-login path exercisable locally too.
const (
	DevAccessToken  = "dev-access"
	DevRefreshToken = "dev-refresh"
)

// Config controls the dev identity.
type Config struct {
	UserID   string
	Email    string
	Role     string
	ClientID string
}

// Provider implements ports.IdentityProvider for local development.
type Provider struct {
	identity domainauth.Identity
}

// NewProvider constructs a dev provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}

	claims := map[string]any{
		"id":    cfg.UserID,
		"email": cfg.Email,
		"app_metadata": map[string]any{
			"role":      cfg.Role,
			"client_id": cfg.ClientID,
		},
	}
	return &Provider{
		identity: domainauth.Identity{
			UserID:    cfg.UserID,
			Email:     cfg.Email,
			Role:      domainauth.Role(cfg.Role),
			ClientID:  cfg.ClientID,
			Claims:    claims,
			ExpiresAt: time.Now().Add(8 * time.Hour),
		},
	}, nil
}

// Validate returns the configured identity when the dev access token is presented.
func (p *Provider) Validate(_ context.Context, sess domainauth.Session) (domainauth.Identity, error) {
	if sess.AccessToken != DevAccessToken {
		return domainauth.Identity{}, apperrors.Unauthenticated("validate", errors.New("not the dev access token"))
	}
	return p.identity, nil
}

// Refresh accepts the dev refresh token and re-issues the dev session.
func (p *Provider) Refresh(_ context.Context, sess domainauth.Session) (domainauth.Session, error) {
	if sess.RefreshToken != DevRefreshToken {
		return domainauth.Session{}, apperrors.Unauthenticated("refresh", errors.New("not the dev refresh token"))
	}
	return domainauth.Session{AccessToken: DevAccessToken, RefreshToken: DevRefreshToken}, nil
}
