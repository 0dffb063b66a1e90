package oidc

// Package oidc implements the IdentityProvider port for providers that issue
// JWT access tokens: validation verifies the token locally against the
// provider's JWKS, refresh uses the standard OAuth2 refresh-token grant.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
	apperrors "github.com/framevault/studio-gate/internal/errors"
)

// Provider implements ports.IdentityProvider using OIDC discovery.
type Provider struct {
	verifier    *gooidc.IDTokenVerifier
	oauthConfig *oauth2.Config
	httpClient  *http.Client
}

// ProviderConfig holds configuration for the OIDC provider.
type ProviderConfig struct {
	// IssuerURL is the provider base URL; discovery runs against it once at
	// startup.
	IssuerURL    string
	ClientID     string
	ClientSecret string
	// HTTPClient is optional, defaults to a 10s-timeout client.
	HTTPClient *http.Client
}

// NewProvider creates an OIDC provider. Discovery failure at startup is a
// configuration-level error: the service cannot authenticate anyone without it.
func NewProvider(ctx context.Context, cfg ProviderConfig) (*Provider, error) {
	if cfg.IssuerURL == "" {
		return nil, apperrors.Configuration("OIDC issuer URL is required")
	}
	if cfg.ClientID == "" {
		return nil, apperrors.Configuration("OIDC client ID is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	ctx = gooidc.ClientContext(ctx, httpClient)

	issuer := strings.TrimSuffix(cfg.IssuerURL, "/")
	op, err := gooidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}

	return &Provider{
		// Access tokens typically carry no client audience; aud is not a
		// useful check here.
		verifier: op.Verifier(&gooidc.Config{SkipClientIDCheck: true}),
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     op.Endpoint(),
		},
		httpClient: httpClient,
	}, nil
}

// Validate verifies the access token's signature and expiry against the
// provider's JWKS and maps its claims into a domain identity.
func (p *Provider) Validate(ctx context.Context, sess domainauth.Session) (domainauth.Identity, error) {
	if sess.AccessToken == "" {
		return domainauth.Identity{}, apperrors.Unauthenticated("validate", errors.New("no access token"))
	}

	ctx = gooidc.ClientContext(ctx, p.httpClient)
	token, err := p.verifier.Verify(ctx, sess.AccessToken)
	if err != nil {
		// Signature/expiry problems are the session's fault; anything that
		// smells like a failed JWKS fetch is the provider's.
		if ctx.Err() != nil {
			return domainauth.Identity{}, apperrors.ProviderTransient("validate", err)
		}
		return domainauth.Identity{}, apperrors.Unauthenticated("validate", err)
	}

	if token.Subject == "" {
		return domainauth.Identity{}, apperrors.Unauthenticated("validate", errors.New("token has no subject"))
	}

	var claims map[string]any
	if err := token.Claims(&claims); err != nil {
		return domainauth.Identity{}, fmt.Errorf("decode token claims: %w", err)
	}

	identity := domainauth.Identity{
		UserID:    token.Subject,
		Claims:    claims,
		ExpiresAt: token.Expiry,
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if meta, ok := claims["app_metadata"].(map[string]any); ok {
		if role, ok := meta["role"].(string); ok {
			identity.Role = domainauth.Role(role)
		}
		if clientID, ok := meta["client_id"].(string); ok {
			identity.ClientID = clientID
		}
	}
	return identity, nil
}

// Refresh exchanges the refresh token via the provider's token endpoint.
func (p *Provider) Refresh(ctx context.Context, sess domainauth.Session) (domainauth.Session, error) {
	if sess.RefreshToken == "" {
		return domainauth.Session{}, apperrors.Unauthenticated("refresh", errors.New("no refresh token"))
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	src := p.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: sess.RefreshToken})
	token, err := src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil &&
			retrieveErr.Response.StatusCode < http.StatusInternalServerError {
			return domainauth.Session{}, apperrors.Unauthenticated("refresh", err)
		}
		return domainauth.Session{}, apperrors.ProviderTransient("refresh", err)
	}

	refreshed := domainauth.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = sess.RefreshToken
	}
	return refreshed, nil
}
