package gotrue

// Package gotrue implements the IdentityProvider port against a GoTrue-style
// HTTP identity provider (user endpoint + refresh-token grant), the shape
// exposed by Supabase-compatible auth services.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
	apperrors "github.com/framevault/studio-gate/internal/errors"
)

// Provider implements ports.IdentityProvider over HTTP.
type Provider struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

// ProviderConfig holds configuration for the GoTrue provider.
type ProviderConfig struct {
	// URL is the provider base URL (no trailing slash required).
	URL string
	// AnonKey is the provider's public API key, sent on every request.
	AnonKey string
	// Timeout bounds each round-trip. Defaults to 10s.
	Timeout time.Duration
	// HTTPClient is optional; when set, Timeout is ignored.
	HTTPClient *http.Client
}

// NewProvider creates a GoTrue provider. URL and AnonKey are required; their
// absence is a configuration error, not a per-user auth failure.
func NewProvider(cfg ProviderConfig) (*Provider, error) {
	if cfg.URL == "" {
		return nil, apperrors.Configuration("identity provider URL is required")
	}
	if cfg.AnonKey == "" {
		return nil, apperrors.Configuration("identity provider anon key is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Provider{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		httpClient: httpClient,
	}, nil
}

// Validate fetches the user bound to the session's access token.
func (p *Provider) Validate(ctx context.Context, sess domainauth.Session) (domainauth.Identity, error) {
	if sess.AccessToken == "" {
		return domainauth.Identity{}, apperrors.Unauthenticated("validate", errors.New("no access token"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("build user request: %w", err)
	}
	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Authorization", "Bearer "+sess.AccessToken)

	body, err := p.do(req, "validate")
	if err != nil {
		return domainauth.Identity{}, err
	}

	return identityFromUserPayload(body)
}

// Refresh exchanges the refresh token for a new session.
func (p *Provider) Refresh(ctx context.Context, sess domainauth.Session) (domainauth.Session, error) {
	if sess.RefreshToken == "" {
		return domainauth.Session{}, apperrors.Unauthenticated("refresh", errors.New("no refresh token"))
	}

	payload, err := json.Marshal(map[string]string{"refresh_token": sess.RefreshToken})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/auth/v1/token?grant_type=refresh_token", bytes.NewReader(payload))
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Content-Type", "application/json")

	body, err := p.do(req, "refresh")
	if err != nil {
		return domainauth.Session{}, err
	}

	var token struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return domainauth.Session{}, fmt.Errorf("decode refresh response: %w", err)
	}
	if token.AccessToken == "" {
		return domainauth.Session{}, apperrors.Unauthenticated("refresh", errors.New("empty access token in refresh response"))
	}

	refreshed := domainauth.Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if refreshed.RefreshToken == "" {
		// Providers that do not rotate keep the old refresh token valid.
		refreshed.RefreshToken = sess.RefreshToken
	}
	return refreshed, nil
}

// do executes the request and classifies failures: auth-status responses map
// to Unauthenticated, everything else (network, 5xx) to ProviderTransient.
func (p *Provider) do(req *http.Request, step string) ([]byte, error) {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ProviderTransient(step, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.ProviderTransient(step, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusBadRequest:
		return nil, apperrors.Unauthenticated(step,
			fmt.Errorf("provider returned status %d", resp.StatusCode))
	default:
		return nil, apperrors.ProviderTransient(step,
			fmt.Errorf("provider returned status %d", resp.StatusCode))
	}
}

// identityFromUserPayload maps the user endpoint's JSON into a domain
// identity, keeping the full decoded payload as the raw claim bag.
func identityFromUserPayload(body []byte) (domainauth.Identity, error) {
	var claims map[string]any
	if err := json.Unmarshal(body, &claims); err != nil {
		return domainauth.Identity{}, fmt.Errorf("decode user payload: %w", err)
	}

	identity := domainauth.Identity{
		UserID: stringClaim(claims, "id"),
		Email:  stringClaim(claims, "email"),
		Claims: claims,
	}
	if identity.UserID == "" {
		return domainauth.Identity{}, apperrors.Unauthenticated("validate", errors.New("user payload has no id"))
	}

	meta, _ := claims["app_metadata"].(map[string]any)
	identity.Role = domainauth.Role(stringClaim(meta, "role"))
	identity.ClientID = stringClaim(meta, "client_id")

	return identity, nil
}

func stringClaim(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
