package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the identity provider backing the gatekeeper.
type AuthMode string

const (
	// AuthModeGoTrue uses a GoTrue-style HTTP identity provider
	// (validate via the user endpoint, refresh via the token endpoint).
	AuthModeGoTrue AuthMode = "gotrue"
	// AuthModeOIDC verifies access tokens locally against the provider's
	// JWKS and refreshes via the standard OAuth2 refresh-token grant.
	AuthModeOIDC AuthMode = "oidc"
	// AuthModeMock uses a config-driven local provider (development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "gotrue", "oidc", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: gotrue, oidc, mock)", v)
	}
}

// ProviderConfig contains identity provider connection settings.
// URL and AnonKey are required whenever Mode is not mock; their absence is a
// fatal startup condition, validated in bootstrap.
type ProviderConfig struct {
	// URL is the base URL of the identity provider.
	URL string `env:"URL"`

	// AnonKey is the provider's public (anon) API key, sent on every call.
	AnonKey string `env:"ANON_KEY"`

	// ClientID and ClientSecret are used by the OIDC mode's refresh grant.
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`

	// Timeout bounds each provider round-trip. The request context still
	// applies; this is a hard per-call ceiling.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// DevAuthConfig controls the mock identity used when AUTH_MODE=mock.
type DevAuthConfig struct {
	UserID   string `env:"USER_ID"   envDefault:"dev-user"`
	Email    string `env:"EMAIL"     envDefault:"dev@example.com"`
	Role     string `env:"ROLE"      envDefault:"admin"`
	ClientID string `env:"CLIENT_ID" envDefault:"dev-studio"`
}

// AuthConfig groups all authentication and tenancy configuration.
type AuthConfig struct {
	// Mode determines which identity provider adapter to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"gotrue"`

	// Provider configuration (used when Mode=gotrue or Mode=oidc).
	Provider ProviderConfig `envPrefix:"IDENTITY_PROVIDER_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// TenantClaimPath is a JMESPath expression evaluated against the raw
	// claim bag to extract the tenant (client) identifier.
	TenantClaimPath string `env:"TENANT_CLAIM_PATH" envDefault:"app_metadata.client_id"`

	// RefreshLimit caps session refresh attempts per credential within
	// RefreshWindow. Zero disables the limiter.
	RefreshLimit  int           `env:"REFRESH_LIMIT"  envDefault:"30"`
	RefreshWindow time.Duration `env:"REFRESH_WINDOW" envDefault:"1m"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.Provider.Timeout <= 0 {
		a.Provider.Timeout = 10 * time.Second
	}
	if a.RefreshLimit < 0 {
		a.RefreshLimit = 0
	}
	if a.RefreshWindow <= 0 {
		a.RefreshWindow = time.Minute
	}
	if strings.TrimSpace(a.TenantClaimPath) == "" {
		a.TenantClaimPath = "app_metadata.client_id"
	}
}
