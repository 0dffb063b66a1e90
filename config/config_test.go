package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAuthModeUnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "gotrue", input: "gotrue", expected: AuthModeGoTrue},
		{name: "oidc", input: "oidc", expected: AuthModeOIDC},
		{name: "mock", input: "mock", expected: AuthModeMock},
		{name: "case insensitive", input: "GoTrue", expected: AuthModeGoTrue},
		{name: "invalid", input: "saml", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for input %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Errorf("got %q, want %q", mode, tt.expected)
			}
		})
	}
}

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeGoTrue {
		t.Errorf("default auth mode = %q, want gotrue", cfg.Auth.Mode)
	}
	if cfg.Auth.TenantClaimPath != "app_metadata.client_id" {
		t.Errorf("default tenant claim path = %q", cfg.Auth.TenantClaimPath)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("default addr = %q", cfg.HTTP.Addr)
	}
	if cfg.Audit.Enabled {
		t.Error("audit should be disabled without a database URL")
	}
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{
		Auth: AuthConfig{
			RefreshLimit:    -5,
			RefreshWindow:   -time.Second,
			TenantClaimPath: "   ",
		},
		Audit: AuditConfig{Enabled: true, Buffer: -1},
	}
	cfg.Sanitize()

	if cfg.Auth.RefreshLimit != 0 {
		t.Errorf("negative refresh limit should clamp to 0, got %d", cfg.Auth.RefreshLimit)
	}
	if cfg.Auth.RefreshWindow != time.Minute {
		t.Errorf("refresh window = %v, want 1m", cfg.Auth.RefreshWindow)
	}
	if cfg.Auth.TenantClaimPath != "app_metadata.client_id" {
		t.Errorf("blank claim path should fall back to default, got %q", cfg.Auth.TenantClaimPath)
	}
	if cfg.Audit.Buffer != 1024 {
		t.Errorf("audit buffer = %d, want 1024", cfg.Audit.Buffer)
	}
	if cfg.Audit.Enabled {
		t.Error("audit without database URL must be disabled")
	}
	if cfg.Auth.Provider.Timeout != 10*time.Second {
		t.Errorf("provider timeout = %v, want 10s", cfg.Auth.Provider.Timeout)
	}
}
