package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/framevault/studio-gate/config"
	"github.com/framevault/studio-gate/internal/adapters/devauth"
	"github.com/framevault/studio-gate/internal/adapters/gotrue"
	"github.com/framevault/studio-gate/internal/adapters/oidc"
	redisadapter "github.com/framevault/studio-gate/internal/adapters/redis"
	"github.com/framevault/studio-gate/internal/audit"
	"github.com/framevault/studio-gate/internal/gate"
	"github.com/framevault/studio-gate/internal/ports"
)

// GateConfig contains dependencies for building the gatekeeper.
type GateConfig struct {
	Config      *config.AppConfig
	RedisClient goredis.UniversalClient // optional
	Audit       audit.Recorder          // optional
	Logger      *slog.Logger
}

// BuildGatekeeper assembles the full gate pipeline from configuration.
// Configuration holes surface as errors; callers treat them as fatal.
func BuildGatekeeper(ctx context.Context, cfg GateConfig) (*gate.Gatekeeper, error) {
	if err := ValidateAuthConfig(cfg.Config); err != nil {
		return nil, err
	}

	provider, err := buildIdentityProvider(ctx, cfg.Config)
	if err != nil {
		return nil, err
	}

	resolver := gate.NewSessionResolver(provider, cfg.Logger)
	if cfg.RedisClient != nil && cfg.Config.Auth.RefreshLimit > 0 {
		resolver.Limiter = redisadapter.NewRefreshLimiter(redisadapter.RefreshLimiterOptions{
			Client: cfg.RedisClient,
			Limit:  cfg.Config.Auth.RefreshLimit,
			Window: cfg.Config.Auth.RefreshWindow,
			Logger: cfg.Logger,
		})
	}

	tenants, err := gate.NewTenantResolver(cfg.Config.Auth.TenantClaimPath)
	if err != nil {
		return nil, err
	}

	return gate.NewGatekeeper(gate.Options{
		Routes:   gate.NewClassifier(gate.DefaultRouteTable()),
		Sessions: resolver,
		Tenants:  tenants,
		Cookies: gate.CookieCodec{
			Domain: cfg.Config.HTTP.CookieDomain,
			Secure: cfg.Config.HTTP.CookieSecure && !cfg.Config.IsDev,
		},
		Audit:  cfg.Audit,
		Logger: cfg.Logger,
	}), nil
}

func buildIdentityProvider(ctx context.Context, cfg *config.AppConfig) (ports.IdentityProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:   cfg.Auth.DevAuth.UserID,
			Email:    cfg.Auth.DevAuth.Email,
			Role:     cfg.Auth.DevAuth.Role,
			ClientID: cfg.Auth.DevAuth.ClientID,
		})
		if err != nil {
			return nil, fmt.Errorf("build dev auth provider: %w", err)
		}
		return prov, nil

	case config.AuthModeOIDC:
		prov, err := oidc.NewProvider(ctx, oidc.ProviderConfig{
			IssuerURL:    cfg.Auth.Provider.URL,
			ClientID:     cfg.Auth.Provider.ClientID,
			ClientSecret: cfg.Auth.Provider.ClientSecret,
		})
		if err != nil {
			return nil, fmt.Errorf("build OIDC provider: %w", err)
		}
		return prov, nil

	default:
		prov, err := gotrue.NewProvider(gotrue.ProviderConfig{
			URL:     cfg.Auth.Provider.URL,
			AnonKey: cfg.Auth.Provider.AnonKey,
			Timeout: cfg.Auth.Provider.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("build gotrue provider: %w", err)
		}
		return prov, nil
	}
}
