package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/gate.

import (
	"context"

	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
)

// IdentityProvider validates and refreshes browser sessions against an
// external identity provider. The gatekeeper depends only on this interface,
// so any concrete provider (GoTrue-style HTTP, OIDC/JWT, dev) can be
// substituted.
type IdentityProvider interface {
	// Validate fetches the identity bound to the session credential as-is.
	// It must not mutate the session. Failures are returned as-is; callers
	// decide whether to attempt a refresh.
	Validate(ctx context.Context, sess domainauth.Session) (domainauth.Identity, error)

	// Refresh exchanges the session's refresh credential for a new session.
	// The returned session replaces the old one in the browser's cookie jar.
	Refresh(ctx context.Context, sess domainauth.Session) (domainauth.Session, error)
}

// RefreshLimiter caps refresh attempts against the rate-limited identity
// provider. Implementations must fail open: a limiter outage never blocks
// authentication.
type RefreshLimiter interface {
	// Allow reports whether one more refresh may be attempted for key.
	Allow(ctx context.Context, key string) bool
}
