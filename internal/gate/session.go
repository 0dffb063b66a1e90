package gate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
	apperrors "github.com/framevault/studio-gate/internal/errors"
	"github.com/framevault/studio-gate/internal/ports"
)

// Resolution is the result of a successful session resolution.
// Refreshed is non-nil when the provider issued a new credential that must be
// written back to the browser so it does not repeat the refresh next request.
type Resolution struct {
	Identity  domainauth.Identity
	Refreshed *domainauth.Session
}

// SessionResolver turns raw request cookies into a verified identity,
// with at most one refresh retry against the identity provider.
//
// Every failure path degrades to an unauthenticated error, never to a
// partially trusted identity. Callers cannot distinguish "provider
// unreachable" from "session invalid"; the distinction lives in logs only.
type SessionResolver struct {
	Provider ports.IdentityProvider
	Limiter  ports.RefreshLimiter // optional; nil disables refresh limiting
	Logger   *slog.Logger
}

// NewSessionResolver constructs a SessionResolver.
func NewSessionResolver(provider ports.IdentityProvider, logger *slog.Logger) *SessionResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionResolver{Provider: provider, Logger: logger}
}

// Resolve validates sess and returns the bound identity.
// Protocol: one validate, then on failure exactly one refresh followed by one
// final validate. At most two validate calls and one refresh call total.
// path is used for diagnostics only.
func (r *SessionResolver) Resolve(ctx context.Context, sess domainauth.Session, path string) (*Resolution, error) {
	if sess.Absent() {
		return nil, apperrors.Unauthenticated("read_cookies", nil)
	}

	identity, err := r.Provider.Validate(ctx, sess)
	if err == nil {
		return &Resolution{Identity: identity}, nil
	}
	r.warn(ctx, "session validation failed", path, "validate", err)

	if sess.RefreshToken == "" {
		return nil, apperrors.Unauthenticated("validate", err)
	}

	if r.Limiter != nil && !r.Limiter.Allow(ctx, refreshKey(sess)) {
		r.warn(ctx, "session refresh rate limited", path, "refresh", nil)
		return nil, apperrors.Unauthenticated("refresh", nil)
	}

	refreshed, err := r.Provider.Refresh(ctx, sess)
	if err != nil {
		r.warn(ctx, "session refresh failed", path, "refresh", err)
		return nil, apperrors.Unauthenticated("refresh", err)
	}

	identity, err = r.Provider.Validate(ctx, refreshed)
	if err != nil {
		r.warn(ctx, "post-refresh validation failed", path, "revalidate", err)
		return nil, apperrors.Unauthenticated("revalidate", err)
	}

	return &Resolution{Identity: identity, Refreshed: &refreshed}, nil
}

func (r *SessionResolver) warn(ctx context.Context, msg, path, step string, err error) {
	attrs := []any{
		slog.String("path", path),
		slog.String("step", step),
	}
	if err != nil {
		attrs = append(attrs,
			slog.Any("error", err),
			slog.String("error_code", string(apperrors.CodeOf(err))),
		)
	}
	r.Logger.WarnContext(ctx, msg, attrs...)
}

// refreshKey derives a stable, non-reversible limiter key from the session's
// refresh credential. The raw token never reaches Redis.
func refreshKey(sess domainauth.Session) string {
	sum := sha256.Sum256([]byte(sess.RefreshToken))
	return hex.EncodeToString(sum[:8])
}
