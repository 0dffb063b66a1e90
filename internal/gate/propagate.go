package gate

import (
	"context"
	"net/http"

	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
)

// TenantHeader is the single trusted channel by which tenant identity crosses
// into downstream handlers. Handlers must not accept a tenant id from any
// other source (body, query string, other headers).
const TenantHeader = "X-Tenant-Id"

// tenantKey is an unexported context key type to avoid collisions across packages.
type tenantKey struct{}

// identityKey carries the verified identity for in-process handlers.
type identityKey struct{}

// AttachTenant clones the inbound request and force-sets the tenant header,
// overwriting any caller-supplied value of the same header to prevent
// spoofing. The returned request also carries the tenant and identity in its
// context for in-process handlers.
func AttachTenant(r *http.Request, identity domainauth.Identity, tenant domainauth.TenantContext) *http.Request {
	ctx := context.WithValue(r.Context(), tenantKey{}, tenant)
	ctx = context.WithValue(ctx, identityKey{}, identity)

	out := r.Clone(ctx)
	out.Header.Set(TenantHeader, tenant.ClientID)
	return out
}

// TenantFromContext returns the tenant context and a boolean indicating presence.
func TenantFromContext(ctx context.Context) (domainauth.TenantContext, bool) {
	t, ok := ctx.Value(tenantKey{}).(domainauth.TenantContext)
	return t, ok
}

// IdentityFromContext returns the verified identity and a boolean indicating presence.
func IdentityFromContext(ctx context.Context) (domainauth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domainauth.Identity)
	return id, ok
}
