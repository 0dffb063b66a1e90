package gate

import (
	"fmt"
	"strings"

	jmespath "github.com/jmespath-community/go-jmespath"

	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
	apperrors "github.com/framevault/studio-gate/internal/errors"
)

// TenantResolver derives a tenant context from a verified identity.
//
// The tenant claim is extracted from the raw claim bag with a JMESPath
// expression compiled at construction time. Resolution is pure and never
// consults a database: it runs on the hot request path, and any tenant
// identifier inside the provider-signed claims is already trustworthy.
type TenantResolver struct {
	expr     jmespath.JMESPath
	exprText string
}

// NewTenantResolver compiles claimPath and returns a resolver.
// An invalid expression is a configuration error.
func NewTenantResolver(claimPath string) (*TenantResolver, error) {
	claimPath = strings.TrimSpace(claimPath)
	if claimPath == "" {
		return nil, apperrors.Configuration("tenant claim path is required")
	}
	expr, err := jmespath.Compile(claimPath)
	if err != nil {
		return nil, apperrors.Configurationf("invalid tenant claim path %q: %v", claimPath, err)
	}
	return &TenantResolver{expr: expr, exprText: claimPath}, nil
}

// Resolve returns the tenant context for identity.
//
// Rule: the configured tenant claim wins; a user without one is their own
// tenant (clientId = user id). This self-tenant fallback covers the
// single-studio bootstrap case and is deliberate, documented behavior.
// MissingTenant is returned only when the identity has no user id either,
// which indicates a provisioning bug upstream.
func (t *TenantResolver) Resolve(identity domainauth.Identity) (domainauth.TenantContext, error) {
	if clientID := t.claimValue(identity); clientID != "" {
		return domainauth.TenantContext{ClientID: clientID}, nil
	}

	// Self-tenant fallback.
	if identity.UserID != "" {
		return domainauth.TenantContext{ClientID: identity.UserID}, nil
	}

	return domainauth.TenantContext{}, apperrors.MissingTenant(
		fmt.Sprintf("identity has no %s claim and no user id", t.exprText))
}

func (t *TenantResolver) claimValue(identity domainauth.Identity) string {
	// The adapter may have extracted the claim already.
	if identity.ClientID != "" {
		return identity.ClientID
	}
	if identity.Claims == nil {
		return ""
	}
	v, err := t.expr.Search(identity.Claims)
	if err != nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
