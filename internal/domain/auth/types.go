package auth

// Package auth contains domain-level types for identities, sessions, and
// tenancy. It is pure and free of framework/adapter concerns.

import (
	"fmt"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and claims mapping.
// Valid values are defined as constants below.
type Role string

const (
	RoleGuest        Role = "guest"
	RolePhotographer Role = "photographer"
	RoleStudioAdmin  Role = "studio-admin"
	RoleAdmin        Role = "admin"
	RoleSuperAdmin   Role = "super-admin"
)

// ParseRole converts a raw role claim into a closed Role value.
// Unknown values are an error so callers fail loudly instead of silently
// defaulting.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleGuest, RolePhotographer, RoleStudioAdmin, RoleAdmin, RoleSuperAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role claim %q", raw)
	}
}

// Identity represents the verified principal returned by the identity
// provider. Adapters map provider-specific claims into this shape.
// It is immutable once issued and held only for the duration of one request.
type Identity struct {
	UserID    string // stable user identifier (sub)
	Email     string
	Role      Role           // raw role claim; validated by the role router
	ClientID  string         // tenant claim, empty when the user has none
	Claims    map[string]any // raw claim bag as returned by the provider
	ExpiresAt time.Time      // absolute expiry from the provider token
}

// Session is the cookie-borne credential a browser presents on each request.
// It is owned by the browser and the identity provider; this service only
// reads it, and replaces it in place after a successful refresh.
type Session struct {
	AccessToken  string
	RefreshToken string
}

// Absent reports whether the request carried no session material at all.
func (s Session) Absent() bool {
	return s.AccessToken == "" && s.RefreshToken == ""
}

// TenantContext identifies the tenant a request is scoped to.
// Exactly one TenantContext accompanies every forwarded protected request,
// and it is always derived from the verified identity, never from the caller.
type TenantContext struct {
	ClientID string
}
