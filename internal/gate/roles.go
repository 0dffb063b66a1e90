package gate

import (
	"fmt"

	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
)

// LandingPath maps a role to its landing page. Used only when an already
// authenticated identity hits an auth-only route, so a logged-in user never
// re-sees the login screen.
//
// The mapping is total over the closed role enum; an unrecognized role claim
// is an error, never a silent default.
func LandingPath(role domainauth.Role) (string, error) {
	switch role {
	case domainauth.RoleSuperAdmin:
		return "/super-admin", nil
	case domainauth.RoleAdmin, domainauth.RoleStudioAdmin:
		return "/admin", nil
	case domainauth.RolePhotographer:
		return "/photographer", nil
	case domainauth.RoleGuest:
		return "/gallery", nil
	default:
		return "", fmt.Errorf("no landing path for role %q", role)
	}
}
