package gate

// Package gate implements the request-time authentication, session-refresh,
// and tenant-scoping pipeline that fronts every protected request.

import "strings"

// RouteCategory is the three-way classification driving the gatekeeper.
type RouteCategory string

const (
	// RoutePublic requires no authentication at all.
	RoutePublic RouteCategory = "public"
	// RouteAuthOnly is reachable without a session, but an authenticated
	// user is redirected to their landing page instead.
	RouteAuthOnly RouteCategory = "auth_only"
	// RouteProtected requires a verified identity and a tenant context.
	RouteProtected RouteCategory = "protected"
)

// RouteTable is the static path table a Classifier evaluates against.
// It is configured at build time and never mutated afterwards.
type RouteTable struct {
	// PublicPaths are exact-match public paths.
	PublicPaths []string
	// PublicPrefixes are public path prefixes (segment-aware).
	PublicPrefixes []string
	// AuthOnlyPrefixes hold the login/registration surface.
	AuthOnlyPrefixes []string
	// ProtectedPrefixes are listed for documentation and explicit matching;
	// any path matching nothing at all is Protected anyway.
	ProtectedPrefixes []string
}

// DefaultRouteTable returns the route table for the studio application.
func DefaultRouteTable() RouteTable {
	return RouteTable{
		PublicPaths:    []string{"/", "/register", "/healthz", "/favicon.ico"},
		PublicPrefixes: []string{"/gallery", "/static", "/auth"},
		AuthOnlyPrefixes: []string{
			"/login",
		},
		ProtectedPrefixes: []string{
			"/photographer", "/admin", "/super-admin", "/setup",
		},
	}
}

// Classifier categorizes request paths against a static route table.
// Classify is a pure, total function: no side effects, no errors.
type Classifier struct {
	table RouteTable
}

// NewClassifier creates a Classifier over the given table.
func NewClassifier(table RouteTable) Classifier {
	return Classifier{table: table}
}

// Classify returns the category for path. Paths matching no table entry
// default to RouteProtected: unknown paths must not bypass authentication.
func (c Classifier) Classify(path string) RouteCategory {
	for _, p := range c.table.AuthOnlyPrefixes {
		if hasPathPrefix(path, p) {
			return RouteAuthOnly
		}
	}
	for _, p := range c.table.PublicPaths {
		if path == p {
			return RoutePublic
		}
	}
	for _, p := range c.table.PublicPrefixes {
		if hasPathPrefix(path, p) {
			return RoutePublic
		}
	}
	// Everything else, listed or not, is protected (fail-closed).
	return RouteProtected
}

// hasPathPrefix matches on whole path segments so "/adminX" does not
// match the "/admin" prefix.
func hasPathPrefix(path, prefix string) bool {
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+"/")
}
