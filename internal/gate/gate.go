package gate

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/framevault/studio-gate/internal/audit"
	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
	apperrors "github.com/framevault/studio-gate/internal/errors"
)

// Default redirect targets.
const (
	LoginPath = "/login"
	SetupPath = "/setup"
)

// Gatekeeper composes the route classifier, session resolver, tenant
// resolver, role router, and context propagator into the per-request decision
// pipeline. Each execution is independent; the Gatekeeper holds no mutable
// state and identities are never cached across requests, so revocation takes
// effect on the very next request.
type Gatekeeper struct {
	Routes   Classifier
	Sessions *SessionResolver
	Tenants  *TenantResolver
	Cookies  CookieCodec
	Audit    audit.Recorder
	Logger   *slog.Logger
}

// Options groups dependencies for NewGatekeeper.
type Options struct {
	Routes   Classifier
	Sessions *SessionResolver
	Tenants  *TenantResolver
	Cookies  CookieCodec
	Audit    audit.Recorder // optional
	Logger   *slog.Logger
}

// NewGatekeeper constructs a Gatekeeper, filling in a nop audit recorder and
// the default logger when absent.
func NewGatekeeper(opts Options) *Gatekeeper {
	if opts.Audit == nil {
		opts.Audit = audit.NopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Gatekeeper{
		Routes:   opts.Routes,
		Sessions: opts.Sessions,
		Tenants:  opts.Tenants,
		Cookies:  opts.Cookies,
		Audit:    opts.Audit,
		Logger:   opts.Logger,
	}
}

// Middleware wraps next with the gate pipeline. Every branch is total: each
// request produces exactly one response, either a forward or a redirect,
// never both.
func (g *Gatekeeper) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		category := g.Routes.Classify(r.URL.Path)

		if category == RoutePublic {
			// No auth check at all on public routes.
			g.record(r, category, audit.OutcomePublicPass, "", domainauth.Identity{})
			next.ServeHTTP(w, r)
			return
		}

		resolution, err := g.Sessions.Resolve(r.Context(), g.Cookies.Read(r), r.URL.Path)
		if err != nil {
			g.handleUnauthenticated(w, r, next, category, err)
			return
		}
		identity := resolution.Identity

		// Refreshed credentials must reach the browser on every terminal
		// state, redirects included, so the refresh is not repeated.
		if resolution.Refreshed != nil {
			g.Cookies.Write(w, *resolution.Refreshed)
		}

		if category == RouteAuthOnly {
			g.redirectAuthenticated(w, r, identity)
			return
		}

		tenant, err := g.Tenants.Resolve(identity)
		if err != nil {
			g.Logger.ErrorContext(r.Context(), "tenant resolution failed",
				slog.String("path", r.URL.Path),
				slog.String("user_id", identity.UserID),
				slog.Any("error", err))
			if r.URL.Path == SetupPath {
				// Already on the provisioning page; redirecting again
				// would loop forever.
				g.record(r, category, audit.OutcomeForwarded, "missing_tenant", identity)
				next.ServeHTTP(w, r)
				return
			}
			g.record(r, category, audit.OutcomeRedirectSetup, "missing_tenant", identity)
			http.Redirect(w, r, SetupPath, http.StatusTemporaryRedirect)
			return
		}

		g.record(r, category, audit.OutcomeForwarded, "", identity)
		next.ServeHTTP(w, AttachTenant(r, identity, tenant))
	})
}

// handleUnauthenticated terminates the pipeline for requests without a usable
// session: protected routes bounce to login, auth-only routes render normally.
func (g *Gatekeeper) handleUnauthenticated(w http.ResponseWriter, r *http.Request, next http.Handler, category RouteCategory, err error) {
	if category == RouteAuthOnly {
		// Show the login/register page normally.
		g.record(r, category, audit.OutcomePublicPass, reason(err), domainauth.Identity{})
		next.ServeHTTP(w, r)
		return
	}
	g.record(r, category, audit.OutcomeRedirectLogin, reason(err), domainauth.Identity{})
	http.Redirect(w, r, loginRedirectURL(r.URL.EscapedPath()), http.StatusTemporaryRedirect)
}

// redirectAuthenticated sends a logged-in user away from the login surface to
// their role's landing page.
func (g *Gatekeeper) redirectAuthenticated(w http.ResponseWriter, r *http.Request, identity domainauth.Identity) {
	target, err := LandingPath(identity.Role)
	if err != nil {
		// Unrecognized role claim: loud error, fail closed toward the
		// public surface rather than guessing a landing page.
		g.Logger.ErrorContext(r.Context(), "unrecognized role claim",
			slog.String("path", r.URL.Path),
			slog.String("user_id", identity.UserID),
			slog.String("role", string(identity.Role)),
			slog.Any("error", err))
		target = "/"
	}
	g.record(r, RouteAuthOnly, audit.OutcomeRedirectRole, string(identity.Role), identity)
	http.Redirect(w, r, target, http.StatusTemporaryRedirect)
}

// loginRedirectURL builds the login redirect carrying the original request
// path. Callers pass the escaped path so encoded segments (including %2F)
// round-trip byte-for-byte through the query decode.
func loginRedirectURL(escapedPath string) string {
	q := url.Values{"redirectTo": {escapedPath}}
	return LoginPath + "?" + q.Encode()
}

func (g *Gatekeeper) record(r *http.Request, category RouteCategory, outcome audit.Outcome, why string, identity domainauth.Identity) {
	if g.Audit == nil {
		return
	}
	g.Audit.Record(audit.Event{
		Time:     time.Now().UTC(),
		Path:     r.URL.Path,
		Category: string(category),
		Outcome:  outcome,
		Reason:   why,
		UserID:   identity.UserID,
		ClientID: identity.ClientID,
	})
}

// reason renders an audit-safe failure tag: the failing step when known,
// otherwise the error code. Raw error text stays in logs, not the audit row.
func reason(err error) string {
	if err == nil {
		return ""
	}
	if step := apperrors.StepOf(err); step != "" {
		return step
	}
	return string(apperrors.CodeOf(err))
}
