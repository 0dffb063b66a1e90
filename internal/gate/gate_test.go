package gate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framevault/studio-gate/internal/audit"
	domainauth "github.com/framevault/studio-gate/internal/domain/auth"
	apperrors "github.com/framevault/studio-gate/internal/errors"
)

// fakeProvider is a hand-rolled IdentityProvider for pipeline tests.
type fakeProvider struct {
	mu            sync.Mutex
	validateCalls int
	refreshCalls  int

	validateFunc func(sess domainauth.Session) (domainauth.Identity, error)
	refreshFunc  func(sess domainauth.Session) (domainauth.Session, error)
}

func (f *fakeProvider) Validate(_ context.Context, sess domainauth.Session) (domainauth.Identity, error) {
	f.mu.Lock()
	f.validateCalls++
	f.mu.Unlock()
	return f.validateFunc(sess)
}

func (f *fakeProvider) Refresh(_ context.Context, sess domainauth.Session) (domainauth.Session, error) {
	f.mu.Lock()
	f.refreshCalls++
	f.mu.Unlock()
	if f.refreshFunc == nil {
		return domainauth.Session{}, errors.New("unexpected refresh call")
	}
	return f.refreshFunc(sess)
}

// captureRecorder collects audit events synchronously for assertions.
type captureRecorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (c *captureRecorder) Record(ev audit.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *captureRecorder) last(t *testing.T) audit.Event {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.events) == 0 {
		t.Fatal("no audit events recorded")
	}
	return c.events[len(c.events)-1]
}

type gateHarness struct {
	gatekeeper *Gatekeeper
	provider   *fakeProvider
	recorder   *captureRecorder
	downstream *downstreamSpy
}

type downstreamSpy struct {
	called  bool
	request *http.Request
}

func (d *downstreamSpy) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.called = true
		d.request = r
		w.WriteHeader(http.StatusOK)
	})
}

func newGateHarness(t *testing.T, provider *fakeProvider) *gateHarness {
	t.Helper()
	tenants, err := NewTenantResolver("app_metadata.client_id")
	require.NoError(t, err)

	recorder := &captureRecorder{}
	g := NewGatekeeper(Options{
		Routes:   NewClassifier(DefaultRouteTable()),
		Sessions: NewSessionResolver(provider, slog.Default()),
		Tenants:  tenants,
		Cookies:  CookieCodec{},
		Audit:    recorder,
		Logger:   slog.Default(),
	})
	return &gateHarness{
		gatekeeper: g,
		provider:   provider,
		recorder:   recorder,
		downstream: &downstreamSpy{},
	}
}

func (h *gateHarness) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.gatekeeper.Middleware(h.downstream.handler()).ServeHTTP(w, req)
	return w
}

func withSession(req *http.Request, sess domainauth.Session) *http.Request {
	if sess.AccessToken != "" {
		req.AddCookie(&http.Cookie{Name: AccessCookieName, Value: sess.AccessToken})
	}
	if sess.RefreshToken != "" {
		req.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: sess.RefreshToken})
	}
	return req
}

func TestGatePublicPassthroughNoAuthCheck(t *testing.T) {
	provider := &fakeProvider{
		validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
			return domainauth.Identity{}, errors.New("must not be called")
		},
	}
	h := newGateHarness(t, provider)

	for _, path := range []string{"/", "/gallery/xyz"} {
		h.downstream.called = false
		w := h.serve(httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, "path %q", path)
		assert.True(t, h.downstream.called, "path %q must pass through", path)
	}
	assert.Zero(t, provider.validateCalls, "public routes perform no auth check at all")
}

func TestGateProtectedNoSessionRedirectsToLogin(t *testing.T) {
	provider := &fakeProvider{
		validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
			return domainauth.Identity{}, errors.New("must not be called")
		},
	}
	h := newGateHarness(t, provider)

	w := h.serve(httptest.NewRequest(http.MethodGet, "/photographer/sessions", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.False(t, h.downstream.called)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, LoginPath, loc.Path)
	assert.Equal(t, "/photographer/sessions", loc.Query().Get("redirectTo"))
	assert.Equal(t, audit.OutcomeRedirectLogin, h.recorder.last(t).Outcome)
}

// The redirect must preserve the original path byte-for-byte through the
// query round-trip, including characters that need encoding.
func TestGateRedirectPreservesPathExactly(t *testing.T) {
	provider := &fakeProvider{
		validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
			return domainauth.Identity{}, apperrors.Unauthenticated("validate", errors.New("bad"))
		},
	}
	h := newGateHarness(t, provider)

	paths := []string{
		"/admin/clients",
		"/admin/clients/ann%20smith", // pre-encoded path segment
		"/admin/a%2Fb",               // encoded slash must not widen into a separator
		"/photographer/a+b",
	}
	for _, raw := range paths {
		req := httptest.NewRequest(http.MethodGet, raw, nil)
		w := h.serve(withSession(req, domainauth.Session{AccessToken: "x"}))

		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, raw, loc.Query().Get("redirectTo"), "raw %q", raw)
	}
}

func TestGateAuthOnlyUnauthenticatedRendersNormally(t *testing.T) {
	provider := &fakeProvider{
		validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
			return domainauth.Identity{}, apperrors.Unauthenticated("validate", errors.New("expired"))
		},
	}
	h := newGateHarness(t, provider)

	req := withSession(httptest.NewRequest(http.MethodGet, "/login", nil),
		domainauth.Session{AccessToken: "stale"})
	w := h.serve(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, h.downstream.called, "login page must render for unauthenticated users")
}

func TestGateAuthOnlyAuthenticatedRedirectsByRole(t *testing.T) {
	tests := []struct {
		role     domainauth.Role
		expected string
	}{
		{role: domainauth.RoleAdmin, expected: "/admin"},
		{role: domainauth.RoleSuperAdmin, expected: "/super-admin"},
		{role: domainauth.RolePhotographer, expected: "/photographer"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			provider := &fakeProvider{
				validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
					return domainauth.Identity{UserID: "user-1", Role: tt.role}, nil
				},
			}
			h := newGateHarness(t, provider)

			req := withSession(httptest.NewRequest(http.MethodGet, "/login", nil),
				domainauth.Session{AccessToken: "good"})
			w := h.serve(req)

			assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
			assert.Equal(t, tt.expected, w.Header().Get("Location"))
			assert.False(t, h.downstream.called)
		})
	}
}

func TestGateAuthOnlyUnknownRoleFallsBackToRoot(t *testing.T) {
	provider := &fakeProvider{
		validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
			return domainauth.Identity{UserID: "user-1", Role: "owner"}, nil
		},
	}
	h := newGateHarness(t, provider)

	req := withSession(httptest.NewRequest(http.MethodGet, "/login", nil),
		domainauth.Session{AccessToken: "good"})
	w := h.serve(req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

// Expired session on a protected route: first validate fails, refresh
// succeeds, second validate succeeds. The request forwards with the tenant
// header and the refreshed cookies, not a redirect.
func TestGateExpiredSessionRefreshAndForward(t *testing.T) {
	fresh := domainauth.Session{AccessToken: "fresh", RefreshToken: "r2"}
	provider := &fakeProvider{
		validateFunc: func(sess domainauth.Session) (domainauth.Identity, error) {
			if sess.AccessToken != "fresh" {
				return domainauth.Identity{}, apperrors.Unauthenticated("validate", errors.New("expired"))
			}
			return domainauth.Identity{
				UserID:   "user-1",
				Role:     domainauth.RoleAdmin,
				ClientID: "acme",
				Claims:   map[string]any{"app_metadata": map[string]any{"client_id": "acme"}},
			}, nil
		},
		refreshFunc: func(domainauth.Session) (domainauth.Session, error) {
			return fresh, nil
		},
	}
	h := newGateHarness(t, provider)

	req := withSession(httptest.NewRequest(http.MethodGet, "/admin/clients", nil),
		domainauth.Session{AccessToken: "expired", RefreshToken: "r1"})
	w := h.serve(req)

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, h.downstream.called)
	assert.Equal(t, "acme", h.downstream.request.Header.Get(TenantHeader))
	assert.Equal(t, 2, provider.validateCalls)
	assert.Equal(t, 1, provider.refreshCalls)

	cookies := w.Result().Cookies()
	byName := map[string]string{}
	for _, ck := range cookies {
		byName[ck.Name] = ck.Value
	}
	assert.Equal(t, "fresh", byName[AccessCookieName])
	assert.Equal(t, "r2", byName[RefreshCookieName])

	ev := h.recorder.last(t)
	assert.Equal(t, audit.OutcomeForwarded, ev.Outcome)
	assert.Equal(t, "acme", ev.ClientID)
}

// A spoofed tenant header on the inbound request must be replaced with the
// identity-derived tenant before the request reaches a handler.
func TestGateTenantHeaderNeverCallerControlled(t *testing.T) {
	provider := &fakeProvider{
		validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
			return domainauth.Identity{UserID: "user-1", Role: domainauth.RoleAdmin, ClientID: "acme"}, nil
		},
	}
	h := newGateHarness(t, provider)

	req := withSession(httptest.NewRequest(http.MethodGet, "/admin/clients", nil),
		domainauth.Session{AccessToken: "good"})
	req.Header.Set(TenantHeader, "victim-studio")
	w := h.serve(req)

	require.Equal(t, http.StatusOK, w.Code)
	values := h.downstream.request.Header.Values(TenantHeader)
	require.Len(t, values, 1)
	assert.Equal(t, "acme", values[0])
}

func TestGateSelfTenantFallbackForwards(t *testing.T) {
	provider := &fakeProvider{
		validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
			// No tenant claim anywhere: the user is their own tenant.
			return domainauth.Identity{UserID: "solo-user", Role: domainauth.RolePhotographer}, nil
		},
	}
	h := newGateHarness(t, provider)

	req := withSession(httptest.NewRequest(http.MethodGet, "/photographer", nil),
		domainauth.Session{AccessToken: "good"})
	w := h.serve(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "solo-user", h.downstream.request.Header.Get(TenantHeader))
}

func TestGateMissingTenantRedirectsToSetup(t *testing.T) {
	provider := &fakeProvider{
		validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
			// Defensive branch: identity with no user id at all.
			return domainauth.Identity{Role: domainauth.RolePhotographer}, nil
		},
	}
	h := newGateHarness(t, provider)

	req := withSession(httptest.NewRequest(http.MethodGet, "/photographer", nil),
		domainauth.Session{AccessToken: "good"})
	w := h.serve(req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, SetupPath, w.Header().Get("Location"))
	assert.False(t, h.downstream.called)
	assert.Equal(t, audit.OutcomeRedirectSetup, h.recorder.last(t).Outcome)
}

// A tenant-less identity already on the provisioning page must be let
// through, not bounced back to it.
func TestGateMissingTenantOnSetupPageForwards(t *testing.T) {
	provider := &fakeProvider{
		validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
			return domainauth.Identity{Role: domainauth.RolePhotographer}, nil
		},
	}
	h := newGateHarness(t, provider)

	req := withSession(httptest.NewRequest(http.MethodGet, SetupPath, nil),
		domainauth.Session{AccessToken: "good"})
	w := h.serve(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, h.downstream.called, "setup page must render instead of redirect-looping")
	assert.Equal(t, audit.OutcomeForwarded, h.recorder.last(t).Outcome)
}

// Refreshed cookies must reach the browser even when the terminal state is a
// redirect, so the browser does not repeat the refresh on the next request.
func TestGateRefreshedCookiesSurviveRoleRedirect(t *testing.T) {
	fresh := domainauth.Session{AccessToken: "fresh", RefreshToken: "r2"}
	provider := &fakeProvider{
		validateFunc: func(sess domainauth.Session) (domainauth.Identity, error) {
			if sess.AccessToken != "fresh" {
				return domainauth.Identity{}, apperrors.Unauthenticated("validate", errors.New("expired"))
			}
			return domainauth.Identity{UserID: "user-1", Role: domainauth.RoleAdmin}, nil
		},
		refreshFunc: func(domainauth.Session) (domainauth.Session, error) {
			return fresh, nil
		},
	}
	h := newGateHarness(t, provider)

	req := withSession(httptest.NewRequest(http.MethodGet, "/login", nil),
		domainauth.Session{AccessToken: "expired", RefreshToken: "r1"})
	w := h.serve(req)

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))

	byName := map[string]string{}
	for _, ck := range w.Result().Cookies() {
		byName[ck.Name] = ck.Value
	}
	assert.Equal(t, "fresh", byName[AccessCookieName])
}

func TestGateUnknownPathRequiresAuth(t *testing.T) {
	provider := &fakeProvider{
		validateFunc: func(domainauth.Session) (domainauth.Identity, error) {
			return domainauth.Identity{}, apperrors.Unauthenticated("validate", errors.New("no session"))
		},
	}
	h := newGateHarness(t, provider)

	w := h.serve(httptest.NewRequest(http.MethodGet, "/totally/unknown", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.False(t, h.downstream.called)
}
