package httpx

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/framevault/studio-gate/internal/gate"
)

// AppHandlers hosts the thin application surface behind the gatekeeper.
// The real CRUD/UI lives in external services; these handlers exist so the
// service is runnable end to end and so the tenant-header contract is
// enforced at the boundary.
type AppHandlers struct {
	Logger *slog.Logger
}

// Whoami reports the authenticated principal and tenant for any protected
// path. The gatekeeper guarantees the tenant header on everything that
// reaches a handler; its absence here is an internal error, not an auth error.
func (h *AppHandlers) Whoami(w http.ResponseWriter, r *http.Request) {
	tenantID := r.Header.Get(gate.TenantHeader)
	if tenantID == "" {
		h.Logger.ErrorContext(r.Context(), "protected request reached handler without tenant header",
			slog.String("path", r.URL.Path))
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "missing_tenant_header",
			Err:     errors.New("tenant context was not propagated"),
		})
		return
	}

	identity, _ := gate.IdentityFromContext(r.Context())
	WriteJSON(w, http.StatusOK, map[string]string{
		"user_id":   identity.UserID,
		"email":     identity.Email,
		"role":      string(identity.Role),
		"client_id": tenantID,
	})
}

// Login renders a minimal login page. The gatekeeper only lets
// unauthenticated users this far; authenticated ones were already redirected
// to their landing page.
func (h *AppHandlers) Login(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, `<!doctype html><title>Sign in</title><h1>Sign in</h1>`)
}

// Setup renders the tenant provisioning entrypoint.
func (h *AppHandlers) Setup(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, `<!doctype html><title>Studio setup</title><h1>Finish setting up your studio</h1>`)
}

// Home renders the public landing page.
func (h *AppHandlers) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeHTML(w, `<!doctype html><title>Studio</title><h1>Welcome</h1>`)
}

// Gallery renders a public gallery page.
func (h *AppHandlers) Gallery(w http.ResponseWriter, r *http.Request) {
	writeHTML(w, `<!doctype html><title>Gallery</title><h1>Gallery</h1>`)
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, body); err != nil {
		return
	}
}
