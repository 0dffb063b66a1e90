package httpx

import (
	"log/slog"
	"net/http"

	"github.com/framevault/studio-gate/internal/gate"
)

// RouterServices holds the dependencies the HTTP router needs.
type RouterServices struct {
	Gatekeeper *gate.Gatekeeper
	Logger     *slog.Logger
}

// NewRouter wires the middleware chain and routes. The gatekeeper sits
// inside request-id/logging/recovery but in front of every application
// handler, so nothing reaches a handler unguarded.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &AppHandlers{Logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthHandler)
	mux.HandleFunc("/", app.Home)
	mux.HandleFunc("/gallery", app.Gallery)
	mux.HandleFunc("/gallery/", app.Gallery)
	mux.HandleFunc("/login", app.Login)
	mux.HandleFunc("/setup", app.Setup)
	mux.HandleFunc("/photographer", app.Whoami)
	mux.HandleFunc("/photographer/", app.Whoami)
	mux.HandleFunc("/admin", app.Whoami)
	mux.HandleFunc("/admin/", app.Whoami)
	mux.HandleFunc("/super-admin", app.Whoami)
	mux.HandleFunc("/super-admin/", app.Whoami)

	var handler http.Handler = mux
	handler = services.Gatekeeper.Middleware(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	handler = RequestID()(handler)
	return handler
}
