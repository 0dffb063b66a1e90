package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/framevault/studio-gate/config"
	"github.com/framevault/studio-gate/internal/audit"
)

// ServerDeps groups everything needed to run the HTTP service.
type ServerDeps struct {
	Config      *config.AppConfig
	Handler     http.Handler
	AuditWorker *audit.Worker // optional
	Logger      *slog.Logger
}

// Run serves HTTP and the audit worker until a shutdown signal arrives, then
// drains both gracefully. It blocks until everything has stopped.
func Run(ctx context.Context, deps ServerDeps) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         deps.Config.HTTP.Addr,
		Handler:      deps.Handler,
		ReadTimeout:  deps.Config.HTTP.ReadTimeout,
		WriteTimeout: deps.Config.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deps.Logger.InfoContext(gctx, "http server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), deps.Config.HTTP.ShutdownTimeout)
		defer cancel()
		deps.Logger.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})

	if deps.AuditWorker != nil {
		g.Go(func() error {
			if err := deps.AuditWorker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
