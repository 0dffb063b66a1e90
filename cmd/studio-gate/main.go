package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/framevault/studio-gate/internal/audit"
	"github.com/framevault/studio-gate/internal/bootstrap"
	"github.com/framevault/studio-gate/internal/data"
	"github.com/framevault/studio-gate/internal/httpx"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting studio-gate",
		"auth_mode", cfg.Auth.Mode,
		"addr", cfg.HTTP.Addr,
		"audit_enabled", cfg.Audit.Enabled,
		"dev", cfg.IsDev)

	// Audit sink (optional)
	var auditWorker *audit.Worker
	var recorder audit.Recorder = audit.NopRecorder{}
	db, err := bootstrap.ConnectAuditDB(ctx, cfg.Audit)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close audit database failed", "error", cerr)
			}
		}()
		repo := data.NewGateAuditRepo(db)
		if err = repo.EnsureSchema(ctx); err != nil {
			return err
		}
		auditWorker = audit.NewWorker(repo, logger, cfg.Audit.Buffer)
		recorder = auditWorker
	}

	// Refresh limiter backend (optional)
	redisClient := bootstrap.ConnectRedis(ctx, cfg.Redis, logger)
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	gatekeeper, err := bootstrap.BuildGatekeeper(ctx, bootstrap.GateConfig{
		Config:      &cfg,
		RedisClient: redisClient,
		Audit:       recorder,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Gatekeeper: gatekeeper,
		Logger:     logger,
	})

	return bootstrap.Run(ctx, bootstrap.ServerDeps{
		Config:      &cfg,
		Handler:     handler,
		AuditWorker: auditWorker,
		Logger:      logger,
	})
}
