package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	// Registers the pgx stdlib driver used by the audit sink.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/framevault/studio-gate/config"
)

// ConnectAuditDB establishes the Postgres connection for the audit sink.
// Returns (nil, nil) when auditing is disabled.
func ConnectAuditDB(ctx context.Context, cfg config.AuditConfig) (*sql.DB, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close audit database: %w", closeErr))
		}
		return nil, fmt.Errorf("ping audit database: %w", pingErr)
	}

	return db, nil
}

// ConnectRedis creates the Redis client backing the refresh limiter.
// Returns nil when Redis is disabled; the limiter is simply skipped then.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) goredis.UniversalClient {
	if !cfg.Enabled {
		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		// The limiter fails open anyway; start without it rather than
		// refusing to boot.
		logger.Warn("redis unreachable, refresh limiter disabled", "addr", cfg.Addr, "error", err)
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn("close redis client failed", "error", closeErr)
		}
		return nil
	}

	return client
}
