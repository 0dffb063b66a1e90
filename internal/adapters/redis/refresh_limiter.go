package redis

// Package redis provides Redis-based adapters for the studio-gate system.

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshLimiter caps session-refresh attempts per credential using a
// fixed-window counter. It stores only counters, never credentials, so it
// does not conflict with the no-session-caching rule.
//
// The limiter fails open: any Redis error allows the refresh, because a
// limiter outage must never lock users out.
type RefreshLimiter struct {
	client redis.UniversalClient
	prefix string
	limit  int64
	window time.Duration
	logger *slog.Logger
}

// RefreshLimiterOptions groups construction parameters.
type RefreshLimiterOptions struct {
	Client redis.UniversalClient
	Limit  int           // attempts per window
	Window time.Duration // counter window
	Logger *slog.Logger
}

// NewRefreshLimiter creates a limiter with the given options.
func NewRefreshLimiter(opts RefreshLimiterOptions) *RefreshLimiter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	window := opts.Window
	if window <= 0 {
		window = time.Minute
	}
	return &RefreshLimiter{
		client: opts.Client,
		prefix: "refresh_limit:",
		limit:  int64(opts.Limit),
		window: window,
		logger: logger,
	}
}

// Allow reports whether one more refresh may be attempted for key.
func (l *RefreshLimiter) Allow(ctx context.Context, key string) bool {
	if l.limit <= 0 {
		return true
	}

	k := l.prefix + key
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		l.logger.WarnContext(ctx, "refresh limiter unavailable, failing open", "error", err)
		return true
	}
	if n == 1 {
		// First hit in this window starts the clock. An Expire failure
		// leaves a counter without TTL; reset it best-effort so the key
		// cannot deny refreshes forever.
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			l.logger.WarnContext(ctx, "refresh limiter expire failed", "error", err)
			l.client.Del(ctx, k)
			return true
		}
	}

	return n <= l.limit
}
