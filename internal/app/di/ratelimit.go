package di

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"movie_backend/internal/shared/ratelimiter"
)

// NewAuthRateLimiter creates the limiter for /signup and /signin.
// It returns nil (no throttling) when Redis is unavailable or perMinute is 0.
func NewAuthRateLimiter(rdb *redis.Client, prefix string, perMinute int) *ratelimiter.RateLimiter {
	if rdb == nil || perMinute <= 0 {
		slog.Warn("auth rate limiting disabled", "redis", rdb != nil, "per_minute", perMinute)
		return nil
	}
	rl, err := ratelimiter.NewRateLimiter(rdb, prefix, perMinute, time.Minute)
	if err != nil {
		slog.Error("failed to create rate limiter", "error", err)
		return nil
	}
	return rl
}
