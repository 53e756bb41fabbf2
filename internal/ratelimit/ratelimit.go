package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Window is the length of one rate-limiting window.
const Window = time.Minute

// counterStore is the slice of the redis client the limiter needs. Declared
// as an interface so tests can substitute an in-memory fake.
type counterStore interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Limiter implements a fixed-window counter limit on top of Redis. Counters
// are kept per key per window; the first increment of a window sets its TTL
// so stale windows expire on their own.
type Limiter struct {
	store counterStore
	limit int
}

// NewLimiter creates a limiter allowing `limit` requests per key per Window.
func NewLimiter(rdb *redis.Client, limit int) *Limiter {
	return &Limiter{store: rdb, limit: limit}
}

// Allow reports whether the request identified by key may proceed.
//
// The limiter fails open: if Redis is unreachable the request is allowed and
// the error is logged, so a cache outage never takes down the API.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(Window.Seconds()))

	count, err := l.store.Incr(ctx, windowKey).Result()
	if err != nil {
		slog.Warn("Rate limiter unavailable, allowing request", "key", key, "error", err)
		return true
	}
	if count == 1 {
		if err := l.store.Expire(ctx, windowKey, Window).Err(); err != nil {
			slog.Warn("Failed to set rate limit window expiry", "key", windowKey, "error", err)
		}
	}
	return count <= int64(l.limit)
}

// IPKey builds the limiter key for an unauthenticated request.
func IPKey(addr string) string { return "ip:" + addr }

// UserKey builds the limiter key for an authenticated request.
func UserKey(userID string) string { return "user:" + userID }
