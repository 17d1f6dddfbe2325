package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/evalpoint/evalpoint-backend/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CounterStore is the shared counter behind a fixed-window rate limiter.
// Incr bumps the counter for key, starting a fresh window of the given length
// when none is active, and returns the count within the current window.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter enforces a fixed-window request limit keyed by client IP, with
// a limiter-specific error code so callers can tell which threshold they hit.
type RateLimiter struct {
	store  CounterStore
	name   string
	limit  int64
	window time.Duration
	code   response.ErrCode
}

// NewRateLimiter creates a RateLimiter (e.g. 5 requests per 15 minutes).
func NewRateLimiter(store CounterStore, name string, limit int, window time.Duration, code response.ErrCode) *RateLimiter {
	return &RateLimiter{
		store:  store,
		name:   name,
		limit:  int64(limit),
		window: window,
		code:   code,
	}
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
// Limiting is advisory backpressure: if the counter store fails, the request
// is let through rather than rejected.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ratelimit:" + rl.name + ":" + c.ClientIP()

		n, err := rl.store.Incr(c.Request.Context(), key, rl.window)
		if err != nil {
			c.Next()
			return
		}

		if n > rl.limit {
			response.AbortFail(c, http.StatusTooManyRequests, rl.code)
			return
		}

		c.Next()
	}
}

// ────────────────────────────────────────────────────────────────────────────
// In-process counter store
// ────────────────────────────────────────────────────────────────────────────

type windowCounter struct {
	count   int64
	resetAt time.Time
}

// MemoryCounterStore keeps fixed-window counters in process memory. Suitable
// for single-instance deployments and tests; multi-instance deployments
// should use the Redis store so all instances share one counter.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*windowCounter
}

// NewMemoryCounterStore creates a MemoryCounterStore and starts its stale
// window cleanup loop.
func NewMemoryCounterStore() *MemoryCounterStore {
	m := &MemoryCounterStore{counters: make(map[string]*windowCounter)}

	// Drop expired windows every minute.
	go func() {
		for range time.Tick(time.Minute) {
			m.cleanup()
		}
	}()

	return m
}

// Incr implements CounterStore.
func (m *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	wc, ok := m.counters[key]
	if !ok || now.After(wc.resetAt) {
		wc = &windowCounter{resetAt: now.Add(window)}
		m.counters[key] = wc
	}

	wc.count++
	return wc.count, nil
}

func (m *MemoryCounterStore) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for key, wc := range m.counters {
		if now.After(wc.resetAt) {
			delete(m.counters, key)
		}
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Redis counter store
// ────────────────────────────────────────────────────────────────────────────

// RedisCounterStore shares fixed-window counters across instances via Redis
// INCR with a window-length expiry set on the first hit.
type RedisCounterStore struct {
	rdb *redis.Client
}

// NewRedisCounterStore creates a RedisCounterStore.
func NewRedisCounterStore(rdb *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{rdb: rdb}
}

// Incr implements CounterStore.
func (r *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	n, err := r.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.rdb.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return n, nil
}
