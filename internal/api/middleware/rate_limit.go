package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"blockstream/internal/pkg/errors"
)

// RateLimiter is a per-client token bucket refilled at limit tokens per minute.
type RateLimiter struct {
	store *sync.Map // map[string]*Bucket
	limit int
	now   func() time.Time
}

type Bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
	mu         sync.Mutex
}

const bucketIdle = 10 * time.Minute

// NewRateLimiter allows limit requests per minute per key. A non-positive
// limit disables limiting.
func NewRateLimiter(limit int) *RateLimiter {
	return &RateLimiter{
		store: &sync.Map{},
		limit: limit,
		now:   time.Now,
	}
}

// Cleanup drops idle buckets every interval until ctx is done.
func (rl *RateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	now := rl.now()
	rl.store.Range(func(key, value interface{}) bool {
		bucket := value.(*Bucket)
		bucket.mu.Lock()
		if now.Sub(bucket.lastAccess) > bucketIdle {
			rl.store.Delete(key)
		}
		bucket.mu.Unlock()
		return true
	})
}

func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}
	now := rl.now()

	val, _ := rl.store.LoadOrStore(key, &Bucket{
		tokens:     rl.limit,
		lastRefill: now,
		lastAccess: now,
	})

	bucket := val.(*Bucket)
	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	bucket.lastAccess = now

	refillRate := float64(rl.limit) / 60.0
	refillTokens := int(now.Sub(bucket.lastRefill).Seconds() * refillRate)
	if refillTokens > 0 {
		bucket.tokens = min(bucket.tokens+refillTokens, rl.limit)
		bucket.lastRefill = now
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}
	return false
}

// Limit rejects requests from a client that has used up its bucket. Clients
// are keyed by the address RequestID resolved.
func (rl *RateLimiter) Limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIPFrom(r)) {
			retry := 60
			if rl.limit > 0 {
				retry = max(1, 60/rl.limit)
			}
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			errors.WriteError(w, http.StatusTooManyRequests, errors.ErrCodeRateLimitExceeded, "Rate limit exceeded", nil)
			return
		}
		next(w, r)
	}
}
