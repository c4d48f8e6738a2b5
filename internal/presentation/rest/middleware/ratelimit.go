package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// idleBucketTTL is how long a client's bucket survives without requests.
// A bucket idle this long is full again.
const idleBucketTTL = time.Minute

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter implements a token bucket rate limiter with one bucket per
// client key.
type RateLimiter struct {
	mu         sync.Mutex
	now        func() time.Time
	buckets    map[string]*bucket
	lastSweep  time.Time
	maxTokens  float64
	refillRate float64 // tokens per second
}

// NewRateLimiter creates a rate limiter that allows rps requests per second
// for each client.
func NewRateLimiter(rps int) *RateLimiter {
	return newRateLimiter(rps, time.Now)
}

func newRateLimiter(rps int, now func() time.Time) *RateLimiter {
	return &RateLimiter{
		now:        now,
		buckets:    make(map[string]*bucket),
		lastSweep:  now(),
		maxTokens:  float64(rps),
		refillRate: float64(rps),
	}
}

// Allow reports whether a single request from key is permitted.
// It consumes one of that key's tokens if available.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.maxTokens, lastRefill: now}
		rl.buckets[key] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens += elapsed * rl.refillRate
	if b.tokens > rl.maxTokens {
		b.tokens = rl.maxTokens
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// sweep drops idle buckets at most once per idleBucketTTL. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < idleBucketTTL {
		return
	}
	for key, b := range rl.buckets {
		if now.Sub(b.lastRefill) >= idleBucketTTL {
			delete(rl.buckets, key)
		}
	}
	rl.lastSweep = now
}

// ClientKey identifies the caller by the host part of its remote address.
func ClientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit applies per-client rate limiting to incoming HTTP requests.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(ClientKey(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
