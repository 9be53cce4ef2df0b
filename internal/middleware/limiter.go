package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"storefront-be/internal/utils"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rate Limit Tiers
const (
	// signup / login (Strict)
	limitStrict = rate.Limit(2)
	burstStrict = 5

	visitorTTL = 3 * time.Minute
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client and tier.
type Limiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

func NewLimiter(rps float64, burst int) *Limiter {
	return &Limiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// getVisitor retrieves or creates a rate limiter for the given key.
func (l *Limiter) getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		l.visitors[key] = &visitor{limiter, l.now()}
		return limiter
	}

	v.lastSeen = l.now()
	return v.limiter
}

// Cleanup evicts idle visitors every interval until ctx is done.
func (l *Limiter) Cleanup(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *Limiter) evictIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > visitorTTL {
			delete(l.visitors, key)
		}
	}
}

// Middleware rejects requests over the client's quota with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Determine Rate Tier
		limit, burst, tier := l.resolveRateTier(r)

		// 2. Combine identity and tier (e.g., "ip:10.0.0.1:strict")
		key := fmt.Sprintf("%s:%s", clientIdentity(r, tier), tier)

		if !l.getVisitor(key, limit, burst).Allow() {
			utils.WriteJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIdentity names the bucket owner. X-Device-ID is client supplied,
// so the strict tier ignores it and keys on the peer address alone.
func clientIdentity(r *http.Request, tier string) string {
	if deviceID := r.Header.Get("X-Device-ID"); deviceID != "" && tier != "strict" {
		return "device:" + deviceID
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

// resolveRateTier determines which rate limit policy applies to the request.
func (l *Limiter) resolveRateTier(r *http.Request) (rate.Limit, int, string) {
	if r.Method == http.MethodPost && (r.URL.Path == "/login" || r.URL.Path == "/signup") {
		return limitStrict, burstStrict, "strict"
	}
	return l.limit, l.burst, "general"
}
