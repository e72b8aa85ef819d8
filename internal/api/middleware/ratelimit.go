package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"

	"careconnect/internal/common"

	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter map; it is reset when exceeded.
const maxTrackedClients = 10000

type limiterCache struct {
	limiters map[string]*rate.Limiter
	mu       sync.RWMutex
	rate     rate.Limit
	burst    int
}

func newLimiterCache(rps float64, burst int) *limiterCache {
	return &limiterCache{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    burst,
	}
}

func (lc *limiterCache) get(key string) *rate.Limiter {
	lc.mu.RLock()
	limiter, exists := lc.limiters[key]
	lc.mu.RUnlock()

	if exists {
		return limiter
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()

	if limiter, exists = lc.limiters[key]; exists {
		return limiter
	}
	if len(lc.limiters) >= maxTrackedClients {
		lc.limiters = make(map[string]*rate.Limiter)
	}

	limiter = rate.NewLimiter(lc.rate, lc.burst)
	lc.limiters[key] = limiter
	return limiter
}

// RateLimitByIP answers 429 once a client IP exceeds rps with the given burst.
// Mount after chi's RealIP so proxied clients are told apart.
func RateLimitByIP(rps float64, burst int) func(http.Handler) http.Handler {
	cache := newLimiterCache(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !cache.get(ip).Allow() {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				common.RespondWithDomainError(w, common.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
