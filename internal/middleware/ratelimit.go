package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/templui/goalmaster/internal/apierr"
	"github.com/templui/goalmaster/internal/handler"
	"github.com/templui/goalmaster/internal/metrics"
	"golang.org/x/time/rate"
)

const rateLimitCacheSize = 10_000

var errTooManyRequests = errors.New("too many requests, please try again later")

// RateLimiter keeps one token bucket per client IP. The least recently seen
// IPs are evicted once the cache is full. Forwarding headers are only read
// when trustProxy is set; otherwise a client could pick its own bucket.
type RateLimiter struct {
	mu         sync.Mutex
	limiters   *lru.Cache[string, *rate.Limiter]
	limit      rate.Limit
	burst      int
	trustProxy bool
}

func NewRateLimiter(limit rate.Limit, burst, size int, trustProxy bool) *RateLimiter {
	cache, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		// Only a non-positive size fails.
		panic(err)
	}

	return &RateLimiter{
		limiters:   cache,
		limit:      limit,
		burst:      burst,
		trustProxy: trustProxy,
	}
}

// Allow checks if request from IP should be allowed
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	limiter, ok := rl.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters.Add(ip, limiter)
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

// Middleware rejects requests over the limit with 429.
func (rl *RateLimiter) Middleware(m *metrics.Metrics) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ip := getClientIP(r, rl.trustProxy)

			if !rl.Allow(ip) {
				slog.Warn("rate limit exceeded",
					"ip", ip,
					"path", r.URL.Path,
				)
				m.IncRateLimited(r.Pattern)
				handler.WriteError(w, r, apierr.New(http.StatusTooManyRequests, apierr.CodeRateLimited, errTooManyRequests))
				return
			}

			next(w, r)
		}
	}
}

// RateLimitAuth limits auth endpoints to 5 requests per 15 minutes per IP.
func RateLimitAuth(m *metrics.Metrics, trustProxy bool) func(http.HandlerFunc) http.HandlerFunc {
	return NewRateLimiter(rate.Every(15*time.Minute/5), 5, rateLimitCacheSize, trustProxy).Middleware(m)
}

// getClientIP extracts real client IP from request
func getClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// Check X-Forwarded-For header (proxy/load balancer)
		xff := r.Header.Get("X-Forwarded-For")
		if xff != "" {
			ip, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(ip)
		}

		xri := r.Header.Get("X-Real-IP")
		if xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	// Fallback to RemoteAddr without the port
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
