package httpmiddleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimitConfig controls per-client request throttling.
type RateLimitConfig struct {
	// Requests is the number of requests allowed per Window.
	Requests int
	// Window is the sliding window length.
	Window time.Duration
}

type rateLimiter struct {
	mu      sync.Mutex
	hits    map[string][]time.Time
	limit   int
	window  time.Duration
	now     func() time.Time
	cleaned time.Time
}

func newRateLimiter(cfg RateLimitConfig) *rateLimiter {
	return &rateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  cfg.Requests,
		window: cfg.Window,
		now:    time.Now,
	}
}

// allow records a hit for key and reports whether it is within the limit.
func (l *rateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	if now.Sub(l.cleaned) > l.window {
		l.cleanupLocked(cutoff)
		l.cleaned = now
	}

	recent := l.hits[key]
	for len(recent) > 0 && recent[0].Before(cutoff) {
		recent = recent[1:]
	}
	if len(recent) >= l.limit {
		l.hits[key] = recent
		return false
	}
	l.hits[key] = append(recent, now)
	return true
}

// cleanupLocked drops keys whose every hit has aged out of the window.
func (l *rateLimiter) cleanupLocked(cutoff time.Time) {
	for key, recent := range l.hits {
		if len(recent) == 0 || recent[len(recent)-1].Before(cutoff) {
			delete(l.hits, key)
		}
	}
}

// RateLimit returns a middleware that throttles requests per client IP using
// a sliding window. Over-limit requests receive 429 Too Many Requests.
func RateLimit(cfg RateLimitConfig) Middleware {
	limiter := newRateLimiter(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if !limiter.allow(key) {
				w.Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
