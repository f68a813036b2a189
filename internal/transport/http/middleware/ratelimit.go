package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/employee-api/internal/domain"
)

// partition holds the fixed-window state for one client address.
type partition struct {
	remaining   int
	windowStart time.Time
}

// FixedWindowLimiter is a per-client fixed-window rate limiter. Each client
// address gets its own partition, created lazily on first request and kept for
// the process lifetime. Partitions are never evicted, so the key set only
// grows with distinct client addresses.
//
// Windows are fixed, not sliding: when a check finds the window has elapsed,
// the window start advances by whole window multiples and the counter resets
// to the ceiling. The counter never goes negative and a rejected request does
// not consume a permit.
type FixedWindowLimiter struct {
	name   string
	limit  int
	window time.Duration

	mu         sync.Mutex
	partitions map[string]*partition

	now func() time.Time
}

// NewFixedWindowLimiter creates a limiter admitting at most limit requests per
// window for each client key. The name labels the policy in metrics.
func NewFixedWindowLimiter(name string, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		name:       name,
		limit:      limit,
		window:     window,
		partitions: make(map[string]*partition),
		now:        time.Now,
	}
}

// Allow runs one admission check for key. It reports whether the request is
// admitted, the permits remaining in the current window, and when the window
// resets. The check-and-decrement is atomic with respect to concurrent
// requests sharing the key.
func (l *FixedWindowLimiter) Allow(key string) (allowed bool, remaining int, resetAt time.Time) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.partitions[key]
	if !ok {
		p = &partition{remaining: l.limit, windowStart: now}
		l.partitions[key] = p
	}

	if elapsed := now.Sub(p.windowStart); elapsed >= l.window {
		p.windowStart = p.windowStart.Add(elapsed - elapsed%l.window)
		p.remaining = l.limit
	}

	resetAt = p.windowStart.Add(l.window)
	if p.remaining < 1 {
		return false, 0, resetAt
	}
	p.remaining--
	return true, p.remaining, resetAt
}

// Limit is the middleware handler enforcing the policy per client address.
// A rejected request is answered immediately with 429 and the failure
// envelope; nothing downstream runs.
func (l *FixedWindowLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := realIP(r)
		allowed, remaining, resetAt := l.Allow(key)

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := int(resetAt.Sub(l.now()).Seconds()) + 1
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			rateLimitRejections.WithLabelValues(l.name).Inc()
			writeEnvelope(w, http.StatusTooManyRequests, domain.Failure(domain.MsgTooManyRequests))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// realIP extracts the client address for partitioning: first X-Forwarded-For
// hop, then X-Real-Ip, then the RemoteAddr host. "unknown" when nothing
// resolves, so unattributable traffic shares one partition.
func realIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if xri := r.Header.Get("X-Real-Ip"); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
