package httpx

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines the parameters for a keyed token-bucket limiter.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in Window.
	RequestsPerWindow int
	// Window is the time window for rate limiting.
	Window time.Duration
	// Burst allows temporary bursts above the steady rate.
	Burst int
}

// Profiles for the two classes of endpoint this service exposes.
var (
	// StrictLimit protects credential endpoints against brute force.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	// LenientLimit covers read-only verification traffic, which the
	// downstream collaborator may issue on every request it serves.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 300, Window: time.Minute, Burst: 300}
)

// staleAfter is how long an idle per-key limiter is kept before pruning.
const staleAfter = 10 * time.Minute

type keyedLimiter struct {
	mu      sync.Mutex
	cfg     RateLimitConfig
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newKeyedLimiter(cfg RateLimitConfig) *keyedLimiter {
	return &keyedLimiter{cfg: cfg, clients: make(map[string]*clientLimiter)}
}

func (k *keyedLimiter) allow(key string) bool {
	now := time.Now()

	k.mu.Lock()
	defer k.mu.Unlock()

	// Lazy pruning keeps the map bounded without a background goroutine.
	if len(k.clients) > 1024 {
		for id, c := range k.clients {
			if now.Sub(c.lastSeen) > staleAfter {
				delete(k.clients, id)
			}
		}
	}

	c, ok := k.clients[key]
	if !ok {
		limit := rate.Every(k.cfg.Window / time.Duration(k.cfg.RequestsPerWindow))
		c = &clientLimiter{limiter: rate.NewLimiter(limit, k.cfg.Burst)}
		k.clients[key] = c
	}
	c.lastSeen = now

	return c.limiter.Allow()
}

// RateLimitByIP limits requests per client IP using cfg.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	kl := newKeyedLimiter(cfg)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !kl.allow(clientIP(r)) {
				w.Header().Set("Retry-After", "60")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the originating client address, honoring the usual
// proxy headers before falling back to the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
