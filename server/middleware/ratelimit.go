package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"event-finder/config"
	"event-finder/models"

	"golang.org/x/time/rate"
)

const limiterTTL = 15 * time.Minute

// RateLimit applies a per-client token bucket of cfg.EventsPerMinute requests
// per minute. Rejected requests get a 429 JSON error. A zero budget disables
// limiting.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	store := newLimiterStore(cfg.EventsPerMinute)
	return func(next http.Handler) http.Handler {
		if cfg.EventsPerMinute <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.limiter(clientKey(r, cfg.TrustedProxyCIDRs)).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "Too many requests, please try again later.",
					Code:  models.ErrorCodeRateLimited,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	perMinute int
	lastSweep time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLimiterStore(perMinute int) *limiterStore {
	return &limiterStore{
		limiters:  make(map[string]*limiterEntry),
		perMinute: perMinute,
		lastSweep: time.Now(),
	}
}

func (s *limiterStore) limiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if now.Sub(s.lastSweep) > limiterTTL {
		s.sweep(now)
	}

	if entry, ok := s.limiters[key]; ok {
		entry.lastSeen = now
		return entry.limiter
	}

	interval := time.Minute / time.Duration(s.perMinute)
	limiter := rate.NewLimiter(rate.Every(interval), s.perMinute)
	s.limiters[key] = &limiterEntry{limiter: limiter, lastSeen: now}
	return limiter
}

// sweep drops limiters idle for longer than limiterTTL. Callers hold mu.
func (s *limiterStore) sweep(now time.Time) {
	for key, entry := range s.limiters {
		if now.Sub(entry.lastSeen) > limiterTTL {
			delete(s.limiters, key)
		}
	}
	s.lastSweep = now
}

// clientKey identifies the caller. Forwarding headers are only trusted from
// the configured proxy networks.
func clientKey(r *http.Request, trustedProxyCIDRs []string) string {
	remoteIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		remoteIP = host
	}

	if isTrustedProxy(remoteIP, trustedProxyCIDRs) {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			return strings.TrimSpace(strings.Split(forwarded, ",")[0])
		}
		if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
			return strings.TrimSpace(realIP)
		}
	}
	return remoteIP
}

func isTrustedProxy(ip string, trustedCIDRs []string) bool {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return false
	}
	for _, cidrStr := range trustedCIDRs {
		_, cidr, err := net.ParseCIDR(cidrStr)
		if err != nil {
			continue
		}
		if cidr.Contains(parsedIP) {
			return true
		}
	}
	return false
}
