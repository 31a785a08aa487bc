package server

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/cjunker/bb-bounce/internal/leaderboard"
)

// ipLimiter throttles requests per client IP. Entries idle for longer than
// staleAfter are pruned on access.
type ipLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*ipEntry
	perMinute  int
	lastPrune  time.Time
	staleAfter time.Duration
}

type ipEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// newIPLimiter creates a per-IP limiter allowing perMinute requests per
// minute with a matching burst. A non-positive rate disables throttling.
func newIPLimiter(perMinute int) *ipLimiter {
	return &ipLimiter{
		limiters:   make(map[string]*ipEntry),
		perMinute:  perMinute,
		lastPrune:  time.Now(),
		staleAfter: 10 * time.Minute,
	}
}

// Allow reports whether the given IP may proceed.
func (l *ipLimiter) Allow(ip string) bool {
	if l.perMinute <= 0 {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.Sub(l.lastPrune) > l.staleAfter {
		l.prune(now)
	}

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(l.perMinute)/60.0), l.perMinute),
		}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now

	return entry.limiter.Allow()
}

// prune drops entries not seen recently. Caller holds the lock.
func (l *ipLimiter) prune(now time.Time) {
	for ip, entry := range l.limiters {
		if now.Sub(entry.lastSeen) > l.staleAfter {
			delete(l.limiters, ip)
		}
	}
	l.lastPrune = now
}

// throttle rejects requests from IPs over their budget with 429.
func (s *Server) throttle(limiter *ipLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := s.clientIP(r)
		if !limiter.Allow(ip) {
			s.logger.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			s.writeError(w, leaderboard.E(leaderboard.KindRateLimited,
				"too many requests, please slow down"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
