/*
Package limiter throttles stub backend requests per client IP with token buckets
from golang.org/x/time/rate. Buckets of clients idle longer than idleTTL are
dropped by a background sweep.
*/
package limiter

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"eventify/internal/pkg/errs"
	"eventify/internal/pkg/logx"
	"eventify/internal/pkg/resp"
)

const (
	sweepInterval = time.Minute
	idleTTL       = 3 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter hands out one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	r rate.Limit
	b int

	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewIPRateLimiter returns a limiter allowing r events per second with burst b per IP.
// Call Stop to end its sweep goroutine.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	l := &IPRateLimiter{
		visitors: make(map[string]*visitor),
		r:        r,
		b:        b,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go l.sweepLoop()
	return l
}

// Allow consumes one token of ip's bucket and reports whether one was available.
func (l *IPRateLimiter) Allow(ip string) bool {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.r, l.b)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (l *IPRateLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *IPRateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			if removed, active := l.sweep(); removed > 0 {
				logx.Debug("Dropped idle rate limit buckets", "removed", removed, "active", active)
			}
		}
	}
}

// sweep drops visitors idle for longer than idleTTL.
func (l *IPRateLimiter) sweep() (removed, active int) {
	cutoff := l.now().Add(-idleTTL)

	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, v := range l.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed, len(l.visitors)
}

// Middleware answers 429 with a plain-text body once the caller's bucket is empty.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil || ip == "" {
			ip = r.RemoteAddr
		}

		if !l.Allow(ip) {
			logx.Warn("Rate limit exceeded", "path", r.URL.Path)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}
		next.ServeHTTP(w, r)
	})
}
