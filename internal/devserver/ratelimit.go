package devserver

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/palemoky/infinity-box/internal/logger"
)

const (
	rateSweepInterval = 5 * time.Minute
	rateIdleTTL       = 10 * time.Minute
)

// RateLimiter throttles requests per client address with a short ban once
// either window is exceeded.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string]*clientRate

	perSecond   int
	perMinute   int
	banDuration time.Duration

	now       func() time.Time
	lastSweep time.Time
}

type clientRate struct {
	secondCount int
	minuteCount int
	lastSecond  time.Time
	lastMinute  time.Time
	bannedUntil time.Time
}

// NewRateLimiter allows perSecond and perMinute requests per address.
func NewRateLimiter(perSecond, perMinute int, banDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		requests:    make(map[string]*clientRate),
		perSecond:   perSecond,
		perMinute:   perMinute,
		banDuration: banDuration,
		now:         time.Now,
	}
}

// Allow records a request from addr and reports whether it may proceed.
func (rl *RateLimiter) Allow(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	rate, ok := rl.requests[addr]
	if !ok {
		rl.requests[addr] = &clientRate{secondCount: 1, minuteCount: 1, lastSecond: now, lastMinute: now}
		return true
	}
	if now.Before(rate.bannedUntil) {
		return false
	}

	if now.Sub(rate.lastSecond) >= time.Second {
		rate.secondCount = 0
		rate.lastSecond = now
	}
	if now.Sub(rate.lastMinute) >= time.Minute {
		rate.minuteCount = 0
		rate.lastMinute = now
	}
	rate.secondCount++
	rate.minuteCount++

	if rate.secondCount > rl.perSecond || rate.minuteCount > rl.perMinute {
		rate.bannedUntil = now.Add(rl.banDuration)
		logger.LogInfo("Rate limited %s for %v", addr, rl.banDuration)
		return false
	}
	return true
}

// IsBanned reports whether addr is currently banned.
func (rl *RateLimiter) IsBanned(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rate, ok := rl.requests[addr]
	return ok && rl.now().Before(rate.bannedUntil)
}

// sweep drops idle records. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rateSweepInterval {
		return
	}
	rl.lastSweep = now
	for addr, rate := range rl.requests {
		if now.Sub(rate.lastMinute) > rateIdleTTL && now.After(rate.bannedUntil) {
			delete(rl.requests, addr)
		}
	}
}

// Middleware rejects throttled requests with 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientIP(r)) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers proxy headers over the socket address.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
