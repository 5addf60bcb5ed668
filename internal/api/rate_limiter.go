package api

import (
	"math/rand/v2"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// sweepChance is the fraction of Allow calls that also sweep expired windows.
// Lazy expiry keeps memory bounded without a dedicated timer goroutine.
const sweepChance = 0.01

type clientWindow struct {
	count     int
	windowEnd time.Time
}

// windowLimiter is a per-client fixed-window request counter. Within one
// window a client gets at most max allowed requests; the (max+1)-th is
// rejected without incrementing. Once the window elapses the next request
// starts a fresh window with count 1. Single-process, best effort: counters
// do not survive a restart and are not shared across instances.
type windowLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	clients map[string]*clientWindow

	now    func() time.Time
	chance func() float64
}

func newWindowLimiter(window time.Duration, max int) *windowLimiter {
	if window <= 0 || max <= 0 {
		return nil
	}
	return &windowLimiter{
		window:  window,
		max:     max,
		clients: make(map[string]*clientWindow),
		now:     time.Now,
		chance:  rand.Float64,
	}
}

// Allow records a request for clientKey and reports whether it is within the
// limit. The check-then-increment runs under one mutex hold so concurrent
// requests for the same client cannot interleave mid-decision.
func (l *windowLimiter) Allow(clientKey string) bool {
	if clientKey == "" {
		clientKey = "unknown"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if l.chance() < sweepChance {
		l.sweepLocked(now)
	}

	entry, ok := l.clients[clientKey]
	if !ok || now.After(entry.windowEnd) {
		l.clients[clientKey] = &clientWindow{count: 1, windowEnd: now.Add(l.window)}
		return true
	}
	if entry.count >= l.max {
		return false
	}
	entry.count++
	return true
}

func (l *windowLimiter) sweepLocked(now time.Time) {
	for key, entry := range l.clients {
		if now.After(entry.windowEnd) {
			delete(l.clients, key)
		}
	}
}

// clientAddress derives the rate-limit identity for a request. The reverse
// proxy's X-Real-IP wins, then the leftmost X-Forwarded-For entry, then the
// socket address. Requests with none of these share the "unknown" bucket.
func clientAddress(r *http.Request) string {
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if first := strings.TrimSpace(parts[0]); first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}

	return strings.TrimSpace(r.RemoteAddr)
}
