// Package ratelimit bounds authentication attempts per client IP with fixed
// time windows, so credential brute force runs out of tries long before it
// runs out of passwords.
package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"

	"github.com/samuelhany-cpu/blogging-platform/internal/httperr"
	"github.com/samuelhany-cpu/blogging-platform/internal/metrics"
)

// DefaultMaxClients bounds the per-IP window map; hostile address churn
// evicts the oldest windows instead of growing memory without limit.
const DefaultMaxClients = 10000

type window struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

type Limiter struct {
	max     int
	window  time.Duration
	clients *lru.Cache[string, *window]
	now     func() time.Time
}

func New(max int, windowDur time.Duration) *Limiter {
	clients, err := lru.New[string, *window](DefaultMaxClients)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &Limiter{
		max:     max,
		window:  windowDur,
		clients: clients,
		now:     time.Now,
	}
}

// Allow records one attempt for key and reports whether it fits the current
// window, along with the time left until the window resets.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	w, ok := l.clients.Get(key)
	if !ok {
		w = &window{}
		// Two goroutines may race to insert; both counting against a fresh
		// window is acceptable for a limiter.
		if prev, found, _ := l.clients.PeekOrAdd(key, w); found {
			w = prev
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	if now.After(w.resetAt) {
		w.count = 0
		w.resetAt = now.Add(l.window)
	}

	if w.count >= l.max {
		return false, w.resetAt.Sub(now)
	}
	w.count++
	return true, 0
}

// Middleware rejects over-limit clients with 429 and a Retry-After header.
func (l *Limiter) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ok, retryAfter := l.Allow(c.RealIP())
		if !ok {
			metrics.RateLimited.Inc()
			secs := int(retryAfter.Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Response().Header().Set("Retry-After", strconv.Itoa(secs))
			return httperr.New(http.StatusTooManyRequests,
				"Too many attempts. Please try again later.", httperr.CodeTooManyRequests)
		}
		return next(c)
	}
}
