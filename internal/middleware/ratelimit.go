package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"sprintboard/internal/logger"

	"go.uber.org/zap"
)

type window struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per client address in fixed windows.
type Limiter struct {
	limit  int
	period time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string]*window
	sweepAt time.Time
}

// NewLimiter allows limit requests per period for each client. now defaults to time.Now.
func NewLimiter(limit int, period time.Duration, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		limit:   limit,
		period:  period,
		now:     now,
		clients: make(map[string]*window),
	}
}

// Allow records one request from client. It returns whether the request may
// proceed, how many requests are left and when the window resets.
func (l *Limiter) Allow(client string) (bool, int, time.Time) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	w, ok := l.clients[client]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(l.period)}
		l.clients[client] = w
	}
	if w.count >= l.limit {
		return false, 0, w.resetAt
	}
	w.count++
	return true, l.limit - w.count, w.resetAt
}

// sweep drops expired windows once per period so idle clients do not accumulate.
func (l *Limiter) sweep(now time.Time) {
	if now.Before(l.sweepAt) {
		return
	}
	for client, w := range l.clients {
		if now.After(w.resetAt) {
			delete(l.clients, client)
		}
	}
	l.sweepAt = now.Add(l.period)
}

// Handler rejects requests over the limit with 429 and a Retry-After header.
func (l *Limiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, remaining, resetAt := l.Allow(clientIP(r))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			retryAfter := max(1, int(resetAt.Sub(l.now()).Seconds()))
			logger.Warn("HTTP: превышен лимит запросов",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.String("client_ip", clientIP(r)))
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeFailure(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RateLimit allows rpm requests per minute for each client address.
func RateLimit(rpm int) func(http.Handler) http.Handler {
	return NewLimiter(rpm, time.Minute, nil).Handler
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
