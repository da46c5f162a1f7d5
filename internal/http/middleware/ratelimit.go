package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type window struct {
	start time.Time
	count int
}

// MemoryLimiter is a fixed-window limiter keyed by client IP, local to the
// process.
type MemoryLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	clients map[string]*window
}

func NewMemoryLimiter(maxRequests int, win time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:     maxRequests,
		window:  win,
		now:     time.Now,
		clients: make(map[string]*window),
	}
}

// Allow records a request from ident and reports whether it is within the limit.
func (l *MemoryLimiter) Allow(ident string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.clients[ident]
	if !ok || now.Sub(w.start) > l.window {
		l.clients[ident] = &window{start: now, count: 1}
		l.sweep(now)
		return true
	}

	w.count++
	return w.count <= l.max
}

// sweep drops expired windows. Caller holds mu.
func (l *MemoryLimiter) sweep(now time.Time) {
	if len(l.clients) < 1024 {
		return
	}
	for k, w := range l.clients {
		if now.Sub(w.start) > l.window {
			delete(l.clients, k)
		}
	}
}

// Middleware blocks clients that exceed the limit with 429.
func (l *MemoryLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
