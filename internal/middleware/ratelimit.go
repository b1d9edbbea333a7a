package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginLimiter applies a per-client token bucket to credential endpoints.
// Keyed by client IP; entries idle longer than staleAfter are evicted by a
// background sweep.
type LoginLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	clients  map[string]*clientLimiter
	stopOnce sync.Once
	stopCh   chan struct{}
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	staleAfter    = 10 * time.Minute
	sweepInterval = 5 * time.Minute
)

// NewLoginLimiter allows perMinute attempts per client with the given
// burst, and starts the eviction sweep.
func NewLoginLimiter(perMinute, burst int) *LoginLimiter {
	l := &LoginLimiter{
		limit:   rate.Limit(float64(perMinute) / 60.0),
		burst:   burst,
		clients: make(map[string]*clientLimiter),
		stopCh:  make(chan struct{}),
	}
	go l.sweep()
	return l
}

func (l *LoginLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{
			limiter: rate.NewLimiter(l.limit, l.burst),
		}
		l.clients[key] = cl
	}
	cl.lastSeen = time.Now()
	return cl.limiter.Allow()
}

func (l *LoginLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-staleAfter)
			l.mu.Lock()
			for key, cl := range l.clients {
				if cl.lastSeen.Before(cutoff) {
					delete(l.clients, key)
				}
			}
			l.mu.Unlock()
		case <-l.stopCh:
			return
		}
	}
}

// Stop terminates the eviction sweep. Safe to call more than once.
func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

// Middleware rejects over-limit clients with 429.
func (l *LoginLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, slow down",
			})
			return
		}
		c.Next()
	}
}
