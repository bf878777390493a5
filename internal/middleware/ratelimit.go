package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// LoginWindow and LoginMaxRequests: each IP may call /login 100 times per 15 minutes.
const (
	LoginWindow      = 15 * time.Minute
	LoginMaxRequests = 100
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter manages rate limiters for each IP
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	r        rate.Limit
	b        int
	idle     time.Duration
}

// NewIPRateLimiter creates a new limiter with rate r and burst b. Limiters
// unused for longer than idle are dropped by Cleanup.
func NewIPRateLimiter(r rate.Limit, b int, idle time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		r:        r,
		b:        b,
		idle:     idle,
	}
}

// NewLoginRateLimiter 返回登录接口使用的限流器：每 IP 每 15 分钟 100 次
func NewLoginRateLimiter() *IPRateLimiter {
	return NewIPRateLimiter(rate.Every(LoginWindow/LoginMaxRequests), LoginMaxRequests, LoginWindow)
}

// GetLimiter returns the limiter for ip, creating it on first use.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, exists := i.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(i.r, i.b)}
		i.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup removes limiters idle since before now-idle.
func (i *IPRateLimiter) Cleanup(now time.Time) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for ip, v := range i.visitors {
		if now.Sub(v.lastSeen) > i.idle {
			delete(i.visitors, ip)
		}
	}
}

// Run calls Cleanup every interval until ctx is cancelled.
func (i *IPRateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			i.Cleanup(now)
		}
	}
}

func (i *IPRateLimiter) size() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.visitors)
}

// RateLimit rejects requests with 429 once the client IP exhausts its limiter.
func RateLimit(limiter *IPRateLimiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.GetLimiter(ip).Allow() {
			logger.Warn("rate limit exceeded", "ip", ip, "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"message": "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
