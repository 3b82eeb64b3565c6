package middleware

import (
	"net/http"
	"sync"
	"time"

	"reminder-app/src/logger"

	"github.com/gin-gonic/gin"
)

// rateLimiter は固定ウィンドウ方式のシンプルなレート制限
type rateLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	window time.Time
	limit  int
	per    time.Duration
}

func newRateLimiter(limit int, per time.Duration) *rateLimiter {
	return &rateLimiter{
		counts: make(map[string]int),
		window: time.Now(),
		limit:  limit,
		per:    per,
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.window) >= rl.per {
		// ウィンドウをリセット
		rl.counts = make(map[string]int)
		rl.window = now
	}

	rl.counts[key]++
	return rl.counts[key] <= rl.limit
}

// RateLimitMiddleware クライアントIPごとのレート制限用のmiddleware
func RateLimitMiddleware() gin.HandlerFunc {
	limiter := newRateLimiter(300, time.Minute)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !limiter.allow(clientIP) {
			logger.WithField("client_ip", clientIP).Warn("レート制限に達しました")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too Many Requests",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
