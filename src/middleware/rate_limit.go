package middleware

import (
	"net/http"
	"sync"

	"github.com/atsushimemet/ichidan-dokusho-v4-sub000/src/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ipLimiter クライアントIPごとのトークンバケット
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newIPLimiter(limit rate.Limit, burst int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
		burst:    burst,
	}
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[ip] = limiter
	}
	return limiter
}

// RateLimitMiddleware クライアントIPごとのレート制限middleware。
// 管理者ログインのような総当たりの標的になるルートに適用する。
func RateLimitMiddleware(limit rate.Limit, burst int) gin.HandlerFunc {
	limiters := newIPLimiter(limit, burst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !limiters.get(clientIP).Allow() {
			logger.WithField("client_ip", clientIP).Warn("レート制限に達しました")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
