package middleware

import (
	"fmt"
	"sync"
	"time"

	"noteful-api/pkg/response"

	"github.com/gin-gonic/gin"
)

func Logger() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] %s %s %d %s %s\n",
			param.TimeStamp.Format("2006-01-02 15:04:05"),
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency,
			param.ClientIP,
		)
	})
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RateLimiter is a sliding-window limiter keyed by client IP, used on
// the registration and login endpoints.
type RateLimiter struct {
	visitors map[string]*visitor
	mutex    sync.Mutex
	rate     int
	window   time.Duration
	cleanup  time.Duration
}

type visitor struct {
	requests []time.Time
	lastSeen time.Time
}

func NewRateLimiter(rate int, window, cleanup time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		cleanup:  cleanup,
	}

	go rl.cleanupVisitors()

	return rl
}

// cleanupVisitors removes idle visitors so the map does not grow
// without bound.
func (rl *RateLimiter) cleanupVisitors() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		rl.mutex.Lock()
		cutoff := time.Now().Add(-rl.cleanup)
		for ip, v := range rl.visitors {
			if v.lastSeen.Before(cutoff) {
				delete(rl.visitors, ip)
			}
		}
		rl.mutex.Unlock()
	}
}

func (rl *RateLimiter) allow(ip string) (bool, time.Duration) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	v, exists := rl.visitors[ip]
	if !exists {
		v = &visitor{}
		rl.visitors[ip] = v
	}

	now := time.Now()
	v.lastSeen = now

	cutoff := now.Add(-rl.window)
	valid := v.requests[:0]
	for _, t := range v.requests {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	v.requests = valid

	if len(v.requests) >= rl.rate {
		resetAt := v.requests[0].Add(rl.window)
		return false, time.Until(resetAt)
	}

	v.requests = append(v.requests, now)
	return true, 0
}

func RateLimitMiddleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := rl.allow(c.ClientIP())
		if !allowed {
			response.TooManyRequests(c, fmt.Sprintf("Rate limit exceeded. Try again in %v", retryAfter.Round(time.Second)))
			c.Abort()
			return
		}
		c.Next()
	}
}
