package api

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	rateLimiterSweepInterval = 5 * time.Minute
	rateLimiterIdleTimeout   = 10 * time.Minute
)

// clientLimiter holds a rate limiter and its last accessed time
type clientLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func (cl *clientLimiter) touch(now time.Time) {
	cl.mu.Lock()
	cl.lastSeen = now
	cl.mu.Unlock()
}

func (cl *clientLimiter) idleSince(now time.Time) time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return now.Sub(cl.lastSeen)
}

// CORS answers preflight requests and tags responses for the allowed origins.
// An empty list or "*" allows every origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(allowedOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func RequestSizeLimit() gin.HandlerFunc {
	return RequestSizeLimitWithSize(1024 * 1024)
}

func RequestSizeLimitWithSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// PerClientRateLimit allows rps requests per second per client IP with the given burst.
// Idle limiters are swept in the background until cleanupStop is closed.
func PerClientRateLimit(rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once, rps int, burst int) gin.HandlerFunc {
	cleanupInitialized.Do(func() {
		go cleanupOldRateLimiters(rateLimiters, cleanupStop, rateLimiterSweepInterval)
	})

	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		now := time.Now()

		limiterInterface, _ := rateLimiters.LoadOrStore(clientIP, &clientLimiter{
			limiter:  rate.NewLimiter(rate.Limit(rps), burst),
			lastSeen: now,
		})

		cl := limiterInterface.(*clientLimiter)
		cl.touch(now)

		if !cl.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please slow down your requests.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

func cleanupOldRateLimiters(rateLimiters *sync.Map, cleanupStop chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sweepRateLimiters(rateLimiters, time.Now())
		case <-cleanupStop:
			return
		}
	}
}

// sweepRateLimiters drops limiters whose client has been quiet for rateLimiterIdleTimeout
func sweepRateLimiters(rateLimiters *sync.Map, now time.Time) int {
	removed := 0
	rateLimiters.Range(func(key, value any) bool {
		cl, ok := value.(*clientLimiter)
		if !ok || cl.idleSince(now) > rateLimiterIdleTimeout {
			rateLimiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}
