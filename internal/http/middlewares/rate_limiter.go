package middlewares

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stellarpath/route-engine/internal/common"
	"github.com/stellarpath/route-engine/internal/http/httputil"
)

// staleAfter is how long an idle client keeps its bucket before eviction.
const staleAfter = 10 * time.Minute

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a per-client-IP token bucket. Buckets refill continuously at
// rate tokens per second up to burst; idle buckets are swept on access.
type RateLimiter struct {
	mu      sync.Mutex
	rate    float64
	burst   float64
	buckets map[string]*bucket
	swept   time.Time
}

func NewRateLimiter(rate, burst int) *RateLimiter {
	return &RateLimiter{
		rate:    float64(rate),
		burst:   float64(burst),
		buckets: make(map[string]*bucket),
		swept:   time.Now(),
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.swept) > staleAfter {
		for key, b := range rl.buckets {
			if now.Sub(b.lastSeen) > staleAfter {
				delete(rl.buckets, key)
			}
		}
		rl.swept = now
	}

	b, ok := rl.buckets[ip]
	if !ok {
		b = &bucket{tokens: rl.burst, lastSeen: now}
		rl.buckets[ip] = b
	}

	b.tokens += now.Sub(b.lastSeen).Seconds() * rl.rate
	if b.tokens > rl.burst {
		b.tokens = rl.burst
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			httputil.Failure(c, common.HTTPErrorTooManyRequests("rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}
