package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

type RateLimiterConfig struct {
	// RequestsPerMinute is the sustained rate allowed per client.
	RequestsPerMinute float64
	Burst             int
	// Methods limited; empty means POST only.
	Methods []string
}

// RateLimiter keeps one token bucket per client IP. Buckets of idle clients expire.
type RateLimiter struct {
	clients *cache.Cache
	limit   rate.Limit
	burst   int
	methods map[string]bool
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	methods := config.Methods
	if len(methods) == 0 {
		methods = []string{http.MethodPost}
	}
	rl := &RateLimiter{
		clients: cache.New(10*time.Minute, 15*time.Minute),
		limit:   rate.Limit(config.RequestsPerMinute / 60),
		burst:   config.Burst,
		methods: make(map[string]bool, len(methods)),
	}
	for _, m := range methods {
		rl.methods[m] = true
	}
	return rl
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	if v, ok := rl.clients.Get(ip); ok {
		rl.clients.Set(ip, v, cache.DefaultExpiration)
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	if err := rl.clients.Add(ip, l, cache.DefaultExpiration); err != nil {
		// another request created it first
		if v, ok := rl.clients.Get(ip); ok {
			return v.(*rate.Limiter)
		}
	}
	return l
}

// Allow reports whether the client may make another request now.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.limiter(ip).Allow()
}

// RateLimit applies the limiter to the configured methods and hands rejected requests
// to onLimited with status 429 set.
func (rl *RateLimiter) RateLimit(onLimited gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.methods[c.Request.Method] {
			c.Next()
			return
		}
		if !rl.Allow(c.ClientIP()) {
			c.Status(http.StatusTooManyRequests)
			c.Abort()
			onLimited(c)
			return
		}
		c.Next()
	}
}
