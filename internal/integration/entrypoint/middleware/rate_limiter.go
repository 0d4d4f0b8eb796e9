package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/personal-finance/internal/domain/error"
	"github.com/finance-tracker/personal-finance/internal/integration/entrypoint/dto"
)

// WindowCounter counts hits in a fixed window shared by every replica.
type WindowCounter interface {
	// Hit records one request for key and returns the count so far in the
	// current window together with the time left in it.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RatePolicy is a fixed-window budget: at most Limit requests per Window for
// each caller.
type RatePolicy struct {
	Name   string
	Limit  int
	Window time.Duration
}

// RateLimiter enforces a RatePolicy keyed by caller identity: the user id when
// authenticated, otherwise the client IP.
type RateLimiter struct {
	counter WindowCounter
	policy  RatePolicy
	logger  *slog.Logger
}

// NewRateLimiter creates a rate limiter for one policy.
func NewRateLimiter(counter WindowCounter, policy RatePolicy) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		policy:  policy,
		logger:  slog.With("component", "rate_limiter", "policy", policy.Name),
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// Counter failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.policy.Name + ":" + callerIdentity(c)

		count, ttl, err := rl.counter.Hit(c.Request.Context(), key, rl.policy.Window)
		if err != nil {
			rl.logger.Warn("rate limit counter unavailable", "error", err)
			c.Next()
			return
		}

		remaining := int64(rl.policy.Limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.policy.Limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.policy.Limit) {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(ttl)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.Fail(
				"Too many requests. Please try again later.",
				string(domainerror.ErrCodeRateLimited),
			))
			return
		}

		c.Next()
	}
}

func callerIdentity(c *gin.Context) string {
	if userID, ok := GetUserIDFromContext(c); ok {
		return "user:" + userID.String()
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = c.Request.RemoteAddr
	}
	return "ip:" + ip
}

func retryAfterSeconds(ttl time.Duration) int {
	secs := int(math.Ceil(ttl.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
