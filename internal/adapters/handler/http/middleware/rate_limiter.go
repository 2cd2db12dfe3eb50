package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/habitly/internal/infra/logger"
	"github.com/comitanigiacomo/habitly/internal/infra/metrics"
)

const rateLimitKeyPrefix = "rate_limit:"

// fixedWindow counts requests per key in Redis. The first hit of a window
// sets the key's expiry.
type fixedWindow struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

type windowState struct {
	count     int64
	remaining int64
	resetIn   time.Duration
}

func (w fixedWindow) hit(ctx context.Context, key string) (windowState, error) {
	count, err := w.rdb.Incr(ctx, key).Result()
	if err != nil {
		return windowState{}, err
	}

	if count == 1 {
		if err := w.rdb.Expire(ctx, key, w.window).Err(); err != nil {
			w.rdb.Del(ctx, key)
			return windowState{}, err
		}
	}

	ttl, err := w.rdb.TTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		ttl = w.window
	}

	return windowState{
		count:     count,
		remaining: max(0, int64(w.limit)-count),
		resetIn:   ttl,
	}, nil
}

// RateLimiterMiddleware allows limit requests per client IP and window.
// Redis failures let requests through.
func RateLimiterMiddleware(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	log := logger.Log.WithField("component", "rate_limiter")
	limiter := fixedWindow{rdb: rdb, limit: limit, window: window}

	return func(c *gin.Context) {
		state, err := limiter.hit(c.Request.Context(), rateLimitKeyPrefix+c.ClientIP())
		if err != nil {
			log.WithError(err).Warn("Redis error, rate limiter skipped")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(state.remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(state.resetIn).Unix(), 10))

		if state.count > int64(limit) {
			metrics.RateLimited.Inc()
			log.WithField("client_ip", c.ClientIP()).Debug("Request rate limited")
			Abort(c, http.StatusTooManyRequests, ErrorResponse{
				Error:    "too many requests",
				RetryInS: int(state.resetIn.Round(time.Second).Seconds()),
			})
			return
		}

		c.Next()
	}
}
