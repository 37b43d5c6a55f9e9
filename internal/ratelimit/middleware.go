package ratelimit

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/corazor/contact-service/internal/observability"
	apperrors "github.com/corazor/contact-service/pkg/util"
)

// KeyFunc derives the limiter key for a request.
type KeyFunc func(c *fiber.Ctx) string

// KeyByIP keys requests by client IP under the given scope.
func KeyByIP(scope string) KeyFunc {
	return func(c *fiber.Ctx) string {
		return scope + ":" + c.IP()
	}
}

// Middleware rejects requests over quota with 429. Store failures let the
// request through.
func Middleware(limiter *Limiter, keyFn KeyFunc, logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := keyFn(c)
		res, err := limiter.Check(c.UserContext(), key)
		if err != nil {
			logger.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			retry := res.RetryAfter(limiter.now())
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(retry.Round(time.Second)/time.Second)))
			metrics.RecordRateLimited()
			logger.Info("rate limit exceeded", zap.String("key", key), zap.Time("reset_at", res.ResetAt))
			return apperrors.NewRateLimited(map[string]any{"reset_at": res.ResetAt.UnixMilli()})
		}
		return c.Next()
	}
}
