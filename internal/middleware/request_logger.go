package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID carries the generated request id back to the caller.
const HeaderRequestID = "X-Request-Id"

// RequestLogger logs every HTTP request with a generated request id,
// method, path, status and latency. Failures from the chain are translated
// by the app's error handler before the final status is logged.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := uuid.New().String()
		c.Set(HeaderRequestID, requestID)

		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if chainErr != nil {
			logger.Warn("request completed with error", fields...)
		} else {
			logger.Info("request completed", fields...)
		}
		return nil
	}
}
