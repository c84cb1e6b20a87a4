package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger zerolog.Logger
}

func NewAccessLogMiddleware(logger zerolog.Logger) *AccessLogMiddleware {
	return &AccessLogMiddleware{logger: logger}
}

func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		m.logger.Info().
			Str("rid", rid).
			Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.OriginalURL()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Str("ua", c.Get("User-Agent")).
			Msg("HTTP access")

		return err
	}
}
