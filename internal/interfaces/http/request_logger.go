package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// LocalRequestID key del id de correlación en Fiber Locals.
const LocalRequestID = "request_id"

// RequestLogger middleware de acceso: estampa un request id y loguea método,
// ruta, status y latencia con zerolog.
func RequestLogger(zl zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := uuid.New().String()
		c.Locals(LocalRequestID, reqID)
		c.Set("X-Request-Id", reqID)

		start := time.Now()
		err := c.Next()

		evt := zl.Info()
		if err != nil || c.Response().StatusCode() >= fiber.StatusInternalServerError {
			evt = zl.Error().Err(err)
		}
		evt.
			Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Msg("http")
		return err
	}
}
