package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/catalog-api/pkg/logger"
)

// Locals keys del request id y del sublogger por petición en c.Locals.
const (
	LocalRequestID = "request_id"
	LocalLogger    = "logger"
)

// RequestLogger asigna un request id a cada petición (respetando X-Request-ID
// si viene del cliente), deja un sublogger con ese id en c.Locals para los
// handlers y emite una línea de acceso estructurada al terminar.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(LocalRequestID, requestID)
		c.Locals(LocalLogger, log.WithField("request_id", requestID))
		c.Set("X-Request-ID", requestID)

		start := time.Now()
		err := c.Next()

		log.Info().
			Str("request_id", requestID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("duration", time.Since(start)).
			Msg("request")
		return err
	}
}
