package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// internalError responde un 500 genérico. El detalle del error (incluido el
// contexto del store que envuelven los repositorios) se registra con el
// sublogger de la petición pero nunca viaja al cliente.
func internalError(c *fiber.Ctx, err error) error {
	if l, ok := c.Locals(LocalLogger).(*logger.Logger); ok && l != nil {
		l.Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}
