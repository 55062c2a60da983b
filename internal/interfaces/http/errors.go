package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

const localLogger = "logger"

// LoggerMiddleware deja el logger en Locals para que writeError registre los errores internos.
func LoggerMiddleware(l *logger.Logger) fiber.Handler {
	if l == nil {
		l = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		c.Locals(localLogger, l)
		return c.Next()
	}
}

func loggerFrom(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}

// writeError traduce errores de dominio a status HTTP + dto.ErrorResponse.
// VALIDATION -> 400, NOT_FOUND -> 404, INVARIANT_VIOLATION -> 409; lo demás es 500.
// El detalle de un 500 se registra en el log y nunca viaja en la respuesta.
func writeError(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		status := fiber.StatusInternalServerError
		switch de.Kind {
		case domain.KindValidation:
			status = fiber.StatusBadRequest
		case domain.KindNotFound:
			status = fiber.StatusNotFound
		case domain.KindInvariant:
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(dto.ErrorResponse{Code: de.Code, Message: de.Message})
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el recurso pertenece a otra empresa"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	loggerFrom(c).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
