package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/colorstock/internal/application/dto"
	"github.com/jhoicas/colorstock/internal/domain"
)

// respondError traduce errores de dominio a HTTP.
// Una falla de guardado posterior a la mutación responde 503 NOT_PERSISTED:
// el cambio quedó en memoria y POST /api/snapshot/flush reintenta el guardado.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	var pe *domain.PersistenceError
	switch {
	case errors.As(err, &pe) && pe.Committed:
		status, code = fiber.StatusServiceUnavailable, "NOT_PERSISTED"
	case errors.Is(err, domain.ErrPersistence):
		status, code = fiber.StatusServiceUnavailable, "PERSISTENCE"
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidDate):
		status, code = fiber.StatusBadRequest, "INVALID_DATE"
	case errors.Is(err, domain.ErrValidation):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicateReference):
		status, code = fiber.StatusConflict, "DUPLICATE_REFERENCE"
	case errors.Is(err, domain.ErrInvalidTransition):
		status, code = fiber.StatusConflict, "INVALID_TRANSITION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
