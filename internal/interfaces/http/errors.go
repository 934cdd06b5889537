package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Patio-api/internal/application/dto"
	"github.com/jhoicas/Patio-api/internal/domain"
)

// statusFor traduce un error de negocio a su status HTTP.
// Not-found → 404, formato/entrada → 400, conflicto de estado → 409.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrLocationNotFound),
		errors.Is(err, domain.ErrStackNotFound),
		errors.Is(err, domain.ErrBatchNotFound),
		errors.Is(err, domain.ErrMappingNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidLocationCode),
		errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrLocationOccupied),
		errors.Is(err, domain.ErrLocationNotOccupied),
		errors.Is(err, domain.ErrLocationInactive),
		errors.Is(err, domain.ErrPairOccupied),
		errors.Is(err, domain.ErrSizeMismatch),
		errors.Is(err, domain.ErrPoolAccessDenied),
		errors.Is(err, domain.ErrContainerMismatch),
		errors.Is(err, domain.ErrSpecialStackSize),
		errors.Is(err, domain.ErrNoPairAvailable):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError responde con el código estable del error y su mensaje.
func writeError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(dto.ErrorResponse{
		Code:    domain.CodeOf(err),
		Message: err.Error(),
	})
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
