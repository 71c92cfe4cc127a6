package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/application/dto"
	"github.com/ArmandoPeralta0405/app-erp-sub001/internal/domain"
)

// mapDomainError traduce la taxonomía de errores del motor a HTTP. Los de
// persistencia (todo lo no mapeado) salen como 500 con el detalle tal cual:
// nunca se reintentan acá ni se ocultan.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrItemLimitExceeded):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrMissingConfiguration):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "MISSING_CONFIGURATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNoTerminalAssigned):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_TERMINAL", Message: err.Error()})
	case errors.Is(err, domain.ErrItemNotFound):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
