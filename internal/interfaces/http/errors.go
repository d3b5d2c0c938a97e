package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-ledger/internal/application/dto"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
)

// writeError traduce un error de dominio a status + dto.ErrorResponse.
// El orden importa: los tipos concretos se revisan antes que los sentinels genéricos.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := classify(err)
	resp := dto.ErrorResponse{Code: code, Message: msg}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	return c.Status(status).JSON(resp)
}

func classify(err error) (int, string, string) {
	var (
		verr  *domain.ValidationError
		nferr *domain.NotFoundError
		iserr *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, "VALIDATION", verr.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.As(err, &nferr):
		return fiber.StatusNotFound, "NOT_FOUND", nferr.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.As(err, &iserr):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK", iserr.Error()
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK", "insufficient stock"
	case errors.Is(err, domain.ErrHasMovements):
		return fiber.StatusConflict, "HAS_MOVEMENTS", "Item has movement history and cannot be deleted"
	case errors.Is(err, domain.ErrConcurrentUpdate):
		return fiber.StatusConflict, "CONCURRENT_UPDATE", "Item was modified concurrently, retry the operation"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrPersistence):
		// no se expone el detalle del driver
		return fiber.StatusServiceUnavailable, "PERSISTENCE", "storage temporarily unavailable"
	default:
		return fiber.StatusInternalServerError, "INTERNAL", "internal error"
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
}
