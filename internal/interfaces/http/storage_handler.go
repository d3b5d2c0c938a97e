package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-ledger/internal/application/dto"
	"github.com/jhoicas/warehouse-ledger/internal/application/usecase"
)

// StorageHandler jerarquía ubicación → área → unidad de almacenamiento (protegido).
type StorageHandler struct {
	uc *usecase.StorageUseCase
}

// NewStorageHandler construye el handler.
func NewStorageHandler(uc *usecase.StorageUseCase) *StorageHandler {
	return &StorageHandler{uc: uc}
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Datos de la ubicación"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *StorageHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateLocation(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateArea godoc
// @Summary      Crear área dentro de una ubicación
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAreaRequest  true  "locationId y name"
// @Success      201   {object}  dto.AreaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/areas [post]
func (h *StorageHandler) CreateArea(c *fiber.Ctx) error {
	var in dto.CreateAreaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateArea(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateStorageUnit godoc
// @Summary      Crear unidad de almacenamiento dentro de un área
// @Tags         storage
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStorageUnitRequest  true  "areaId y name"
// @Success      201   {object}  dto.StorageUnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/storage-units [post]
func (h *StorageHandler) CreateStorageUnit(c *fiber.Ctx) error {
	var in dto.CreateStorageUnitRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateStorageUnit(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListStorageUnits godoc
// @Summary      Listar unidades con su área y ubicación
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StorageUnitPathResponse
// @Router       /api/storage-units [get]
func (h *StorageHandler) ListStorageUnits(c *fiber.Ctx) error {
	out, err := h.uc.ListStorageUnits(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// LookupStorageUnit godoc
// @Summary      Buscar unidad por nombre
// @Description  Con varias coincidencias devuelve la primera creada.
// @Tags         storage
// @Security     Bearer
// @Produce      json
// @Param        name          query  string  true   "Nombre exacto de la unidad"
// @Param        areaName      query  string  false  "Acota por área"
// @Param        locationName  query  string  false  "Acota por ubicación"
// @Success      200  {object}  dto.StorageUnitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/storage-units/lookup [get]
func (h *StorageHandler) LookupStorageUnit(c *fiber.Ctx) error {
	out, err := h.uc.FindStorageUnitByName(c.Context(), c.Query("name"), c.Query("areaName"), c.Query("locationName"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
