package http

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-ledger/internal/application/dto"
	"github.com/jhoicas/warehouse-ledger/internal/application/importer"
	"github.com/jhoicas/warehouse-ledger/internal/application/inventory"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
)

// ImportLimits límites de tamaño y duración para la importación por HTTP.
type ImportLimits struct {
	MaxBytes int
	Timeout  time.Duration
}

// InventoryHandler maneja movimientos, historial y la importación masiva (protegido).
type InventoryHandler struct {
	engine   *inventory.MovementEngine
	history  *inventory.HistoryUseCase
	importer *importer.UseCase
	limits   ImportLimits
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	engine *inventory.MovementEngine,
	history *inventory.HistoryUseCase,
	imp *importer.UseCase,
	limits ImportLimits,
) *InventoryHandler {
	return &InventoryHandler{engine: engine, history: history, importer: imp, limits: limits}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Aplica IN, OUT, ADJUSTMENT o TRANSFER sobre un ítem y escribe una entrada en el libro.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "itemId, movementType, quantity; from/to para TRANSFER"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.engine.ApplyMovementFromRequest(c.Context(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del ítem"
// @Param        from    query  string  false  "Desde (RFC3339, inclusivo)"
// @Param        to      query  string  false  "Hasta (RFC3339, inclusivo)"
// @Param        limit   query  int     false  "Límite (máx. 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return writeError(c, err)
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return writeError(c, err)
	}
	page := pageFromQuery(c)
	out, err := h.history.ListMovements(c.Context(), c.Params("id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MovementReport godoc
// @Summary      Reporte PDF del historial de un ítem
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del ítem"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/movements/report.pdf [get]
func (h *InventoryHandler) MovementReport(c *fiber.Ctx) error {
	pdf, filename, err := h.history.MovementReportPDF(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// Import godoc
// @Summary      Importación masiva de ítems
// @Description  Acepta un CSV en el campo multipart "file", un cuerpo text/csv o JSON {"rows": [...]}.
// @Description  Responde 200 con el detalle por fila aunque algunas fallen.
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        file  formData  file                   false  "Archivo CSV"
// @Param        body  body      dto.ImportRowsRequest  false  "Filas en JSON"
// @Success      200   {object}  importer.Result
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      413   {object}  dto.ErrorResponse
// @Router       /api/inventory/import [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	var ctx context.Context = c.Context()
	if h.limits.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.limits.Timeout)
		defer cancel()
	}
	userID := GetUserID(c)
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))

	var (
		res *importer.Result
		err error
	)
	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		fh, ferr := c.FormFile("file")
		if ferr != nil {
			return writeError(c, domain.NewValidationError("file", "Multipart field 'file' is required", nil))
		}
		if h.tooLarge(int(fh.Size)) {
			return h.payloadTooLarge(c)
		}
		f, ferr := fh.Open()
		if ferr != nil {
			return writeError(c, domain.NewValidationError("file", "Cannot read uploaded file", fh.Filename))
		}
		defer f.Close()
		res, err = h.importer.ImportCSV(ctx, userID, f)
	case strings.HasPrefix(contentType, "text/csv"), strings.HasPrefix(contentType, fiber.MIMETextPlain):
		if h.tooLarge(len(c.Body())) {
			return h.payloadTooLarge(c)
		}
		res, err = h.importer.ImportCSV(ctx, userID, bytes.NewReader(c.Body()))
	default:
		if h.tooLarge(len(c.Body())) {
			return h.payloadTooLarge(c)
		}
		var in dto.ImportRowsRequest
		if berr := c.BodyParser(&in); berr != nil {
			return badBody(c)
		}
		raws := make([]importer.RawRow, 0, len(in.Rows))
		for _, r := range in.Rows {
			raws = append(raws, importer.RawRow(r))
		}
		res, err = h.importer.ImportBatch(ctx, userID, raws)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

func (h *InventoryHandler) tooLarge(n int) bool {
	return h.limits.MaxBytes > 0 && n > h.limits.MaxBytes
}

func (h *InventoryHandler) payloadTooLarge(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
		Code:    "PAYLOAD_TOO_LARGE",
		Message: fmt.Sprintf("Import payload exceeds %d bytes", h.limits.MaxBytes),
	})
}

func parseTimeQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, domain.NewValidationError(key, "must be an RFC3339 timestamp", s)
	}
	return &t, nil
}
