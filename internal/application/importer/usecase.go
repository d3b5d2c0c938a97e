package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/warehouse-ledger/internal/application/ports"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// DefaultMaxRows tope de filas por lote cuando no se configura otro.
const DefaultMaxRows = 5000

// Config opciones del orquestador.
type Config struct {
	MaxRows int
}

// Result resumen de un lote: validRows (pasaron validación) se reporta aparte de
// importedRows (persistidas) para distinguir "entrada inválida" de "válida pero en conflicto".
type Result struct {
	TotalRows    int        `json:"totalRows"`
	ValidRows    int        `json:"validRows"`
	ImportedRows int        `json:"importedRows"`
	Errors       []RowError `json:"errors"`
	Truncated    bool       `json:"truncated,omitempty"` // el contexto expiró antes de procesar todas las filas
}

// UseCase orquesta Validador → Resolver → creación de ítems, acumulando errores por fila.
// Importar siempre crea ítems nuevos; no pasa por el motor de movimientos.
type UseCase struct {
	itemRepo    repository.ItemRepository
	storageRepo repository.StorageRepository
	sink        ports.NotificationSink
	maxRows     int
	log         zerolog.Logger
	now         func() time.Time
}

// NewUseCase construye el orquestador. sink puede ser nil.
func NewUseCase(
	itemRepo repository.ItemRepository,
	storageRepo repository.StorageRepository,
	sink ports.NotificationSink,
	cfg Config,
	log zerolog.Logger,
) *UseCase {
	maxRows := cfg.MaxRows
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &UseCase{
		itemRepo:    itemRepo,
		storageRepo: storageRepo,
		sink:        sink,
		maxRows:     maxRows,
		log:         log,
		now:         time.Now,
	}
}

// ImportCSV parsea el archivo y ejecuta ImportBatch. Un encabezado sin columnas obligatorias
// rechaza el archivo completo con un ValidationError.
func (uc *UseCase) ImportCSV(ctx context.Context, userID string, r io.Reader) (*Result, error) {
	raws, err := ParseCSV(r, uc.maxRows)
	if err != nil {
		return nil, err
	}
	return uc.ImportBatch(ctx, userID, raws)
}

// ImportBatch procesa el lote en orden estricto:
//  1. valida todas las filas;
//  2. resuelve las unidades de las válidas;
//  3. por cada fila resuelta, en orden: unidad inexistente → error; SKU existente → error; si no, crea el ítem.
//
// Cada fila es independiente: un fallo de persistencia se convierte en error de fila y el lote continúa.
// Si el contexto expira, se detiene y devuelve el resultado parcial con Truncated=true.
func (uc *UseCase) ImportBatch(ctx context.Context, userID string, raws []RawRow) (*Result, error) {
	if len(raws) > uc.maxRows {
		return nil, domain.NewValidationError("rows", fmt.Sprintf("Batch exceeds the maximum of %d rows", uc.maxRows), len(raws))
	}

	res := &Result{TotalRows: len(raws), Errors: []RowError{}}

	valid, validationErrs := ValidateRows(raws, RequiredColumns())
	res.ValidRows = len(valid)
	res.Errors = append(res.Errors, validationErrs...)

	units, err := uc.storageRepo.ListUnitPaths(ctx)
	if err != nil {
		return nil, fmt.Errorf("import: cargar unidades: %w", err)
	}
	resolved := NewResolver(units).Resolve(valid)

	for _, row := range resolved {
		if ctx.Err() != nil {
			res.Truncated = true
			uc.log.Warn().Err(ctx.Err()).Int("row", row.Position).Msg("importación interrumpida")
			break
		}
		if rowErr := uc.importRow(ctx, row); rowErr != nil {
			res.Errors = append(res.Errors, *rowErr)
			continue
		}
		res.ImportedRows++
	}

	sort.SliceStable(res.Errors, func(i, j int) bool { return res.Errors[i].Row < res.Errors[j].Row })

	uc.notifyImported(ctx, userID, res)
	return res, nil
}

// importRow persiste una fila resuelta; devuelve nil si el ítem fue creado.
func (uc *UseCase) importRow(ctx context.Context, row Row) *RowError {
	if row.StorageUnitID == "" {
		return &RowError{
			Row:     row.Position,
			Field:   "storageUnitName",
			Message: fmt.Sprintf("Storage unit '%s' not found", row.StorageUnitName),
			Value:   row.StorageUnitName,
		}
	}
	if row.Ambiguous {
		uc.log.Warn().
			Int("row", row.Position).
			Str("storage_unit", row.StorageUnitName).
			Msg("nombre de unidad ambiguo, se usa la primera coincidencia")
	}

	if row.SKU != nil {
		existing, err := uc.itemRepo.GetBySKU(ctx, *row.SKU)
		if err != nil {
			return uc.persistenceError(row, err)
		}
		if existing != nil {
			return skuConflict(row)
		}
	}

	now := uc.now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Name:          row.Name,
		Quantity:      row.Quantity,
		Price:         row.Price,
		SKU:           row.SKU,
		StorageUnitID: row.StorageUnitID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if row.Description != nil {
		item.Description = *row.Description
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		// Carrera con otra importación o SKU repetido dentro del mismo lote
		if errors.Is(err, domain.ErrConflict) && row.SKU != nil {
			return skuConflict(row)
		}
		return uc.persistenceError(row, err)
	}
	return nil
}

func (uc *UseCase) persistenceError(row Row, err error) *RowError {
	uc.log.Warn().Err(err).Int("row", row.Position).Msg("fila no importada")
	return &RowError{Row: row.Position, Message: "Failed to import row: " + err.Error()}
}

func skuConflict(row Row) *RowError {
	return &RowError{Row: row.Position, Field: "sku", Message: "SKU already exists", Value: *row.SKU}
}

func (uc *UseCase) notifyImported(ctx context.Context, userID string, res *Result) {
	if uc.sink == nil || res.ImportedRows == 0 {
		return
	}
	if userID == "" {
		userID = "system"
	}
	err := uc.sink.Notify(context.WithoutCancel(ctx), entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationItemAdded,
		Message: fmt.Sprintf("Imported %d of %d rows", res.ImportedRows, res.TotalRows),
		Metadata: map[string]any{
			"totalRows":    res.TotalRows,
			"validRows":    res.ValidRows,
			"importedRows": res.ImportedRows,
			"errors":       len(res.Errors),
		},
		CreatedAt: uc.now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Msg("notificación de importación descartada")
	}
}
