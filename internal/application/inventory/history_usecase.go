package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/warehouse-ledger/internal/application/dto"
	"github.com/jhoicas/warehouse-ledger/internal/application/ports"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// reportMaxMovements tope de entradas incluidas en el PDF.
const reportMaxMovements = 1000

// HistoryUseCase consulta el libro de movimientos de un ítem y genera su reporte PDF.
type HistoryUseCase struct {
	itemRepo    repository.ItemRepository
	movRepo     repository.MovementRepository
	storageRepo repository.StorageRepository
	generator   ports.MovementReportGenerator
}

// NewHistoryUseCase construye el caso de uso. generator puede ser nil si no se exponen reportes.
func NewHistoryUseCase(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	storageRepo repository.StorageRepository,
	generator ports.MovementReportGenerator,
) *HistoryUseCase {
	return &HistoryUseCase{
		itemRepo:    itemRepo,
		movRepo:     movRepo,
		storageRepo: storageRepo,
		generator:   generator,
	}
}

// ListMovements devuelve el historial del ítem, más reciente primero.
func (uc *HistoryUseCase) ListMovements(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) (*dto.MovementListResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.NotFoundError{Resource: "Item", ID: itemID}
	}
	list, err := uc.movRepo.ListByItem(ctx, itemID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.CountByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// MovementReportPDF genera el PDF del historial del ítem.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el ítem no existe.
func (uc *HistoryUseCase) MovementReportPDF(ctx context.Context, itemID string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("report: generador no configurado")
	}
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, "", err
	}
	if item == nil {
		return nil, "", &domain.NotFoundError{Resource: "Item", ID: itemID}
	}
	movements, err := uc.movRepo.ListByItem(ctx, itemID, nil, nil, reportMaxMovements, 0)
	if err != nil {
		return nil, "", err
	}
	paths, err := uc.storageRepo.ListUnitPaths(ctx)
	if err != nil {
		return nil, "", err
	}
	names := make(map[string]string, len(paths))
	for _, p := range paths {
		names[p.UnitID] = p.LocationName + " / " + p.AreaName + " / " + p.UnitName
	}

	pdf, err := uc.generator.GenerateMovementReport(ctx, ports.MovementReport{
		Item:        item,
		UnitNames:   names,
		Movements:   movements,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return nil, "", fmt.Errorf("report: generar pdf: %w", err)
	}
	return pdf, fmt.Sprintf("movements-%s.pdf", item.ID), nil
}
