package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/warehouse-ledger/internal/application/dto"
	"github.com/jhoicas/warehouse-ledger/internal/application/ports"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/inventory"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// MaxPageSize límite superior de los listados.
const MaxPageSize = dto.MaxPageSize

// ItemUseCase casos de uso CRUD para ítems. Quantity y StorageUnitID se manejan vía movimientos.
type ItemUseCase struct {
	repo        repository.ItemRepository
	movRepo     repository.MovementRepository
	storageRepo repository.StorageRepository
	sink        ports.NotificationSink
	log         zerolog.Logger
}

// NewItemUseCase construye el caso de uso. sink puede ser nil.
func NewItemUseCase(
	repo repository.ItemRepository,
	movRepo repository.MovementRepository,
	storageRepo repository.StorageRepository,
	sink ports.NotificationSink,
	log zerolog.Logger,
) *ItemUseCase {
	return &ItemUseCase{repo: repo, movRepo: movRepo, storageRepo: storageRepo, sink: sink, log: log}
}

// Create crea un nuevo ítem en una unidad existente.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.NewValidationError("name", "Name is required", nil)
	}
	if in.Quantity < 0 || in.Quantity > inventory.MaxQuantity {
		return nil, domain.NewValidationError("quantity", "Quantity must be a non-negative integer", in.Quantity)
	}
	if err := validateDetails(in.Price, in.MinStock); err != nil {
		return nil, err
	}
	unit, err := uc.storageRepo.GetUnitByID(ctx, in.StorageUnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, &domain.NotFoundError{Resource: "Storage unit", ID: in.StorageUnitID}
	}

	sku := normalizeSKU(in.SKU)
	if sku != nil {
		existing, err := uc.repo.GetBySKU(ctx, *sku)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: SKU already exists", domain.ErrConflict)
		}
	}

	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Quantity:      in.Quantity,
		Price:         in.Price,
		SKU:           sku,
		MinStock:      in.MinStock,
		StorageUnitID: unit.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	uc.notifyAdded(ctx, userID, item)
	return ToItemResponse(item), nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.NotFoundError{Resource: "Item", ID: id}
	}
	return ToItemResponse(item), nil
}

// Update actualiza campos descriptivos. No permite modificar cantidad ni unidad.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &domain.NotFoundError{Resource: "Item", ID: id}
	}
	if err := validateDetails(in.Price, in.MinStock); err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "Name cannot be empty", nil)
		}
		item.Name = name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Price != nil {
		item.Price = in.Price
	}
	if in.MinStock != nil {
		item.MinStock = in.MinStock
	}
	if in.SKU != nil {
		item.SKU = normalizeSKU(in.SKU)
		if item.SKU != nil {
			existing, err := uc.repo.GetBySKU(ctx, *item.SKU)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != item.ID {
				return nil, fmt.Errorf("%w: SKU already exists", domain.ErrConflict)
			}
		}
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.UpdateDetails(ctx, item); err != nil {
		return nil, err
	}
	return ToItemResponse(item), nil
}

// List lista ítems con filtros y paginación (limit máximo MaxPageSize).
func (uc *ItemUseCase) List(ctx context.Context, filter repository.ItemFilter) (*dto.ItemListResponse, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *ToItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Delete elimina un ítem sin historial; con entradas en el libro devuelve ErrHasMovements.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	n, err := uc.movRepo.CountByItem(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrHasMovements
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ItemUseCase) notifyAdded(ctx context.Context, userID string, item *entity.Item) {
	if uc.sink == nil {
		return
	}
	if userID == "" {
		userID = "system"
	}
	err := uc.sink.Notify(context.WithoutCancel(ctx), entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationItemAdded,
		Message: fmt.Sprintf("Item %s added with %d units", item.Name, item.Quantity),
		Metadata: map[string]any{
			"itemId":        item.ID,
			"storageUnitId": item.StorageUnitID,
			"quantity":      item.Quantity,
		},
		CreatedAt: item.CreatedAt,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("item_id", item.ID).Msg("notificación descartada")
	}
}

// ToItemResponse convierte la entidad a la respuesta pública.
func ToItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		Description:   it.Description,
		Quantity:      it.Quantity,
		Price:         it.Price,
		SKU:           it.SKU,
		MinStock:      it.MinStock,
		StorageUnitID: it.StorageUnitID,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}
