package repository

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// ItemFilter filtros de listado de ítems.
type ItemFilter struct {
	StorageUnitID string
	Search        string // coincide con nombre o SKU
	Limit         int
	Offset        int
}

// ItemRepository define el puerto de persistencia para Item.
// GetByID/GetBySKU devuelven (nil, nil) cuando no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)

	// GetForUpdate bloquea la fila del ítem hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)

	// UpdateQuantity es un compare-and-set: solo escribe si la cantidad persistida sigue siendo expected.
	// Devuelve domain.ErrConcurrentUpdate si no coincide.
	UpdateQuantity(ctx context.Context, id string, expected, quantity int) error
	UpdateStorageUnit(ctx context.Context, id, storageUnitID string) error

	// UpdateDetails actualiza campos descriptivos; nunca cantidad ni unidad.
	UpdateDetails(ctx context.Context, item *entity.Item) error
	List(ctx context.Context, filter ItemFilter) ([]*entity.Item, error)
	Delete(ctx context.Context, id string) error
}
