package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo almacenado en una unidad de almacenamiento.
// Quantity solo cambia a través del motor de movimientos; nunca se escribe directamente.
type Item struct {
	ID            string
	Name          string
	Description   string
	Quantity      int
	Price         *decimal.Decimal // opcional
	SKU           *string          // opcional, único entre todos los ítems
	MinStock      *int             // umbral de stock bajo propio; nil = umbral global
	StorageUnitID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SKUValue devuelve el SKU o "" si no tiene.
func (i *Item) SKUValue() string {
	if i.SKU == nil {
		return ""
	}
	return *i.SKU
}

// LowStockThreshold resuelve el umbral efectivo del ítem.
func (i *Item) LowStockThreshold(fallback int) int {
	if i.MinStock != nil {
		return *i.MinStock
	}
	return fallback
}
