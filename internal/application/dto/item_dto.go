package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para crear un ítem. La cantidad inicial no genera entrada en el libro.
type CreateItemRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Quantity      int              `json:"quantity"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	SKU           *string          `json:"sku,omitempty"`
	MinStock      *int             `json:"minStock,omitempty"`
	StorageUnitID string           `json:"storageUnitId"`
}

// UpdateItemRequest solo campos descriptivos; cantidad y unidad cambian vía movimientos.
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	SKU         *string          `json:"sku"` // "" elimina el SKU
	MinStock    *int             `json:"minStock"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Quantity      int              `json:"quantity"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	SKU           *string          `json:"sku,omitempty"`
	MinStock      *int             `json:"minStock,omitempty"`
	StorageUnitID string           `json:"storageUnitId"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
