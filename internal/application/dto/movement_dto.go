package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ItemID            string `json:"itemId"`
	MovementType      string `json:"movementType"`
	Quantity          int    `json:"quantity"`
	Reason            string `json:"reason,omitempty"`
	Notes             string `json:"notes,omitempty"`
	FromStorageUnitID string `json:"fromStorageUnitId,omitempty"`
	ToStorageUnitID   string `json:"toStorageUnitId,omitempty"`
	Reference         string `json:"reference,omitempty"`
}

// MovementResultResponse resultado reconciliado de un movimiento aplicado.
type MovementResultResponse struct {
	MovementID      string    `json:"movementId"`
	ItemID          string    `json:"itemId"`
	ItemName        string    `json:"itemName"`
	Quantity        int       `json:"quantity"`
	MovementType    string    `json:"movementType"`
	MovementDate    time.Time `json:"movementDate"`
	OldQuantity     int       `json:"oldQuantity"`
	NewQuantity     int       `json:"newQuantity"`
	FromStorageUnit *string   `json:"fromStorageUnit,omitempty"`
	ToStorageUnit   *string   `json:"toStorageUnit,omitempty"`
}

// MovementResponse entrada del libro tal como se persiste.
type MovementResponse struct {
	ID                string    `json:"id"`
	ItemID            string    `json:"itemId"`
	MovementType      string    `json:"movementType"`
	Quantity          int       `json:"quantity"`
	QuantityBefore    int       `json:"quantityBefore"`
	QuantityAfter     int       `json:"quantityAfter"`
	FromStorageUnitID *string   `json:"fromStorageUnitId,omitempty"`
	ToStorageUnitID   *string   `json:"toStorageUnitId,omitempty"`
	Reason            string    `json:"reason,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	Reference         string    `json:"reference,omitempty"`
	UserID            string    `json:"userId,omitempty"`
	MovementDate      time.Time `json:"movementDate"`
}

// MovementListResponse historial paginado de un ítem.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
