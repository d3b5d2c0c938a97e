package inventory

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/application/dto"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// ApplyMovementFromRequest adapta el request HTTP al motor ApplyMovement(ctx, MovementInput).
func (e *MovementEngine) ApplyMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResultResponse, error) {
	res, err := e.ApplyMovement(ctx, MovementInput{
		ItemID:            in.ItemID,
		UserID:            userID,
		Type:              entity.MovementType(in.MovementType),
		Quantity:          in.Quantity,
		Reason:            in.Reason,
		Notes:             in.Notes,
		Reference:         in.Reference,
		FromStorageUnitID: in.FromStorageUnitID,
		ToStorageUnitID:   in.ToStorageUnitID,
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResultResponse(res), nil
}

// ToMovementResultResponse convierte el resultado del motor a la respuesta pública.
func ToMovementResultResponse(r *MovementResult) *dto.MovementResultResponse {
	m := r.Movement
	return &dto.MovementResultResponse{
		MovementID:      m.ID,
		ItemID:          m.ItemID,
		ItemName:        r.ItemName,
		Quantity:        m.Quantity,
		MovementType:    string(m.Type),
		MovementDate:    m.MovementDate,
		OldQuantity:     r.OldQuantity,
		NewQuantity:     r.NewQuantity,
		FromStorageUnit: m.FromStorageUnitID,
		ToStorageUnit:   m.ToStorageUnitID,
	}
}

// ToMovementResponse convierte una entrada del libro.
func ToMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                m.ID,
		ItemID:            m.ItemID,
		MovementType:      string(m.Type),
		Quantity:          m.Quantity,
		QuantityBefore:    m.QuantityBefore,
		QuantityAfter:     m.QuantityAfter,
		FromStorageUnitID: m.FromStorageUnitID,
		ToStorageUnitID:   m.ToStorageUnitID,
		Reason:            m.Reason,
		Notes:             m.Notes,
		Reference:         m.Reference,
		UserID:            m.UserID,
		MovementDate:      m.MovementDate,
	}
}
