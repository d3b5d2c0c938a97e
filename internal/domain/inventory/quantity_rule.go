package inventory

import (
	"math"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// MaxQuantity límite de la columna INTEGER de items.quantity.
const MaxQuantity = math.MaxInt32

// Outcome estado resultante de aplicar un movimiento a un ítem.
type Outcome struct {
	NewQuantity int
	From        *string // unidad origen registrada en el libro
	To          *string // unidad destino registrada en el libro
	Relocate    bool    // TRANSFER: el ítem pasa a To
}

// ApplyRule calcula el nuevo estado de un ítem (servicio de dominio, sin I/O).
//
//	IN          old + q          destino por defecto = unidad actual
//	OUT         old - q          origen por defecto = unidad actual; q > old → stock insuficiente
//	ADJUSTMENT  q (absoluto)     destino por defecto = unidad actual
//	TRANSFER    old (sin cambio) origen = unidad actual, destino distinto; q > old → stock insuficiente
func ApplyRule(current int, currentUnit string, t entity.MovementType, quantity int, from, to string) (Outcome, error) {
	if !t.Valid() {
		return Outcome{}, domain.NewValidationError("movementType", "Movement type must be one of IN, OUT, ADJUSTMENT, TRANSFER", string(t))
	}
	if quantity <= 0 {
		return Outcome{}, domain.NewValidationError("quantity", "Quantity must be greater than 0", quantity)
	}

	switch t {
	case entity.MovementTypeIN:
		if current > MaxQuantity-quantity {
			return Outcome{}, domain.NewValidationError("quantity", "Resulting quantity exceeds the maximum allowed", quantity)
		}
		return Outcome{
			NewQuantity: current + quantity,
			From:        optional(from),
			To:          orDefault(to, currentUnit),
		}, nil

	case entity.MovementTypeOUT:
		if quantity > current {
			return Outcome{}, &domain.InsufficientStockError{Requested: quantity, Available: current}
		}
		return Outcome{
			NewQuantity: current - quantity,
			From:        orDefault(from, currentUnit),
			To:          optional(to),
		}, nil

	case entity.MovementTypeADJUSTMENT:
		if quantity > MaxQuantity {
			return Outcome{}, domain.NewValidationError("quantity", "Resulting quantity exceeds the maximum allowed", quantity)
		}
		return Outcome{
			NewQuantity: quantity,
			From:        optional(from),
			To:          orDefault(to, currentUnit),
		}, nil

	default: // TRANSFER
		if from == "" || to == "" {
			return Outcome{}, domain.NewValidationError("storageUnit", "Transfer requires both source and destination storage units", nil)
		}
		if from == to {
			return Outcome{}, domain.NewValidationError("toStorageUnitId", "Source and destination storage units must differ", to)
		}
		// el libro no puede registrar un origen donde el ítem no está
		if from != currentUnit {
			return Outcome{}, domain.NewValidationError("fromStorageUnitId", "Source storage unit does not hold the item", from)
		}
		if quantity > current {
			return Outcome{}, &domain.InsufficientStockError{Requested: quantity, Available: current}
		}
		return Outcome{
			NewQuantity: current,
			From:        optional(from),
			To:          optional(to),
			Relocate:    true,
		}, nil
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func orDefault(s, def string) *string {
	if s == "" {
		return optional(def)
	}
	return &s
}
