package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/warehouse-ledger/internal/application/ports"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/inventory"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// DefaultLowStockThreshold umbral de stock bajo cuando no se configura otro.
const DefaultLowStockThreshold = 10

// EngineConfig configuración del motor. LowStockThreshold <= 0 usa DefaultLowStockThreshold.
type EngineConfig struct {
	LowStockThreshold int
}

// MovementEngine registra movimientos de inventario de forma transaccional
// (IN, OUT, ADJUSTMENT, TRANSFER) con bloqueo de fila y Commit/Rollback.
type MovementEngine struct {
	txRunner    TxRunner
	storageRepo repository.StorageRepository
	sink        ports.NotificationSink
	threshold   int
	log         zerolog.Logger
	now         func() time.Time
}

// NewMovementEngine construye el motor. sink puede ser nil (sin notificaciones).
func NewMovementEngine(
	txRunner TxRunner,
	storageRepo repository.StorageRepository,
	sink ports.NotificationSink,
	cfg EngineConfig,
	log zerolog.Logger,
) *MovementEngine {
	threshold := cfg.LowStockThreshold
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return &MovementEngine{
		txRunner:    txRunner,
		storageRepo: storageRepo,
		sink:        sink,
		threshold:   threshold,
		log:         log,
		now:         time.Now,
	}
}

// MovementInput entrada para aplicar un movimiento.
// Para TRANSFER FromStorageUnitID y ToStorageUnitID son obligatorios.
type MovementInput struct {
	ItemID            string
	UserID            string
	Type              entity.MovementType
	Quantity          int
	Reason            string
	Notes             string
	Reference         string
	FromStorageUnitID string
	ToStorageUnitID   string
}

// MovementResult estado antes/después de un movimiento confirmado.
type MovementResult struct {
	Movement    *entity.Movement
	ItemName    string
	OldQuantity int
	NewQuantity int
	threshold   int
}

// ApplyMovement valida la entrada, abre una transacción, bloquea la fila del ítem (SELECT FOR UPDATE),
// calcula la nueva cantidad sobre el valor releído dentro de la tx y escribe ítem + entrada del libro.
// Las notificaciones se emiten después del commit y nunca afectan el resultado.
func (e *MovementEngine) ApplyMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	in.ItemID = strings.TrimSpace(in.ItemID)
	in.FromStorageUnitID = strings.TrimSpace(in.FromStorageUnitID)
	in.ToStorageUnitID = strings.TrimSpace(in.ToStorageUnitID)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	// Las unidades nombradas deben existir (lectura fuera de la tx: filas de solo lectura para el motor)
	for _, unitID := range []string{in.FromStorageUnitID, in.ToStorageUnitID} {
		if unitID == "" {
			continue
		}
		unit, err := e.storageRepo.GetUnitByID(ctx, unitID)
		if err != nil {
			return nil, err
		}
		if unit == nil {
			return nil, &domain.NotFoundError{Resource: "Storage unit", ID: unitID}
		}
	}

	now := e.now()
	var result *MovementResult

	err := e.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		// Releer dentro de la tx: la cantidad bloqueada es la autoritativa
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return &domain.NotFoundError{Resource: "Item", ID: in.ItemID}
		}

		out, err := inventory.ApplyRule(item.Quantity, item.StorageUnitID, in.Type, in.Quantity, in.FromStorageUnitID, in.ToStorageUnitID)
		if err != nil {
			return err
		}

		if out.Relocate {
			if err := itemRepo.UpdateStorageUnit(ctx, item.ID, *out.To); err != nil {
				return err
			}
		} else if err := itemRepo.UpdateQuantity(ctx, item.ID, item.Quantity, out.NewQuantity); err != nil {
			return err
		}

		mov := &entity.Movement{
			ID:                uuid.New().String(),
			ItemID:            item.ID,
			Type:              in.Type,
			Quantity:          in.Quantity,
			QuantityBefore:    item.Quantity,
			QuantityAfter:     out.NewQuantity,
			FromStorageUnitID: out.From,
			ToStorageUnitID:   out.To,
			Reason:            in.Reason,
			Notes:             in.Notes,
			Reference:         in.Reference,
			UserID:            in.UserID,
			MovementDate:      now,
			CreatedAt:         now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		result = &MovementResult{
			Movement:    mov,
			ItemName:    item.Name,
			OldQuantity: item.Quantity,
			NewQuantity: out.NewQuantity,
			threshold:   item.LowStockThreshold(e.threshold),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, in.UserID, result)
	return result, nil
}

func validateInput(in MovementInput) error {
	if in.ItemID == "" {
		return domain.NewValidationError("itemId", "Item id is required", nil)
	}
	if !in.Type.Valid() {
		return domain.NewValidationError("movementType", "Movement type must be one of IN, OUT, ADJUSTMENT, TRANSFER", string(in.Type))
	}
	if in.Quantity <= 0 {
		return domain.NewValidationError("quantity", "Quantity must be greater than 0", in.Quantity)
	}
	if in.Type == entity.MovementTypeTRANSFER {
		if in.FromStorageUnitID == "" {
			return domain.NewValidationError("fromStorageUnitId", "Transfer requires a source storage unit", nil)
		}
		if in.ToStorageUnitID == "" {
			return domain.NewValidationError("toStorageUnitId", "Transfer requires a destination storage unit", nil)
		}
	}
	return nil
}

// emit envía las notificaciones post-commit. Los errores se registran y se descartan.
func (e *MovementEngine) emit(ctx context.Context, userID string, r *MovementResult) {
	if e.sink == nil {
		return
	}
	if userID == "" {
		userID = "system"
	}
	// El movimiento ya está confirmado: la cancelación del request no debe cortar el encolado
	ctx = context.WithoutCancel(ctx)
	mov := r.Movement

	meta := map[string]any{
		"itemId":       mov.ItemID,
		"movementId":   mov.ID,
		"movementType": string(mov.Type),
		"oldQuantity":  r.OldQuantity,
		"newQuantity":  r.NewQuantity,
	}

	notes := []entity.Notification{{
		Type:    entity.NotificationMovement,
		Message: fmt.Sprintf("%s movement of %d units recorded for %s", mov.Type, mov.Quantity, r.ItemName),
	}}
	if (mov.Type == entity.MovementTypeOUT || mov.Type == entity.MovementTypeADJUSTMENT) && r.NewQuantity <= r.threshold {
		notes = append(notes, entity.Notification{
			Type:    entity.NotificationLowStock,
			Message: fmt.Sprintf("Low stock: %s has %d units left (threshold %d)", r.ItemName, r.NewQuantity, r.threshold),
		})
	}
	if mov.Type != entity.MovementTypeTRANSFER {
		notes = append(notes, entity.Notification{
			Type:    entity.NotificationQuantityChanged,
			Message: fmt.Sprintf("Quantity of %s changed from %d to %d", r.ItemName, r.OldQuantity, r.NewQuantity),
		})
	}

	for _, n := range notes {
		n.UserID = userID
		n.Metadata = meta
		n.CreatedAt = mov.CreatedAt
		if err := e.sink.Notify(ctx, n); err != nil {
			e.log.Warn().Err(err).
				Str("type", n.Type).
				Str("movement_id", mov.ID).
				Msg("notificación descartada")
		}
	}
}
