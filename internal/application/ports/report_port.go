package ports

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// MovementReport datos necesarios para renderizar el historial de movimientos de un ítem.
type MovementReport struct {
	Item        *entity.Item
	UnitNames   map[string]string // storageUnitID → "Ubicación / Área / Unidad"
	Movements   []*entity.Movement
	GeneratedAt time.Time
}

// MovementReportGenerator genera la representación PDF del historial.
type MovementReportGenerator interface {
	GenerateMovementReport(ctx context.Context, report MovementReport) ([]byte, error)
}
