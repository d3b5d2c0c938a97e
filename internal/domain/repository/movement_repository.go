package repository

import (
	"context"
	"time"

	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// MovementRepository define el puerto del libro de movimientos (solo inserción y lectura).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error)
	CountByItem(ctx context.Context, itemID string) (int, error)
}
