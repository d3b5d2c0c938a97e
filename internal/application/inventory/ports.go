package inventory

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// TxFunc trabajo transaccional de un movimiento: los repos recibidos escriben dentro de la misma tx.
type TxFunc func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error

// TxRunner frontera transaccional del motor. Si fn devuelve error, o el contexto se cancela
// antes del commit, no queda ni la actualización del ítem ni la entrada del libro.
type TxRunner interface {
	Run(ctx context.Context, fn TxFunc) error
}
