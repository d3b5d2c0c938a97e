package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/warehouse-ledger/internal/application/inventory"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// maxTxAttempts intentos ante deadlock o fallo de serialización.
const maxTxAttempts = 3

// TxRunner ejecuta el callback del motor dentro de una transacción READ COMMITTED.
// El bloqueo lo da SELECT ... FOR UPDATE en GetForUpdate, no el nivel de aislamiento.
type TxRunner struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, log zerolog.Logger) *TxRunner {
	return &TxRunner{pool: pool, log: log}
}

// Run ejecuta fn con repos atados a la tx y hace Commit o Rollback. Si Postgres aborta la tx por
// deadlock (40P01) o serialización (40001) se repite completa: fn relee el ítem en cada intento.
// Un contexto cancelado hace fallar el Commit, con lo que no queda ningún cambio.
func (r *TxRunner) Run(ctx context.Context, fn inventory.TxFunc) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = r.runOnce(ctx, fn)
		if err == nil || !isRetryable(err) || ctx.Err() != nil {
			return err
		}
		r.log.Warn().Err(err).Int("attempt", attempt).Msg("transacción abortada por conflicto, reintentando")
		time.Sleep(time.Duration(attempt) * 20 * time.Millisecond)
	}
	return err
}

func (r *TxRunner) runOnce(ctx context.Context, fn inventory.TxFunc) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrPersistence, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrPersistence, err)
	}
	return nil
}
