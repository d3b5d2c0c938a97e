// Package bootstrap abre el almacenamiento configurado y expone sus repositorios
// con las interfaces de dominio, compartido por el servidor HTTP y la CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/warehouse-ledger/internal/application/inventory"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
	"github.com/jhoicas/warehouse-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/warehouse-ledger/pkg/config"
)

// Store repositorios y TxRunner del driver elegido.
type Store struct {
	Items         repository.ItemRepository
	Movements     repository.MovementRepository
	Storage       repository.StorageRepository
	Notifications repository.NotificationRepository
	TxRunner      inventory.TxRunner
	close         func()
}

// Close libera el pool de conexiones (no-op para memoria).
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStore abre postgres (aplicando migraciones) o el store en memoria según STORE_DRIVER.
func OpenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn().Msg("usando store en memoria: los datos se pierden al reiniciar")
		m := memory.NewStore()
		return &Store{
			Items:         m.Items(),
			Movements:     m.Movements(),
			Storage:       m.Storage(),
			Notifications: m.Notifications(),
			TxRunner:      memory.NewTxRunner(m),
		}, nil
	case config.StoreDriverPostgres, "":
		pool, err := postgres.NewPool(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
		return &Store{
			Items:         postgres.NewItemRepository(pool),
			Movements:     postgres.NewMovementRepository(pool),
			Storage:       postgres.NewStorageRepository(pool),
			Notifications: postgres.NewNotificationRepository(pool),
			TxRunner:      postgres.NewTxRunner(pool, log),
			close:         pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.App.StoreDriver)
	}
}
