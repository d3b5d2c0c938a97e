package notify

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// StoreDeliverer persiste en la tabla notifications (lo que lee la API de notificaciones).
type StoreDeliverer struct {
	repo repository.NotificationRepository
}

// NewStoreDeliverer construye el deliverer sobre el repositorio.
func NewStoreDeliverer(repo repository.NotificationRepository) *StoreDeliverer {
	return &StoreDeliverer{repo: repo}
}

func (s *StoreDeliverer) Name() string { return "store" }

func (s *StoreDeliverer) Deliver(ctx context.Context, n entity.Notification) error {
	return s.repo.Create(ctx, &n)
}
