package repository

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// NotificationRepository persistencia de notificaciones (propiedad del sink, fuera de la transacción del libro).
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
