package usecase

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/application/dto"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// NotificationUseCase lectura de notificaciones del usuario autenticado.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List notificaciones del usuario, más recientes primero.
func (uc *NotificationUseCase) List(ctx context.Context, userID string, unreadOnly bool, limit, offset int) (*dto.NotificationListResponse, error) {
	limit, offset = clampPage(limit, offset)
	list, err := uc.repo.ListByUser(ctx, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, dto.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Message:   n.Message,
			Metadata:  n.Metadata,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return &dto.NotificationListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// MarkRead marca como leída una notificación del usuario; de otro usuario → no encontrada.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, userID, id string) error {
	return uc.repo.MarkRead(ctx, id, userID)
}
