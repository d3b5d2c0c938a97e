package memory

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// NotificationRepository implementa repository.NotificationRepository.
type NotificationRepository struct {
	s *Store
}

var _ repository.NotificationRepository = (*NotificationRepository)(nil)

func (r *NotificationRepository) Create(_ context.Context, n *entity.Notification) error {
	return r.s.update(nil, func(st *state) error {
		st.notifications = append(st.notifications, copyNotification(n))
		return nil
	})
}

// ListByUser más reciente primero.
func (r *NotificationRepository) ListByUser(_ context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	r.s.view(nil, func(st *state) {
		for i := len(st.notifications) - 1; i >= 0; i-- {
			n := st.notifications[i]
			if n.UserID != userID || (unreadOnly && n.Read) {
				continue
			}
			out = append(out, copyNotification(n))
		}
	})
	return page(out, limit, offset), nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id, userID string) error {
	return r.s.update(nil, func(st *state) error {
		for _, n := range st.notifications {
			if n.ID == id && n.UserID == userID {
				n.Read = true
				return nil
			}
		}
		return &domain.NotFoundError{Resource: "Notification", ID: id}
	})
}
