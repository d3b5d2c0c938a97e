package postgres

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo tabla notifications. Se escribe desde el worker del dispatcher, nunca desde la tx del libro.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	meta := n.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, message, metadata, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		n.ID, n.UserID, n.Type, n.Message, meta, n.Read, n.CreatedAt)
	if err != nil {
		return wrapErr("insert notification", err)
	}
	return nil
}

func (r *NotificationRepo) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, user_id, type, message, metadata, read, created_at
		FROM notifications
		WHERE user_id = $1 AND (NOT $2 OR NOT read)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		userID, unreadOnly, limitArg(limit), offset)
	if err != nil {
		return nil, wrapErr("list notifications", err)
	}
	defer rows.Close()

	list := []*entity.Notification{}
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.Metadata, &n.Read, &n.CreatedAt); err != nil {
			return nil, wrapErr("scan notification", err)
		}
		list = append(list, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list notifications", err)
	}
	return list, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	tag, err := r.q.Exec(ctx, `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return wrapErr("mark notification read", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Resource: "Notification", ID: id}
	}
	return nil
}
