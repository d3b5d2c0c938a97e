package ports

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// NotificationSink define el puerto de salida hacia la entrega de notificaciones.
// Notify no debe bloquear: la entrega ocurre de forma asíncrona y un error aquí
// (cola llena, sink cerrado) nunca debe convertirse en fallo del movimiento o la importación.
type NotificationSink interface {
	Notify(ctx context.Context, n entity.Notification) error
}
