package entity

import "time"

// Tipos de notificación.
const (
	NotificationMovement        = "MOVEMENT"
	NotificationLowStock        = "LOW_STOCK"
	NotificationQuantityChanged = "QUANTITY_CHANGED"
	NotificationItemAdded       = "ITEM_ADDED"
)

// Notification registro secundario de un evento de interés; su ciclo de vida es independiente del libro.
type Notification struct {
	ID        string
	UserID    string
	Type      string
	Message   string
	Metadata  map[string]any
	Read      bool
	CreatedAt time.Time
}
