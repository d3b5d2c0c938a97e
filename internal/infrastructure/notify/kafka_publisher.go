package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// MessageWriter subconjunto de *kafka.Writer usado por el publicador.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica cada notificación como evento JSON; la clave es el userID
// para conservar el orden por usuario dentro de la partición.
type KafkaPublisher struct {
	w MessageWriter
}

// NewKafkaPublisher construye el writer para los brokers y el topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	})
}

// NewKafkaPublisherWithWriter permite inyectar el writer (pruebas).
func NewKafkaPublisherWithWriter(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{w: w}
}

// NotificationEvent payload publicado.
type NotificationEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	UserID    string         `json:"user_id"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func (p *KafkaPublisher) Name() string { return "kafka" }

func (p *KafkaPublisher) Deliver(ctx context.Context, n entity.Notification) error {
	payload, err := json.Marshal(NotificationEvent{
		EventID:   n.ID,
		EventType: n.Type,
		UserID:    n.UserID,
		Message:   n.Message,
		Metadata:  n.Metadata,
		Timestamp: n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("kafka: serializar evento: %w", err)
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.UserID),
		Value: payload,
		Time:  n.CreatedAt,
	})
}

// Close cierra el writer; llamar después de Dispatcher.Close.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}
