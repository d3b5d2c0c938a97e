// Package notify implementa el sink de notificaciones asíncrono: Notify encola sin bloquear y
// un grupo de workers entrega a cada Deliverer configurado (tabla notifications, Kafka...).
package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/warehouse-ledger/internal/application/ports"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

var (
	// ErrQueueFull la cola está llena y la notificación se descartó.
	ErrQueueFull = errors.New("notification queue full")
	// ErrClosed el dispatcher ya no acepta notificaciones.
	ErrClosed = errors.New("notification dispatcher closed")
)

var _ ports.NotificationSink = (*Dispatcher)(nil)

// Deliverer destino final de una notificación.
type Deliverer interface {
	Name() string
	Deliver(ctx context.Context, n entity.Notification) error
}

// Config tamaño de cola, workers y timeout por entrega.
type Config struct {
	QueueSize       int
	Workers         int
	DeliveryTimeout time.Duration
}

// Dispatcher cola acotada + workers.
type Dispatcher struct {
	queue      chan entity.Notification
	deliverers []Deliverer
	timeout    time.Duration
	log        zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher arranca los workers. Valores <= 0 usan 256 / 2 / 5s.
func NewDispatcher(cfg Config, log zerolog.Logger, deliverers ...Deliverer) *Dispatcher {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.DeliveryTimeout <= 0 {
		cfg.DeliveryTimeout = 5 * time.Second
	}
	d := &Dispatcher{
		queue:      make(chan entity.Notification, cfg.QueueSize),
		deliverers: deliverers,
		timeout:    cfg.DeliveryTimeout,
		log:        log,
	}
	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Notify encola sin bloquear. Completa ID y CreatedAt si vienen vacíos.
func (d *Dispatcher) Notify(_ context.Context, n entity.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}
	select {
	case d.queue <- n:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for n := range d.queue {
		d.deliver(n)
	}
}

func (d *Dispatcher) deliver(n entity.Notification) {
	for _, dl := range d.deliverers {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := dl.Deliver(ctx, n)
		cancel()
		if err != nil {
			d.log.Warn().Err(err).
				Str("deliverer", dl.Name()).
				Str("notification_id", n.ID).
				Str("type", n.Type).
				Msg("entrega de notificación fallida")
		}
	}
}

// Close deja de aceptar notificaciones y espera a que los workers vacíen la cola o expire ctx.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.log.Warn().Int("pending", len(d.queue)).Msg("cierre del dispatcher con notificaciones pendientes")
		return ctx.Err()
	}
}
