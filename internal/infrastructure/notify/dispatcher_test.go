package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/warehouse-ledger/internal/infrastructure/notify"
)

type recordingDeliverer struct {
	mu    sync.Mutex
	got   []entity.Notification
	block chan struct{}
	err   error
}

func (r *recordingDeliverer) Name() string { return "recording" }

func (r *recordingDeliverer) Deliver(_ context.Context, n entity.Notification) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n)
	return r.err
}

func (r *recordingDeliverer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.got)
}

func TestDispatcher_EntregaATodos(t *testing.T) {
	a := &recordingDeliverer{}
	b := &recordingDeliverer{err: errors.New("caído")}
	d := notify.NewDispatcher(notify.Config{QueueSize: 8, Workers: 2}, zerolog.Nop(), b, a)

	for i := 0; i < 5; i++ {
		require.NoError(t, d.Notify(context.Background(), entity.Notification{UserID: "u", Type: entity.NotificationMovement}))
	}
	require.NoError(t, d.Close(context.Background()))

	assert.Equal(t, 5, a.count())
	assert.Equal(t, 5, b.count())
	for _, n := range a.got {
		assert.NotEmpty(t, n.ID)
		assert.False(t, n.CreatedAt.IsZero())
	}
}

func TestDispatcher_ColaLlenaNoBloquea(t *testing.T) {
	slow := &recordingDeliverer{block: make(chan struct{})}
	d := notify.NewDispatcher(notify.Config{QueueSize: 1, Workers: 1}, zerolog.Nop(), slow)

	// El primero lo toma el worker (bloqueado), el segundo ocupa la cola
	require.NoError(t, d.Notify(context.Background(), entity.Notification{UserID: "u"}))
	require.Eventually(t, func() bool {
		return d.Notify(context.Background(), entity.Notification{UserID: "u"}) == nil
	}, time.Second, 5*time.Millisecond)

	start := time.Now()
	err := d.Notify(context.Background(), entity.Notification{UserID: "u"})
	assert.ErrorIs(t, err, notify.ErrQueueFull)
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(slow.block)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 2, slow.count())
}

func TestDispatcher_CerradoRechaza(t *testing.T) {
	d := notify.NewDispatcher(notify.Config{}, zerolog.Nop())
	require.NoError(t, d.Close(context.Background()))

	assert.ErrorIs(t, d.Notify(context.Background(), entity.Notification{}), notify.ErrClosed)
	assert.NoError(t, d.Close(context.Background()))
}

func TestStoreDeliverer_Persiste(t *testing.T) {
	store := memory.NewStore()
	d := notify.NewDispatcher(notify.Config{}, zerolog.Nop(), notify.NewStoreDeliverer(store.Notifications()))

	require.NoError(t, d.Notify(context.Background(), entity.Notification{UserID: "u", Type: entity.NotificationLowStock, Message: "bajo"}))
	require.NoError(t, d.Close(context.Background()))

	list, err := store.Notifications().ListByUser(context.Background(), "u", false, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationLowStock, list[0].Type)
}

type fakeWriter struct {
	msgs []kafka.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_Deliver(t *testing.T) {
	w := &fakeWriter{}
	p := notify.NewKafkaPublisherWithWriter(w)

	err := p.Deliver(context.Background(), entity.Notification{
		ID: "n1", UserID: "user-1", Type: entity.NotificationMovement, Message: "m",
		Metadata: map[string]any{"itemId": "it"}, CreatedAt: time.Now(),
	})

	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "user-1", string(w.msgs[0].Key))
	var ev notify.NotificationEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, "n1", ev.EventID)
	assert.Equal(t, entity.NotificationMovement, ev.EventType)
	assert.Equal(t, "it", ev.Metadata["itemId"])
}
