package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/jhoicas/warehouse-ledger/internal/application/inventory"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type recordingSink struct {
	mu    sync.Mutex
	notes []entity.Notification
	err   error
}

func (s *recordingSink) Notify(_ context.Context, n entity.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = append(s.notes, n)
	return s.err
}

func (s *recordingSink) types() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n.Type)
	}
	return out
}

type fixture struct {
	store  *memory.Store
	sink   *recordingSink
	engine *appinv.MovementEngine
}

// newFixture crea ubicación → área → unidades A y B y un ítem en A con la cantidad indicada.
func newFixture(t *testing.T, qty int) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	storage := store.Storage()
	require.NoError(t, storage.CreateLocation(ctx, &entity.Location{ID: "loc", Name: "Sede"}))
	require.NoError(t, storage.CreateArea(ctx, &entity.Area{ID: "area", LocationID: "loc", Name: "Bodega"}))
	require.NoError(t, storage.CreateUnit(ctx, &entity.StorageUnit{ID: "unit-a", AreaID: "area", Name: "A"}))
	require.NoError(t, storage.CreateUnit(ctx, &entity.StorageUnit{ID: "unit-b", AreaID: "area", Name: "B"}))
	require.NoError(t, store.Items().Create(ctx, &entity.Item{ID: "item", Name: "Taladro", Quantity: qty, StorageUnitID: "unit-a"}))

	sink := &recordingSink{}
	engine := appinv.NewMovementEngine(memory.NewTxRunner(store), storage, sink,
		appinv.EngineConfig{LowStockThreshold: 10}, zerolog.Nop())
	return &fixture{store: store, sink: sink, engine: engine}
}

func (f *fixture) item(t *testing.T) *entity.Item {
	t.Helper()
	it, err := f.store.Items().GetByID(context.Background(), "item")
	require.NoError(t, err)
	require.NotNil(t, it)
	return it
}

func (f *fixture) ledgerCount(t *testing.T) int {
	t.Helper()
	n, err := f.store.Movements().CountByItem(context.Background(), "item")
	require.NoError(t, err)
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_SalidaMayorAlStock(t *testing.T) {
	f := newFixture(t, 8)

	res, err := f.engine.ApplyMovement(context.Background(), appinv.MovementInput{
		ItemID: "item", UserID: "u", Type: entity.MovementTypeOUT, Quantity: 9,
	})

	assert.Nil(t, res)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "Cannot remove 9 items. Only 8 in stock.", err.Error())
	assert.Equal(t, 8, f.item(t).Quantity)
	assert.Zero(t, f.ledgerCount(t))
	assert.Empty(t, f.sink.types())
}

func TestApplyMovement_SalidaConStockBajo(t *testing.T) {
	f := newFixture(t, 20)

	res, err := f.engine.ApplyMovement(context.Background(), appinv.MovementInput{
		ItemID: "item", UserID: "u", Type: entity.MovementTypeOUT, Quantity: 15,
	})

	require.NoError(t, err)
	assert.Equal(t, 20, res.OldQuantity)
	assert.Equal(t, 5, res.NewQuantity)
	assert.Equal(t, "Taladro", res.ItemName)
	assert.Equal(t, 5, f.item(t).Quantity)
	assert.Equal(t, 1, f.ledgerCount(t))

	mov, err := f.store.Movements().GetByID(context.Background(), res.Movement.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	assert.Equal(t, 20, mov.QuantityBefore)
	assert.Equal(t, 5, mov.QuantityAfter)
	require.NotNil(t, mov.FromStorageUnitID)
	assert.Equal(t, "unit-a", *mov.FromStorageUnitID)

	assert.ElementsMatch(t, []string{
		entity.NotificationMovement, entity.NotificationLowStock, entity.NotificationQuantityChanged,
	}, f.sink.types())
}

func TestApplyMovement_Traslado(t *testing.T) {
	f := newFixture(t, 12)

	res, err := f.engine.ApplyMovement(context.Background(), appinv.MovementInput{
		ItemID: "item", Type: entity.MovementTypeTRANSFER, Quantity: 5,
		FromStorageUnitID: "unit-a", ToStorageUnitID: "unit-b",
	})

	require.NoError(t, err)
	it := f.item(t)
	assert.Equal(t, 12, it.Quantity)
	assert.Equal(t, "unit-b", it.StorageUnitID)
	assert.Equal(t, 12, res.NewQuantity)
	require.NotNil(t, res.Movement.FromStorageUnitID)
	require.NotNil(t, res.Movement.ToStorageUnitID)
	assert.Equal(t, "unit-a", *res.Movement.FromStorageUnitID)
	assert.Equal(t, "unit-b", *res.Movement.ToStorageUnitID)
	assert.Equal(t, 1, f.ledgerCount(t))
	assert.Equal(t, []string{entity.NotificationMovement}, f.sink.types())
}

func TestApplyMovement_TrasladoDesdeOrigenIncorrecto(t *testing.T) {
	f := newFixture(t, 12)

	_, err := f.engine.ApplyMovement(context.Background(), appinv.MovementInput{
		ItemID: "item", Type: entity.MovementTypeTRANSFER, Quantity: 5,
		FromStorageUnitID: "unit-b", ToStorageUnitID: "unit-a",
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	it := f.item(t)
	assert.Equal(t, "unit-a", it.StorageUnitID)
	assert.Equal(t, 12, it.Quantity)
	assert.Zero(t, f.ledgerCount(t))
	assert.Empty(t, f.sink.types())
}

func TestApplyMovement_EntradaYAjuste(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	res, err := f.engine.ApplyMovement(ctx, appinv.MovementInput{ItemID: "item", Type: entity.MovementTypeIN, Quantity: 7})
	require.NoError(t, err)
	assert.Equal(t, 10, res.NewQuantity)
	require.NotNil(t, res.Movement.ToStorageUnitID)
	assert.Equal(t, "unit-a", *res.Movement.ToStorageUnitID)

	res, err = f.engine.ApplyMovement(ctx, appinv.MovementInput{ItemID: "item", Type: entity.MovementTypeADJUSTMENT, Quantity: 42})
	require.NoError(t, err)
	assert.Equal(t, 10, res.OldQuantity)
	assert.Equal(t, 42, res.NewQuantity)
	assert.Equal(t, 42, f.item(t).Quantity)
	assert.Equal(t, 2, f.ledgerCount(t))
}

func TestApplyMovement_SalidaExactaDejaCero(t *testing.T) {
	f := newFixture(t, 4)

	res, err := f.engine.ApplyMovement(context.Background(), appinv.MovementInput{
		ItemID: "item", Type: entity.MovementTypeOUT, Quantity: 4,
	})

	require.NoError(t, err)
	assert.Zero(t, res.NewQuantity)
	assert.Zero(t, f.item(t).Quantity)
}

func TestApplyMovement_Validaciones(t *testing.T) {
	cases := []struct {
		name    string
		in      appinv.MovementInput
		wantErr error
	}{
		{"cantidad cero", appinv.MovementInput{ItemID: "item", Type: entity.MovementTypeIN, Quantity: 0}, domain.ErrInvalidInput},
		{"tipo desconocido", appinv.MovementInput{ItemID: "item", Type: "LOAN", Quantity: 1}, domain.ErrInvalidInput},
		{"sin ítem", appinv.MovementInput{Type: entity.MovementTypeIN, Quantity: 1}, domain.ErrInvalidInput},
		{"traslado sin destino", appinv.MovementInput{ItemID: "item", Type: entity.MovementTypeTRANSFER, Quantity: 1, FromStorageUnitID: "unit-a"}, domain.ErrInvalidInput},
		{"ítem inexistente", appinv.MovementInput{ItemID: "nope", Type: entity.MovementTypeIN, Quantity: 1}, domain.ErrNotFound},
		{"unidad inexistente", appinv.MovementInput{ItemID: "item", Type: entity.MovementTypeTRANSFER, Quantity: 1, FromStorageUnitID: "unit-a", ToStorageUnitID: "unit-z"}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, 5)
			_, err := f.engine.ApplyMovement(context.Background(), tc.in)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, 5, f.item(t).Quantity)
			assert.Zero(t, f.ledgerCount(t))
		})
	}
}

func TestApplyMovement_FalloDeNotificacionNoAfecta(t *testing.T) {
	f := newFixture(t, 20)
	f.sink.err = errors.New("sink caído")

	res, err := f.engine.ApplyMovement(context.Background(), appinv.MovementInput{
		ItemID: "item", Type: entity.MovementTypeOUT, Quantity: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, 19, res.NewQuantity)
	assert.Equal(t, 1, f.ledgerCount(t))
}

func TestApplyMovement_UmbralPropioDelItem(t *testing.T) {
	f := newFixture(t, 20)
	item := f.item(t)
	minStock := 2
	item.MinStock = &minStock
	require.NoError(t, f.store.Items().UpdateDetails(context.Background(), item))

	_, err := f.engine.ApplyMovement(context.Background(), appinv.MovementInput{
		ItemID: "item", Type: entity.MovementTypeOUT, Quantity: 15,
	})

	require.NoError(t, err)
	assert.NotContains(t, f.sink.types(), entity.NotificationLowStock)
}

func TestApplyMovement_SalidasConcurrentesSeSerializan(t *testing.T) {
	f := newFixture(t, 10)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, insufficient := 0, 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.ApplyMovement(context.Background(), appinv.MovementInput{
				ItemID: "item", Type: entity.MovementTypeOUT, Quantity: 1,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficient++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	assert.Equal(t, 15, insufficient)
	assert.Zero(t, f.item(t).Quantity)
	assert.Equal(t, 10, f.ledgerCount(t))
}

func TestApplyMovement_LibroCuadraConCantidad(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	steps := []appinv.MovementInput{
		{ItemID: "item", Type: entity.MovementTypeIN, Quantity: 30},
		{ItemID: "item", Type: entity.MovementTypeOUT, Quantity: 12},
		{ItemID: "item", Type: entity.MovementTypeOUT, Quantity: 50},
		{ItemID: "item", Type: entity.MovementTypeTRANSFER, Quantity: 3, FromStorageUnitID: "unit-a", ToStorageUnitID: "unit-b"},
		{ItemID: "item", Type: entity.MovementTypeADJUSTMENT, Quantity: 17},
	}
	for _, in := range steps {
		_, _ = f.engine.ApplyMovement(ctx, in)
	}

	movs, err := f.store.Movements().ListByItem(ctx, "item", nil, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, movs, 4)
	assert.Equal(t, f.item(t).Quantity, movs[0].QuantityAfter)
	for i := 0; i < len(movs)-1; i++ {
		assert.Equal(t, movs[i+1].QuantityAfter, movs[i].QuantityBefore)
	}
}
