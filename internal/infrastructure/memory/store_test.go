package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

func seedItem(t *testing.T, s *Store, id string, qty int) {
	t.Helper()
	require.NoError(t, s.Items().Create(context.Background(), &entity.Item{ID: id, Name: id, Quantity: qty}))
}

func TestTxRunner_RollbackSiFnFalla(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "it-1", 5)

	boom := errors.New("boom")
	err := NewTxRunner(s).Run(context.Background(), func(items repository.ItemRepository, movs repository.MovementRepository) error {
		require.NoError(t, items.UpdateQuantity(context.Background(), "it-1", 5, 1))
		require.NoError(t, movs.Create(context.Background(), &entity.Movement{ID: "m-1", ItemID: "it-1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	it, _ := s.Items().GetByID(context.Background(), "it-1")
	assert.Equal(t, 5, it.Quantity)
	n, _ := s.Movements().CountByItem(context.Background(), "it-1")
	assert.Zero(t, n)
}

func TestTxRunner_ContextoCanceladoAntesDelCommit(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "it-1", 5)
	ctx, cancel := context.WithCancel(context.Background())

	err := NewTxRunner(s).Run(ctx, func(items repository.ItemRepository, _ repository.MovementRepository) error {
		require.NoError(t, items.UpdateQuantity(ctx, "it-1", 5, 0))
		cancel()
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	it, _ := s.Items().GetByID(context.Background(), "it-1")
	assert.Equal(t, 5, it.Quantity)
}

func TestTxRunner_LecturasVenUltimoCommit(t *testing.T) {
	s := NewStore()
	seedItem(t, s, "it-1", 5)

	err := NewTxRunner(s).Run(context.Background(), func(items repository.ItemRepository, _ repository.MovementRepository) error {
		require.NoError(t, items.UpdateQuantity(context.Background(), "it-1", 5, 9))
		outside, _ := s.Items().GetByID(context.Background(), "it-1")
		assert.Equal(t, 5, outside.Quantity)
		return nil
	})
	require.NoError(t, err)

	it, _ := s.Items().GetByID(context.Background(), "it-1")
	assert.Equal(t, 9, it.Quantity)
}

func TestTxRunner_SnapshotNoFiltraAlEstadoConfirmado(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedItem(t, s, "it-1", 5)
	seedItem(t, s, "it-2", 3)
	require.NoError(t, s.Movements().Create(ctx, &entity.Movement{ID: "m-0", ItemID: "it-1"}))

	err := NewTxRunner(s).Run(ctx, func(items repository.ItemRepository, movs repository.MovementRepository) error {
		require.NoError(t, items.UpdateStorageUnit(ctx, "it-1", "otra"))
		require.NoError(t, items.Delete(ctx, "it-2"))
		require.NoError(t, movs.Create(ctx, &entity.Movement{ID: "m-tx", ItemID: "it-1"}))
		return errors.New("rollback")
	})
	require.Error(t, err)

	// un append confirmado después del rollback no debe ver restos de la tx
	require.NoError(t, s.Movements().Create(ctx, &entity.Movement{ID: "m-1", ItemID: "it-1"}))
	movs, err := s.Movements().ListByItem(ctx, "it-1", nil, nil, 0, 0)
	require.NoError(t, err)
	ids := []string{}
	for _, m := range movs {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{"m-0", "m-1"}, ids)

	it, _ := s.Items().GetByID(ctx, "it-1")
	assert.Empty(t, it.StorageUnitID)
	all, err := s.Items().List(ctx, repository.ItemFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestItemRepository_Restricciones(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	sku := "ABC"
	require.NoError(t, s.Items().Create(ctx, &entity.Item{ID: "a", Name: "A", SKU: &sku}))

	t.Run("SKU duplicado", func(t *testing.T) {
		dup := "ABC"
		err := s.Items().Create(ctx, &entity.Item{ID: "b", Name: "B", SKU: &dup})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
	t.Run("compare-and-set", func(t *testing.T) {
		assert.ErrorIs(t, s.Items().UpdateQuantity(ctx, "a", 7, 1), domain.ErrConcurrentUpdate)
	})
	t.Run("cantidad negativa", func(t *testing.T) {
		assert.ErrorIs(t, s.Items().UpdateQuantity(ctx, "a", 0, -1), domain.ErrInsufficientStock)
	})
	t.Run("no existe", func(t *testing.T) {
		it, err := s.Items().GetByID(ctx, "zz")
		require.NoError(t, err)
		assert.Nil(t, it)
	})
	t.Run("borrar con historial", func(t *testing.T) {
		require.NoError(t, s.Movements().Create(ctx, &entity.Movement{ID: "m", ItemID: "a"}))
		assert.ErrorIs(t, s.Items().Delete(ctx, "a"), domain.ErrHasMovements)
	})
}

func TestStorageRepository_ListUnitPaths(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	repo := s.Storage()
	require.NoError(t, repo.CreateLocation(ctx, &entity.Location{ID: "l1", Name: "Sede"}))
	require.NoError(t, repo.CreateArea(ctx, &entity.Area{ID: "a1", LocationID: "l1", Name: "Bodega"}))
	require.NoError(t, repo.CreateUnit(ctx, &entity.StorageUnit{ID: "u1", AreaID: "a1", Name: "Estante 1"}))
	require.NoError(t, repo.CreateUnit(ctx, &entity.StorageUnit{ID: "u2", AreaID: "a1", Name: "Estante 2"}))

	err := repo.CreateUnit(ctx, &entity.StorageUnit{ID: "u3", AreaID: "nope", Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	paths, err := repo.ListUnitPaths(ctx)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, entity.StorageUnitPath{
		UnitID: "u1", UnitName: "Estante 1", AreaID: "a1", AreaName: "Bodega", LocationID: "l1", LocationName: "Sede",
	}, paths[0])

	u, err := repo.FindUnitByName(ctx, "Estante 2", "", "Sede")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u2", u.ID)
}

func TestNotificationRepository_MarkRead(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Notifications()
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n1", UserID: "u", Type: entity.NotificationMovement}))
	require.NoError(t, repo.Create(ctx, &entity.Notification{ID: "n2", UserID: "u", Type: entity.NotificationLowStock}))

	require.NoError(t, repo.MarkRead(ctx, "n1", "u"))
	assert.ErrorIs(t, repo.MarkRead(ctx, "n1", "otro"), domain.ErrNotFound)

	unread, err := repo.ListByUser(ctx, "u", true, 10, 0)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "n2", unread[0].ID)
}
