package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// ItemRepository implementa repository.ItemRepository.
type ItemRepository struct {
	s  *Store
	tx *state
}

var _ repository.ItemRepository = (*ItemRepository)(nil)

func (r *ItemRepository) Create(_ context.Context, item *entity.Item) error {
	return r.s.update(r.tx, func(st *state) error {
		if _, ok := st.items[item.ID]; ok {
			return domain.ErrConflict
		}
		if item.Quantity < 0 {
			return domain.ErrInsufficientStock
		}
		if item.SKU != nil && skuTaken(st, *item.SKU, "") {
			return domain.ErrConflict
		}
		st.items[item.ID] = copyItem(item)
		st.itemOrder = append(st.itemOrder, item.ID)
		return nil
	})
}

func (r *ItemRepository) GetByID(_ context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	r.s.view(r.tx, func(st *state) {
		if it, ok := st.items[id]; ok {
			out = copyItem(it)
		}
	})
	return out, nil
}

func (r *ItemRepository) GetBySKU(_ context.Context, sku string) (*entity.Item, error) {
	var out *entity.Item
	r.s.view(r.tx, func(st *state) {
		for _, id := range st.itemOrder {
			it := st.items[id]
			if it.SKU != nil && *it.SKU == sku {
				out = copyItem(it)
				return
			}
		}
	})
	return out, nil
}

// GetForUpdate dentro de Run la transacción ya tiene el almacén en exclusiva.
func (r *ItemRepository) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepository) UpdateQuantity(_ context.Context, id string, expected, quantity int) error {
	return r.s.update(r.tx, func(st *state) error {
		it, ok := st.writableItem(id)
		if !ok {
			return &domain.NotFoundError{Resource: "Item", ID: id}
		}
		if it.Quantity != expected {
			return domain.ErrConcurrentUpdate
		}
		if quantity < 0 {
			return domain.ErrInsufficientStock
		}
		it.Quantity = quantity
		return nil
	})
}

func (r *ItemRepository) UpdateStorageUnit(_ context.Context, id, storageUnitID string) error {
	return r.s.update(r.tx, func(st *state) error {
		it, ok := st.writableItem(id)
		if !ok {
			return &domain.NotFoundError{Resource: "Item", ID: id}
		}
		it.StorageUnitID = storageUnitID
		return nil
	})
}

func (r *ItemRepository) UpdateDetails(_ context.Context, item *entity.Item) error {
	return r.s.update(r.tx, func(st *state) error {
		it, ok := st.writableItem(item.ID)
		if !ok {
			return &domain.NotFoundError{Resource: "Item", ID: item.ID}
		}
		if item.SKU != nil && skuTaken(st, *item.SKU, item.ID) {
			return domain.ErrConflict
		}
		upd := copyItem(item)
		it.Name = upd.Name
		it.Description = upd.Description
		it.Price = upd.Price
		it.SKU = upd.SKU
		it.MinStock = upd.MinStock
		it.UpdatedAt = upd.UpdatedAt
		return nil
	})
}

func (r *ItemRepository) List(_ context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	var out []*entity.Item
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	r.s.view(r.tx, func(st *state) {
		for _, id := range st.itemOrder {
			it := st.items[id]
			if filter.StorageUnitID != "" && it.StorageUnitID != filter.StorageUnitID {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(it.Name), search) &&
				!strings.Contains(strings.ToLower(it.SKUValue()), search) {
				continue
			}
			out = append(out, copyItem(it))
		}
	})
	return page(out, filter.Limit, filter.Offset), nil
}

// Delete rechaza ítems con historial, igual que la FK RESTRICT de postgres.
func (r *ItemRepository) Delete(_ context.Context, id string) error {
	return r.s.update(r.tx, func(st *state) error {
		if _, ok := st.items[id]; !ok {
			return &domain.NotFoundError{Resource: "Item", ID: id}
		}
		for _, m := range st.movements {
			if m.ItemID == id {
				return domain.ErrHasMovements
			}
		}
		delete(st.items, id)
		// slice nuevo: el anterior puede estar compartido con un snapshot
		order := make([]string, 0, len(st.itemOrder))
		for _, oid := range st.itemOrder {
			if oid != id {
				order = append(order, oid)
			}
		}
		st.itemOrder = order
		return nil
	})
}

func skuTaken(st *state, sku, exceptID string) bool {
	for id, it := range st.items {
		if id != exceptID && it.SKU != nil && *it.SKU == sku {
			return true
		}
	}
	return false
}
