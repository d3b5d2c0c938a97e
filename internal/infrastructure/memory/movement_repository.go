package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// MovementRepository implementa repository.MovementRepository (solo inserción).
type MovementRepository struct {
	s  *Store
	tx *state
}

var _ repository.MovementRepository = (*MovementRepository)(nil)

func (r *MovementRepository) Create(_ context.Context, m *entity.Movement) error {
	return r.s.update(r.tx, func(st *state) error {
		if _, ok := st.items[m.ItemID]; !ok {
			return &domain.NotFoundError{Resource: "Item", ID: m.ItemID}
		}
		cp := *m
		st.movements = append(st.movements, &cp)
		return nil
	})
}

func (r *MovementRepository) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	r.s.view(r.tx, func(st *state) {
		for _, m := range st.movements {
			if m.ID == id {
				cp := *m
				out = &cp
				return
			}
		}
	})
	return out, nil
}

// ListByItem más reciente primero; from/to inclusivos.
func (r *MovementRepository) ListByItem(_ context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	r.s.view(r.tx, func(st *state) {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.ItemID != itemID {
				continue
			}
			if from != nil && m.MovementDate.Before(*from) {
				continue
			}
			if to != nil && m.MovementDate.After(*to) {
				continue
			}
			cp := *m
			out = append(out, &cp)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].MovementDate.After(out[j].MovementDate) })
	return page(out, limit, offset), nil
}

func (r *MovementRepository) CountByItem(_ context.Context, itemID string) (int, error) {
	n := 0
	r.s.view(r.tx, func(st *state) {
		for _, m := range st.movements {
			if m.ItemID == itemID {
				n++
			}
		}
	})
	return n, nil
}
