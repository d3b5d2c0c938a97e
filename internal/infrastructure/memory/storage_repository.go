package memory

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// StorageRepository implementa repository.StorageRepository.
type StorageRepository struct {
	s *Store
}

var _ repository.StorageRepository = (*StorageRepository)(nil)

func (r *StorageRepository) CreateLocation(_ context.Context, l *entity.Location) error {
	return r.s.update(nil, func(st *state) error {
		if _, ok := st.locations[l.ID]; ok {
			return domain.ErrConflict
		}
		cp := *l
		st.locations[l.ID] = &cp
		return nil
	})
}

func (r *StorageRepository) CreateArea(_ context.Context, a *entity.Area) error {
	return r.s.update(nil, func(st *state) error {
		if _, ok := st.locations[a.LocationID]; !ok {
			return &domain.NotFoundError{Resource: "Location", ID: a.LocationID}
		}
		if _, ok := st.areas[a.ID]; ok {
			return domain.ErrConflict
		}
		cp := *a
		st.areas[a.ID] = &cp
		return nil
	})
}

func (r *StorageRepository) CreateUnit(_ context.Context, u *entity.StorageUnit) error {
	return r.s.update(nil, func(st *state) error {
		if _, ok := st.areas[u.AreaID]; !ok {
			return &domain.NotFoundError{Resource: "Area", ID: u.AreaID}
		}
		if _, ok := st.units[u.ID]; ok {
			return domain.ErrConflict
		}
		cp := *u
		st.units[u.ID] = &cp
		st.unitOrder = append(st.unitOrder, u.ID)
		return nil
	})
}

func (r *StorageRepository) GetLocationByID(_ context.Context, id string) (*entity.Location, error) {
	var out *entity.Location
	r.s.view(nil, func(st *state) {
		if l, ok := st.locations[id]; ok {
			cp := *l
			out = &cp
		}
	})
	return out, nil
}

func (r *StorageRepository) GetAreaByID(_ context.Context, id string) (*entity.Area, error) {
	var out *entity.Area
	r.s.view(nil, func(st *state) {
		if a, ok := st.areas[id]; ok {
			cp := *a
			out = &cp
		}
	})
	return out, nil
}

func (r *StorageRepository) GetUnitByID(_ context.Context, id string) (*entity.StorageUnit, error) {
	var out *entity.StorageUnit
	r.s.view(nil, func(st *state) {
		if u, ok := st.units[id]; ok {
			cp := *u
			out = &cp
		}
	})
	return out, nil
}

func (r *StorageRepository) ListUnitPaths(_ context.Context) ([]entity.StorageUnitPath, error) {
	var out []entity.StorageUnitPath
	r.s.view(nil, func(st *state) {
		out = make([]entity.StorageUnitPath, 0, len(st.unitOrder))
		for _, id := range st.unitOrder {
			out = append(out, unitPath(st, st.units[id]))
		}
	})
	return out, nil
}

func (r *StorageRepository) FindUnitByName(_ context.Context, name, areaName, locationName string) (*entity.StorageUnit, error) {
	var out *entity.StorageUnit
	r.s.view(nil, func(st *state) {
		for _, id := range st.unitOrder {
			u := st.units[id]
			if u.Name != name {
				continue
			}
			p := unitPath(st, u)
			if areaName != "" && p.AreaName != areaName {
				continue
			}
			if locationName != "" && p.LocationName != locationName {
				continue
			}
			cp := *u
			out = &cp
			return
		}
	})
	return out, nil
}

func unitPath(st *state, u *entity.StorageUnit) entity.StorageUnitPath {
	p := entity.StorageUnitPath{UnitID: u.ID, UnitName: u.Name, AreaID: u.AreaID}
	if a, ok := st.areas[u.AreaID]; ok {
		p.AreaName = a.Name
		p.LocationID = a.LocationID
		if l, ok := st.locations[a.LocationID]; ok {
			p.LocationName = l.Name
		}
	}
	return p
}
