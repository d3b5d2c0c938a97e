package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/warehouse-ledger/internal/application/dto"
	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

// StorageUseCase administra la jerarquía ubicación → área → unidad.
type StorageUseCase struct {
	repo repository.StorageRepository
}

// NewStorageUseCase construye el caso de uso.
func NewStorageUseCase(repo repository.StorageRepository) *StorageUseCase {
	return &StorageUseCase{repo: repo}
}

// CreateLocation crea una nueva ubicación.
func (uc *StorageUseCase) CreateLocation(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name, err := requireName("name", in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	l := &entity.Location{ID: uuid.New().String(), Name: name, Description: in.Description, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.CreateLocation(ctx, l); err != nil {
		return nil, err
	}
	return &dto.LocationResponse{ID: l.ID, Name: l.Name, Description: l.Description, CreatedAt: l.CreatedAt}, nil
}

// CreateArea crea un área dentro de una ubicación existente.
func (uc *StorageUseCase) CreateArea(ctx context.Context, in dto.CreateAreaRequest) (*dto.AreaResponse, error) {
	name, err := requireName("name", in.Name)
	if err != nil {
		return nil, err
	}
	loc, err := uc.repo.GetLocationByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, &domain.NotFoundError{Resource: "Location", ID: in.LocationID}
	}
	now := time.Now()
	a := &entity.Area{ID: uuid.New().String(), LocationID: loc.ID, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.CreateArea(ctx, a); err != nil {
		return nil, err
	}
	return &dto.AreaResponse{ID: a.ID, LocationID: a.LocationID, Name: a.Name, CreatedAt: a.CreatedAt}, nil
}

// CreateStorageUnit crea una unidad dentro de un área existente.
func (uc *StorageUseCase) CreateStorageUnit(ctx context.Context, in dto.CreateStorageUnitRequest) (*dto.StorageUnitResponse, error) {
	name, err := requireName("name", in.Name)
	if err != nil {
		return nil, err
	}
	area, err := uc.repo.GetAreaByID(ctx, in.AreaID)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, &domain.NotFoundError{Resource: "Area", ID: in.AreaID}
	}
	now := time.Now()
	u := &entity.StorageUnit{ID: uuid.New().String(), AreaID: area.ID, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.CreateUnit(ctx, u); err != nil {
		return nil, err
	}
	return &dto.StorageUnitResponse{ID: u.ID, AreaID: u.AreaID, Name: u.Name, CreatedAt: u.CreatedAt}, nil
}

// ListStorageUnits todas las unidades con nombres de área y ubicación.
func (uc *StorageUseCase) ListStorageUnits(ctx context.Context) ([]dto.StorageUnitPathResponse, error) {
	paths, err := uc.repo.ListUnitPaths(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StorageUnitPathResponse, 0, len(paths))
	for _, p := range paths {
		out = append(out, dto.StorageUnitPathResponse{
			ID: p.UnitID, Name: p.UnitName,
			AreaID: p.AreaID, AreaName: p.AreaName,
			LocationID: p.LocationID, LocationName: p.LocationName,
		})
	}
	return out, nil
}

// FindStorageUnitByName busca por nombre exacto, acotando por área/ubicación si se indican.
// Con varias coincidencias devuelve la primera creada.
func (uc *StorageUseCase) FindStorageUnitByName(ctx context.Context, name, areaName, locationName string) (*dto.StorageUnitResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "Name is required", nil)
	}
	u, err := uc.repo.FindUnitByName(ctx, name, strings.TrimSpace(areaName), strings.TrimSpace(locationName))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, &domain.NotFoundError{Resource: "Storage unit", ID: name}
	}
	return &dto.StorageUnitResponse{ID: u.ID, AreaID: u.AreaID, Name: u.Name, CreatedAt: u.CreatedAt}, nil
}
