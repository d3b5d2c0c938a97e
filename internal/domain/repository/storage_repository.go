package repository

import (
	"context"

	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

// StorageRepository define el puerto para la jerarquía ubicación → área → unidad.
// Las filas son de lectura mayoritaria; no requieren bloqueo para el motor de movimientos.
type StorageRepository interface {
	CreateLocation(ctx context.Context, location *entity.Location) error
	CreateArea(ctx context.Context, area *entity.Area) error
	CreateUnit(ctx context.Context, unit *entity.StorageUnit) error

	GetLocationByID(ctx context.Context, id string) (*entity.Location, error)
	GetAreaByID(ctx context.Context, id string) (*entity.Area, error)
	GetUnitByID(ctx context.Context, id string) (*entity.StorageUnit, error)

	// ListUnitPaths devuelve todas las unidades con nombres de área y ubicación, en orden estable de creación.
	ListUnitPaths(ctx context.Context) ([]entity.StorageUnitPath, error)

	// FindUnitByName busca por nombre de unidad; areaName/locationName vacíos no filtran.
	// Si hay varias coincidencias devuelve la primera.
	FindUnitByName(ctx context.Context, name, areaName, locationName string) (*entity.StorageUnit, error)
}
