package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/warehouse-ledger/internal/domain"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
	"github.com/jhoicas/warehouse-ledger/internal/domain/repository"
)

var _ repository.StorageRepository = (*StorageRepo)(nil)

// StorageRepo jerarquía ubicación → área → unidad sobre PostgreSQL.
type StorageRepo struct {
	q Querier
}

// NewStorageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStorageRepository(q Querier) *StorageRepo {
	return &StorageRepo{q: q}
}

func (r *StorageRepo) CreateLocation(ctx context.Context, l *entity.Location) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO locations (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.Name, l.Description, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return wrapErr("insert location", err)
	}
	return nil
}

func (r *StorageRepo) CreateArea(ctx context.Context, a *entity.Area) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO areas (id, location_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.LocationID, a.Name, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.NotFoundError{Resource: "Location", ID: a.LocationID}
		}
		return wrapErr("insert area", err)
	}
	return nil
}

func (r *StorageRepo) CreateUnit(ctx context.Context, u *entity.StorageUnit) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO storage_units (id, area_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.AreaID, u.Name, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.NotFoundError{Resource: "Area", ID: u.AreaID}
		}
		return wrapErr("insert storage unit", err)
	}
	return nil
}

func (r *StorageRepo) GetLocationByID(ctx context.Context, id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at FROM locations WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &l.Description, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get location", err)
	}
	return &l, nil
}

func (r *StorageRepo) GetAreaByID(ctx context.Context, id string) (*entity.Area, error) {
	var a entity.Area
	err := r.q.QueryRow(ctx,
		`SELECT id, location_id, name, created_at, updated_at FROM areas WHERE id = $1`, id,
	).Scan(&a.ID, &a.LocationID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get area", err)
	}
	return &a, nil
}

func (r *StorageRepo) GetUnitByID(ctx context.Context, id string) (*entity.StorageUnit, error) {
	var u entity.StorageUnit
	err := r.q.QueryRow(ctx,
		`SELECT id, area_id, name, created_at, updated_at FROM storage_units WHERE id = $1`, id,
	).Scan(&u.ID, &u.AreaID, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get storage unit", err)
	}
	return &u, nil
}

const unitPathQuery = `
	SELECT u.id, u.name, a.id, a.name, l.id, l.name
	FROM storage_units u
	JOIN areas a ON a.id = u.area_id
	JOIN locations l ON l.id = a.location_id`

func (r *StorageRepo) ListUnitPaths(ctx context.Context) ([]entity.StorageUnitPath, error) {
	rows, err := r.q.Query(ctx, unitPathQuery+` ORDER BY u.seq`)
	if err != nil {
		return nil, wrapErr("list storage units", err)
	}
	defer rows.Close()

	out := []entity.StorageUnitPath{}
	for rows.Next() {
		var p entity.StorageUnitPath
		if err := rows.Scan(&p.UnitID, &p.UnitName, &p.AreaID, &p.AreaName, &p.LocationID, &p.LocationName); err != nil {
			return nil, wrapErr("scan storage unit", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list storage units", err)
	}
	return out, nil
}

// FindUnitByName areaName/locationName vacíos no filtran; con varias coincidencias gana la más antigua.
func (r *StorageRepo) FindUnitByName(ctx context.Context, name, areaName, locationName string) (*entity.StorageUnit, error) {
	var u entity.StorageUnit
	err := r.q.QueryRow(ctx, `
		SELECT u.id, u.area_id, u.name, u.created_at, u.updated_at
		FROM storage_units u
		JOIN areas a ON a.id = u.area_id
		JOIN locations l ON l.id = a.location_id
		WHERE u.name = $1
		  AND ($2 = '' OR a.name = $2)
		  AND ($3 = '' OR l.name = $3)
		ORDER BY u.seq
		LIMIT 1`,
		name, areaName, locationName,
	).Scan(&u.ID, &u.AreaID, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("find storage unit", err)
	}
	return &u, nil
}
