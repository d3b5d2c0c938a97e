package importer

import "github.com/jhoicas/warehouse-ledger/internal/domain/entity"

// Resolver traduce nombres de unidad/área/ubicación a IDs de unidad sobre un directorio
// cargado una vez por lote. No hace I/O ni devuelve errores: una fila sin coincidencia
// simplemente queda sin StorageUnitID.
type Resolver struct {
	byName map[string][]entity.StorageUnitPath
}

// NewResolver indexa las unidades por nombre conservando su orden.
func NewResolver(units []entity.StorageUnitPath) *Resolver {
	byName := make(map[string][]entity.StorageUnitPath, len(units))
	for _, u := range units {
		byName[u.UnitName] = append(byName[u.UnitName], u)
	}
	return &Resolver{byName: byName}
}

// Resolve devuelve una copia de rows con StorageUnitID (y Ambiguous) anotados.
func (r *Resolver) Resolve(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, row := range rows {
		out[i] = row
		id, ambiguous, ok := r.Match(row.StorageUnitName, deref(row.AreaName), deref(row.LocationName))
		if ok {
			out[i].StorageUnitID = id
			out[i].Ambiguous = ambiguous
		}
	}
	return out
}

// Match busca la unidad por nombre y la acota por área y/o ubicación si se indican.
// Con varias candidatas gana la primera y ambiguous es true.
func (r *Resolver) Match(unitName, areaName, locationName string) (id string, ambiguous bool, ok bool) {
	var candidates []entity.StorageUnitPath
	for _, u := range r.byName[unitName] {
		if areaName != "" && u.AreaName != areaName {
			continue
		}
		if locationName != "" && u.LocationName != locationName {
			continue
		}
		candidates = append(candidates, u)
	}
	if len(candidates) == 0 {
		return "", false, false
	}
	return candidates[0].UnitID, len(candidates) > 1, true
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
