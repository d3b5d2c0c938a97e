package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/warehouse-ledger/internal/application/importer"
	"github.com/jhoicas/warehouse-ledger/internal/domain/entity"
)

func directory() []entity.StorageUnitPath {
	return []entity.StorageUnitPath{
		{UnitID: "u1", UnitName: "Estante 1", AreaName: "Bodega", LocationName: "Norte"},
		{UnitID: "u2", UnitName: "Estante 1", AreaName: "Patio", LocationName: "Sur"},
		{UnitID: "u3", UnitName: "Caja", AreaName: "Bodega", LocationName: "Norte"},
	}
}

func TestResolver_Match(t *testing.T) {
	r := importer.NewResolver(directory())

	cases := []struct {
		name                string
		unit, area, loc     string
		wantID              string
		wantAmbiguous, want bool
	}{
		{"único", "Caja", "", "", "u3", false, true},
		{"ambiguo gana el primero", "Estante 1", "", "", "u1", true, true},
		{"acotado por área", "Estante 1", "Patio", "", "u2", false, true},
		{"acotado solo por ubicación", "Estante 1", "", "Sur", "u2", false, true},
		{"área no coincide", "Caja", "Patio", "", "", false, false},
		{"inexistente", "Gaveta", "", "", "", false, false},
		{"sensible a mayúsculas", "caja", "", "", "", false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, ambiguous, ok := r.Match(tc.unit, tc.area, tc.loc)
			assert.Equal(t, tc.want, ok)
			assert.Equal(t, tc.wantID, id)
			assert.Equal(t, tc.wantAmbiguous, ambiguous)
		})
	}
}

func TestResolver_ResolveNoMutaEntrada(t *testing.T) {
	rows := []importer.Row{{Position: 1, StorageUnitName: "Caja"}, {Position: 2, StorageUnitName: "Nada"}}

	out := importer.NewResolver(directory()).Resolve(rows)

	assert.Equal(t, "u3", out[0].StorageUnitID)
	assert.Empty(t, out[1].StorageUnitID)
	assert.Empty(t, rows[0].StorageUnitID)
}
