package importer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-ledger/internal/application/importer"
)

func TestValidateRows_CantidadNoNumerica(t *testing.T) {
	raws := []importer.RawRow{
		{"Name": "Tornillo", "Quantity": "10", "StorageUnitName": "Estante 1"},
		{"Name": "Tuerca", "Quantity": "abc", "StorageUnitName": "Estante 1"},
		{"Name": "Arandela", "Quantity": "0", "StorageUnitName": "Estante 2"},
	}

	valid, errs := importer.ValidateRows(raws, importer.RequiredColumns())

	require.Len(t, valid, 2)
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Row)
	assert.Equal(t, "quantity", errs[0].Field)
	assert.Equal(t, "abc", errs[0].Value)
	assert.Equal(t, 1, valid[0].Position)
	assert.Equal(t, 3, valid[1].Position)
	assert.Equal(t, 0, valid[1].Quantity)
}

func TestValidateRow_FaltantesEnUnaEntrada(t *testing.T) {
	row, errs := importer.ValidateRow(importer.RawRow{"Quantity": "3"}, 4, importer.RequiredColumns())

	assert.Nil(t, row)
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Row)
	assert.Equal(t, "name,storageUnitName", errs[0].Field)
	assert.Equal(t, "Missing required fields: name, storageUnitName", errs[0].Message)
}

func TestValidateRow_Valores(t *testing.T) {
	cases := []struct {
		name      string
		raw       importer.RawRow
		wantField string
	}{
		{"cantidad negativa", importer.RawRow{"name": "a", "quantity": "-1", "storage_unit_name": "u"}, "quantity"},
		{"cantidad decimal", importer.RawRow{"name": "a", "quantity": "1.5", "storage_unit_name": "u"}, "quantity"},
		{"precio inválido", importer.RawRow{"name": "a", "quantity": "1", "storage_unit_name": "u", "price": "x"}, "price"},
		{"precio negativo", importer.RawRow{"name": "a", "quantity": "1", "storage_unit_name": "u", "price": "-2"}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := importer.ValidateRow(tc.raw, 1, importer.RequiredColumns())
			require.Len(t, errs, 1)
			assert.Equal(t, tc.wantField, errs[0].Field)
		})
	}
}

func TestValidateRow_OpcionalesYNumerosJSON(t *testing.T) {
	row, errs := importer.ValidateRow(importer.RawRow{
		"name":            " Martillo ",
		"quantity":        float64(7),
		"StorageUnitName": "Caja A",
		"price":           "12.50",
		"sku":             "  ",
		"Description":     "",
	}, 1, importer.RequiredColumns())

	require.Empty(t, errs)
	assert.Equal(t, "Martillo", row.Name)
	assert.Equal(t, 7, row.Quantity)
	require.NotNil(t, row.Price)
	assert.Equal(t, "12.5", row.Price.String())
	assert.Nil(t, row.SKU)
	assert.Nil(t, row.Description)
}
