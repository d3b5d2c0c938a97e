// Package importer ingiere lotes de filas externas (CSV o JSON): valida cada fila de forma
// independiente, resuelve nombres de unidad/área/ubicación a identificadores y crea solo el
// subconjunto bien formado, devolviendo un registro de errores por fila.
package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Claves normalizadas de columnas (minúsculas, sin espacios ni separadores).
const (
	ColumnName            = "name"
	ColumnQuantity        = "quantity"
	ColumnStorageUnitName = "storageunitname"
	ColumnDescription     = "description"
	ColumnPrice           = "price"
	ColumnSKU             = "sku"
	ColumnLocationName    = "locationname"
	ColumnAreaName        = "areaname"
)

type column struct {
	key      string
	header   string // nombre canónico para mensajes
	field    string // nombre de campo en RowError
	required bool
}

// schema único de importación: las columnas crudas se mapean una sola vez a Row.
var schema = []column{
	{key: ColumnName, header: "Name", field: "name", required: true},
	{key: ColumnQuantity, header: "Quantity", field: "quantity", required: true},
	{key: ColumnStorageUnitName, header: "StorageUnitName", field: "storageUnitName", required: true},
	{key: ColumnDescription, header: "Description", field: "description"},
	{key: ColumnPrice, header: "Price", field: "price"},
	{key: ColumnSKU, header: "SKU", field: "sku"},
	{key: ColumnLocationName, header: "LocationName", field: "locationName"},
	{key: ColumnAreaName, header: "AreaName", field: "areaName"},
}

// RequiredColumns claves obligatorias por defecto.
func RequiredColumns() []string {
	var out []string
	for _, c := range schema {
		if c.required {
			out = append(out, c.key)
		}
	}
	return out
}

func lookupColumn(key string) (column, bool) {
	for _, c := range schema {
		if c.key == key {
			return c, true
		}
	}
	return column{}, false
}

// NormalizeKey "Storage Unit Name", "storage_unit_name" y "StorageUnitName" → "storageunitname".
func NormalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '.':
			return -1
		}
		return r
	}, k)
}

// RawRow fila cruda: nombre de columna → valor (string desde CSV; string o número desde JSON).
type RawRow map[string]any

// Row fila normalizada y tipada. Los opcionales en blanco quedan en nil.
type Row struct {
	Position        int // 1-based dentro del lote
	Name            string
	Quantity        int
	StorageUnitName string
	Description     *string
	Price           *decimal.Decimal
	SKU             *string
	LocationName    *string
	AreaName        *string

	// Anotados por el Resolver
	StorageUnitID string
	Ambiguous     bool
}

// RowError error de una fila, etiquetado con su posición 1-based dentro del lote.
// En CSV la posición cuenta solo filas de datos: el encabezado y las líneas en blanco
// no se numeran, así que Row no equivale al número de línea de la hoja de cálculo.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}
