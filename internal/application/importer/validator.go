package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/warehouse-ledger/internal/domain/inventory"
)

// ValidateRow valida y normaliza una fila cruda. Función pura: sin I/O ni estado compartido.
// Devuelve la fila tipada o la lista de errores de campo (nunca ambos).
func ValidateRow(raw RawRow, position int, required []string) (*Row, []RowError) {
	values := make(map[string]any, len(raw))
	for k, v := range raw {
		values[NormalizeKey(k)] = v
	}
	get := func(key string) string {
		return strings.TrimSpace(stringValue(values[key]))
	}

	var errs []RowError

	// Obligatorios: una sola entrada que nombra todos los faltantes
	var missing []string
	for _, key := range required {
		if get(key) != "" {
			continue
		}
		name := key
		if c, ok := lookupColumn(key); ok {
			name = c.field
		}
		missing = append(missing, name)
	}
	if len(missing) > 0 {
		errs = append(errs, RowError{
			Row:     position,
			Field:   strings.Join(missing, ","),
			Message: "Missing required fields: " + strings.Join(missing, ", "),
		})
	}

	row := &Row{
		Position:        position,
		Name:            get(ColumnName),
		StorageUnitName: get(ColumnStorageUnitName),
		Description:     optionalString(get(ColumnDescription)),
		SKU:             optionalString(get(ColumnSKU)),
		LocationName:    optionalString(get(ColumnLocationName)),
		AreaName:        optionalString(get(ColumnAreaName)),
	}

	if q := get(ColumnQuantity); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 || n > inventory.MaxQuantity {
			errs = append(errs, RowError{
				Row:     position,
				Field:   "quantity",
				Message: "Quantity must be a non-negative integer",
				Value:   values[ColumnQuantity],
			})
		} else {
			row.Quantity = n
		}
	}

	if p := get(ColumnPrice); p != "" {
		price, err := decimal.NewFromString(p)
		if err != nil || price.IsNegative() {
			errs = append(errs, RowError{
				Row:     position,
				Field:   "price",
				Message: "Price must be a non-negative number",
				Value:   values[ColumnPrice],
			})
		} else {
			row.Price = &price
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return row, nil
}

// ValidateRows aplica ValidateRow a todo el lote (posiciones 1-based) y separa válidas de errores.
func ValidateRows(raws []RawRow, required []string) ([]Row, []RowError) {
	valid := make([]Row, 0, len(raws))
	var errs []RowError
	for i, raw := range raws {
		row, rowErrs := ValidateRow(raw, i+1, required)
		if len(rowErrs) > 0 {
			errs = append(errs, rowErrs...)
			continue
		}
		valid = append(valid, *row)
	}
	return valid, errs
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
