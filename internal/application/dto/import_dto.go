package dto

// ImportRowsRequest body JSON para POST /api/inventory/import (alternativa al archivo CSV).
// Cada fila es un mapa columna → valor con los mismos nombres que el encabezado CSV.
type ImportRowsRequest struct {
	Rows []map[string]any `json:"rows"`
}
