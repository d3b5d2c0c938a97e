package entity

import "time"

// MovementType tipo de movimiento de inventario.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         MovementType = "IN"         // entrada
	MovementTypeOUT        MovementType = "OUT"        // salida
	MovementTypeADJUSTMENT MovementType = "ADJUSTMENT" // conteo absoluto
	MovementTypeTRANSFER   MovementType = "TRANSFER"   // traslado entre unidades
)

// Valid indica si el tipo es uno de los cuatro soportados.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT, MovementTypeTRANSFER:
		return true
	}
	return false
}

// Movement entrada del libro de movimientos. Inmutable una vez creada: las correcciones son nuevas entradas.
// Quantity es la cantidad cruda enviada; su significado depende de Type.
type Movement struct {
	ID                string
	ItemID            string
	Type              MovementType
	Quantity          int
	QuantityBefore    int
	QuantityAfter     int
	FromStorageUnitID *string
	ToStorageUnitID   *string
	Reason            string
	Notes             string
	Reference         string
	UserID            string
	MovementDate      time.Time
	CreatedAt         time.Time
}
