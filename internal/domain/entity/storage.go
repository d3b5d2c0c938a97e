package entity

import "time"

// Location nivel superior de la jerarquía (p. ej. un edificio o sede).
type Location struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Area pertenece exactamente a una Location.
type Area struct {
	ID         string
	LocationID string
	Name       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StorageUnit pertenece exactamente a un Area (estante, caja, gaveta...).
type StorageUnit struct {
	ID        string
	AreaID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StorageUnitPath unidad con los nombres de su área y ubicación, usada para resolver nombres en importaciones.
type StorageUnitPath struct {
	UnitID       string
	UnitName     string
	AreaID       string
	AreaName     string
	LocationID   string
	LocationName string
}
