package dto

import "time"

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateAreaRequest entrada para crear un área dentro de una ubicación.
type CreateAreaRequest struct {
	LocationID string `json:"locationId"`
	Name       string `json:"name"`
}

// AreaResponse salida de un área.
type AreaResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"locationId"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreateStorageUnitRequest entrada para crear una unidad dentro de un área.
type CreateStorageUnitRequest struct {
	AreaID string `json:"areaId"`
	Name   string `json:"name"`
}

// StorageUnitResponse salida de una unidad.
type StorageUnitResponse struct {
	ID        string    `json:"id"`
	AreaID    string    `json:"areaId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// StorageUnitPathResponse unidad con los nombres de su área y ubicación.
type StorageUnitPathResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AreaID       string `json:"areaId"`
	AreaName     string `json:"areaName"`
	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`
}
