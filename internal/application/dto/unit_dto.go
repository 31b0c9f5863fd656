package dto

import "time"

// CreateUnitRequest datos para crear una unidad.
type CreateUnitRequest struct {
	Name                 string `json:"name"`
	Address              string `json:"address"`
	IsDistributionCenter bool   `json:"is_distribution_center"`
}

// UpdateUnitRequest campos actualizables de una unidad (nil = sin cambio).
type UpdateUnitRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

// UnitResponse representación de una unidad en respuestas.
type UnitResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Address              string    `json:"address"`
	IsDistributionCenter bool      `json:"is_distribution_center"`
	Active               bool      `json:"active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// UnitListResponse listado paginado de unidades.
type UnitListResponse struct {
	Items []UnitResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
