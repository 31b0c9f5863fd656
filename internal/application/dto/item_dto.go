package dto

import "time"

// CreateItemRequest datos para crear un ítem del catálogo.
type CreateItemRequest struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	UnitOfMeasure string `json:"unit_of_measure"`
	Category      string `json:"category"`
	HasLifecycle  bool   `json:"has_lifecycle"`
}

// UpdateItemRequest campos actualizables de un ítem (nil = sin cambio).
// El código no se toca: la identidad del ítem es inmutable.
type UpdateItemRequest struct {
	Name          *string `json:"name"`
	UnitOfMeasure *string `json:"unit_of_measure"`
	Category      *string `json:"category"`
	Active        *bool   `json:"active"`
}

// ItemResponse representación de un ítem en respuestas.
type ItemResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	UnitOfMeasure string    `json:"unit_of_measure"`
	Category      string    `json:"category"`
	HasLifecycle  bool      `json:"has_lifecycle"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ItemListResponse listado paginado de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
