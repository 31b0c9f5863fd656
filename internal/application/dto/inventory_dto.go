package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MoveToInventoryRequest pasa cantidad de stock a inventario individualizado.
type MoveToInventoryRequest struct {
	ItemID   string          `json:"item_id"`
	UnitID   string          `json:"unit_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Location string          `json:"location"`
}

// ReturnToStockRequest devuelve cantidad de un registro de inventario al stock.
type ReturnToStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// InventoryEventRequest registra un evento de ciclo de vida sobre un registro.
type InventoryEventRequest struct {
	Type  string `json:"type"`
	Notes string `json:"notes,omitempty"`
}

// InventoryResponse registro de inventario individualizado.
type InventoryResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	UnitID    string          `json:"unit_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Location  string          `json:"location"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// InventoryEventResponse evento registrado sobre un registro de inventario.
type InventoryEventResponse struct {
	ID          string    `json:"id"`
	InventoryID string    `json:"inventory_id"`
	Type        string    `json:"type"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by"`
}
