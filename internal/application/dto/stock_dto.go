package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest datos para registrar un movimiento de stock.
// Para "traslado" se requieren from_unit_id y to_unit_id; para "entrada" y
// "salida" solo unit_id; para "ajuste" quantity puede ser negativa.
type RegisterMovementRequest struct {
	Type       string          `json:"type"`
	ItemID     string          `json:"item_id"`
	UnitID     string          `json:"unit_id,omitempty"`
	FromUnitID string          `json:"from_unit_id,omitempty"`
	ToUnitID   string          `json:"to_unit_id,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reference  string          `json:"reference,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}

// StockResponse saldo de un ítem en una unidad.
type StockResponse struct {
	ItemID    string          `json:"item_id"`
	UnitID    string          `json:"unit_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MovementResponse movimiento de stock registrado.
type MovementResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ItemID        string          `json:"item_id"`
	FromUnitID    string          `json:"from_unit_id,omitempty"`
	ToUnitID      string          `json:"to_unit_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason"`
	Reference     string          `json:"reference,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	CreatedBy     string          `json:"created_by"`
}
