package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest datos para registrar una compra nueva.
type CreatePurchaseRequest struct {
	UnitID   string                      `json:"unit_id"`
	Supplier string                      `json:"supplier,omitempty"`
	Notes    string                      `json:"notes,omitempty"`
	Items    []CreatePurchaseItemRequest `json:"items"`
}

// CreatePurchaseItemRequest línea de la compra a crear.
type CreatePurchaseItemRequest struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ChangePurchaseStatusRequest transición de estado solicitada.
type ChangePurchaseStatusRequest struct {
	Status string `json:"status"`
}

// SetItemPriceRequest fija manualmente precio y proveedor de una línea.
type SetItemPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
	Supplier  string          `json:"supplier,omitempty"`
}

// PurchaseResponse representación de una compra con sus líneas.
type PurchaseResponse struct {
	ID          string                 `json:"id"`
	UnitID      string                 `json:"unit_id"`
	Supplier    string                 `json:"supplier,omitempty"`
	Status      string                 `json:"status"`
	TotalValue  decimal.Decimal        `json:"total_value"`
	Notes       string                 `json:"notes,omitempty"`
	RequestID   string                 `json:"request_id,omitempty"`
	Items       []PurchaseItemResponse `json:"items"`
	CreatedAt   time.Time              `json:"created_at"`
	FinalizedAt *time.Time             `json:"finalized_at,omitempty"`
}

// PurchaseItemResponse línea de compra.
type PurchaseItemResponse struct {
	ID        string           `json:"id"`
	ItemID    string           `json:"item_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Supplier  *string          `json:"supplier,omitempty"`
	Total     decimal.Decimal  `json:"total"`
}
