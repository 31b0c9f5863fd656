package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateQuotationRequest crea una cotización ligada a una compra.
type CreateQuotationRequest struct {
	PurchaseID string `json:"purchase_id"`
	Notes      string `json:"notes,omitempty"`
}

// AddQuotationResponseRequest registra la respuesta de un proveedor.
type AddQuotationResponseRequest struct {
	ItemID       string          `json:"item_id"`
	Supplier     string          `json:"supplier"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	DeliveryDays int             `json:"delivery_days"`
}

// QuotationResponseDTO respuesta de proveedor para un ítem.
type QuotationResponseDTO struct {
	ID           string          `json:"id"`
	QuotationID  string          `json:"quotation_id"`
	ItemID       string          `json:"item_id"`
	Supplier     string          `json:"supplier"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	DeliveryDays int             `json:"delivery_days"`
	IsSelected   bool            `json:"is_selected"`
}

// QuotationDTO cotización con metadatos.
type QuotationDTO struct {
	ID         string    `json:"id"`
	PurchaseID string    `json:"purchase_id"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
