package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	QuotationStatusAbierta = "abierta"
	QuotationStatusCerrada = "cerrada"
)

// Quotation solicitud de precios a proveedores, ligada a una compra.
type Quotation struct {
	ID         string
	PurchaseID string
	Status     string
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	CreatedBy  string
}

// QuotationResponse respuesta de un proveedor para un ítem de la cotización.
// A lo sumo una respuesta por (cotización, ítem) puede tener IsSelected=true;
// seleccionar propaga precio y proveedor a la línea de compra vinculada.
type QuotationResponse struct {
	ID           string
	QuotationID  string
	ItemID       string
	Supplier     string
	UnitPrice    decimal.Decimal
	DeliveryDays int
	IsSelected   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
