package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory registro histórico de precio de un ítem, escrito al seleccionar
// una respuesta de cotización.
type PriceHistory struct {
	ID          string
	ItemID      string
	Supplier    string
	UnitPrice   decimal.Decimal
	QuotationID string
	PurchaseID  string
	CreatedAt   time.Time
}
