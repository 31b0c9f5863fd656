package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del workflow de Compra. El avance es unidireccional y "finalizado"
// es terminal: al llegar ahí se acredita stock y se debita presupuesto, y la
// compra y sus líneas quedan inmutables.
const (
	PurchaseStatusPedidoRealizado  = "pedido-realizado"
	PurchaseStatusEnCotizacion     = "en-cotizacion"
	PurchaseStatusEsperandoEntrega = "esperando-entrega"
	PurchaseStatusLlegoAlCD        = "llego-al-cd"
	PurchaseStatusEnviado          = "enviado"
	PurchaseStatusError            = "error"
	PurchaseStatusFinalizado       = "finalizado"
)

// Purchase representa una compra de una unidad a un proveedor.
// TotalValue se mantiene como la suma de los totales de línea (se recalcula al
// seleccionar cotizaciones, nunca se edita directo).
type Purchase struct {
	ID          string
	UnitID      string
	Supplier    string
	Status      string
	TotalValue  decimal.Decimal
	Notes       string
	RequestID   string // no vacío cuando es compra correctiva de una solicitud
	Items       []*PurchaseItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   string
	FinalizedAt *time.Time
}

// IsFinalized indica si la compra alcanzó el estado terminal.
func (p *Purchase) IsFinalized() bool {
	return p.Status == PurchaseStatusFinalizado
}

// RecomputeTotal recalcula TotalValue como la suma de los totales de línea.
func (p *Purchase) RecomputeTotal() {
	total := decimal.Zero
	for _, it := range p.Items {
		total = total.Add(it.Total())
	}
	p.TotalValue = total
}

// PurchaseItem línea de compra. UnitPrice y Supplier pueden quedar en nil hasta
// que se seleccione una respuesta de cotización.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ItemID     string
	Quantity   decimal.Decimal
	UnitPrice  *decimal.Decimal
	Supplier   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Total devuelve Quantity × UnitPrice (cero si aún no hay precio).
func (i *PurchaseItem) Total() decimal.Decimal {
	if i.UnitPrice == nil {
		return decimal.Zero
	}
	return i.Quantity.Mul(*i.UnitPrice)
}
