package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de movimiento de stock.
const (
	MovementReasonEntrada          = "entrada"
	MovementReasonSalida           = "salida"
	MovementReasonAjuste           = "ajuste"
	MovementReasonTraslado         = "traslado"
	MovementReasonCompra           = "compra"            // crédito al finalizar una compra
	MovementReasonEnvioSolicitud   = "envio-solicitud"   // CD -> en tránsito
	MovementReasonRecepcion        = "recepcion"         // en tránsito -> unidad destino
	MovementReasonIndividualizar   = "individualizacion" // stock -> inventario individualizado
	MovementReasonRetornoInventario = "retorno-inventario"
)

// StockMovement registro inmutable de un movimiento de stock, para auditoría.
// FromUnitID vacío = entrada pura; ToUnitID vacío = salida pura; ambos = traslado.
type StockMovement struct {
	ID            string
	TransactionID string // agrupa los movimientos de una misma operación
	ItemID        string
	FromUnitID    string
	ToUnitID      string
	Quantity      decimal.Decimal
	Reason        string
	Reference     string // ID de compra, solicitud o registro de inventario asociado
	CreatedAt     time.Time
	CreatedBy     string
}
