package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un registro en tránsito.
const (
	InTransitStatusEnRuta    = "en-ruta"
	InTransitStatusEntregado = "entregado"
)

// InTransit representa stock que salió de un CD hacia una unidad solicitante
// pero aún no fue recibido. Se crea al enviar la solicitud (débito en el CD)
// y se marca entregado al recibir (crédito en la unidad destino).
type InTransit struct {
	ID          string
	RequestID   string
	ItemID      string
	FromUnitID  string
	ToUnitID    string
	Quantity    decimal.Decimal
	Status      string
	CreatedAt   time.Time
	DeliveredAt *time.Time
}
