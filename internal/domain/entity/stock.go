package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad en bodega de un ítem en una unidad.
// Quantity nunca puede quedar negativa; todo débito lo verifica bajo bloqueo de fila.
type Stock struct {
	ItemID    string
	UnitID    string
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
