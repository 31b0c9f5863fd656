package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget representa el presupuesto de una unidad para un período.
// El disponible siempre se deriva de Amount - Used; nunca se almacena aparte.
// Una unidad tiene a lo sumo un presupuesto cuyo período cubre una fecha dada.
type Budget struct {
	ID          string
	UnitID      string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Amount      decimal.Decimal
	Used        decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available devuelve el monto disponible (Amount - Used), siempre recalculado.
func (b *Budget) Available() decimal.Decimal {
	return b.Amount.Sub(b.Used)
}

// Contains indica si la fecha cae dentro del período [PeriodStart, PeriodEnd].
// Se compara por día: la hora de la fecha consultada no importa.
func (b *Budget) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	start := b.PeriodStart.Truncate(24 * time.Hour)
	end := b.PeriodEnd.Truncate(24 * time.Hour)
	return !d.Before(start) && !d.After(end)
}

// Overlaps indica si dos períodos presupuestales se solapan.
func (b *Budget) Overlaps(start, end time.Time) bool {
	return !b.PeriodEnd.Before(start) && !end.Before(b.PeriodStart)
}
