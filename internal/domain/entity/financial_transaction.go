package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción financiera contra el presupuesto de una unidad.
const (
	FinancialTypeIngreso = "ingreso" // crédito al presupuesto
	FinancialTypeCompra  = "compra"  // débito por finalización de compra
	FinancialTypeAjuste  = "ajuste"
)

// FinancialTransaction registro inmutable de un crédito o débito presupuestal.
type FinancialTransaction struct {
	ID        string
	UnitID    string
	BudgetID  string
	Type      string
	Amount    decimal.Decimal // positivo crédito, negativo débito
	Reference string          // ID de la compra u operación origen
	Notes     string
	CreatedAt time.Time
	CreatedBy string
}
