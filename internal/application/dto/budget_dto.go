package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBudgetRequest datos para crear un presupuesto de unidad.
type CreateBudgetRequest struct {
	UnitID      string          `json:"unit_id"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Amount      decimal.Decimal `json:"amount"`
}

// RecordIncomeRequest registro de un ingreso presupuestal.
type RecordIncomeRequest struct {
	UnitID string          `json:"unit_id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

// BudgetDebitRequest débito manual de ajuste.
type BudgetDebitRequest struct {
	UnitID string          `json:"unit_id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

// BudgetResponse representación de un presupuesto; Available siempre derivado.
type BudgetResponse struct {
	ID          string          `json:"id"`
	UnitID      string          `json:"unit_id"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Amount      decimal.Decimal `json:"amount"`
	Used        decimal.Decimal `json:"used"`
	Available   decimal.Decimal `json:"available"`
}
