package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse resumen general para el panel de administración.
type DashboardResponse struct {
	StockByUnit       []UnitStockSummaryDTO  `json:"stock_by_unit"`
	BudgetConsumption []BudgetConsumptionDTO `json:"budget_consumption"`
	PurchasesByStatus []StatusCountDTO       `json:"purchases_by_status"`
	RequestsByStatus  []StatusCountDTO       `json:"requests_by_status"`
	GeneratedAt       time.Time              `json:"generated_at"`
}

// UnitStockSummaryDTO total de stock de una unidad.
type UnitStockSummaryDTO struct {
	UnitID     string          `json:"unit_id"`
	UnitName   string          `json:"unit_name"`
	ItemCount  int64           `json:"item_count"`
	TotalUnits decimal.Decimal `json:"total_units"`
}

// BudgetConsumptionDTO consumo presupuestal vigente de una unidad.
type BudgetConsumptionDTO struct {
	UnitID      string          `json:"unit_id"`
	UnitName    string          `json:"unit_name"`
	BudgetID    string          `json:"budget_id"`
	PeriodStart time.Time       `json:"period_start"`
	PeriodEnd   time.Time       `json:"period_end"`
	Amount      decimal.Decimal `json:"amount"`
	Used        decimal.Decimal `json:"used"`
	Available   decimal.Decimal `json:"available"`
}

// StatusCountDTO conteo por estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}
