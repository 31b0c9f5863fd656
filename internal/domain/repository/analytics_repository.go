package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// UnitStockSummary total de stock por unidad.
type UnitStockSummary struct {
	UnitID     string
	UnitName   string
	ItemCount  int64
	TotalUnits decimal.Decimal
}

// BudgetConsumption consumo presupuestal de una unidad para el período vigente.
type BudgetConsumption struct {
	UnitID      string
	UnitName    string
	BudgetID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Amount      decimal.Decimal
	Used        decimal.Decimal
	Available   decimal.Decimal
}

// StatusCount conteo de entidades por estado.
type StatusCount struct {
	Status string
	Count  int64
}

// AnalyticsRepository consultas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	GetStockByUnit(ctx context.Context) ([]UnitStockSummary, error)
	GetBudgetConsumption(ctx context.Context, date time.Time) ([]BudgetConsumption, error)
	CountPurchasesByStatus(ctx context.Context, unitID string) ([]StatusCount, error)
	CountRequestsByStatus(ctx context.Context, cdUnitID string) ([]StatusCount, error)
}
