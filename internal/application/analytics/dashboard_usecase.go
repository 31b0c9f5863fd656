package analytics

import (
	"context"
	"time"

	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen del panel: stock por unidad, consumo
// presupuestal vigente y conteos de compras/solicitudes por estado.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetDashboard genera el resumen. unitID filtra compras de esa unidad y
// solicitudes atendidas por ella como CD; vacío = sin filtro.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, unitID string) (*dto.DashboardResponse, error) {
	now := time.Now()

	// Las cuatro consultas no dependen entre sí: se lanzan en paralelo y se
	// recogen al final.
	type stockResult struct {
		rows []repository.UnitStockSummary
		err  error
	}
	type budgetResult struct {
		rows []repository.BudgetConsumption
		err  error
	}
	type countResult struct {
		rows []repository.StatusCount
		err  error
	}

	stockCh := make(chan stockResult, 1)
	budgetCh := make(chan budgetResult, 1)
	purchaseCh := make(chan countResult, 1)
	requestCh := make(chan countResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.GetStockByUnit(ctx)
		stockCh <- stockResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetBudgetConsumption(ctx, now)
		budgetCh <- budgetResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.CountPurchasesByStatus(ctx, unitID)
		purchaseCh <- countResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.CountRequestsByStatus(ctx, unitID)
		requestCh <- countResult{rows, err}
	}()

	stockRes := <-stockCh
	budgetRes := <-budgetCh
	purchaseRes := <-purchaseCh
	requestRes := <-requestCh

	if stockRes.err != nil {
		return nil, stockRes.err
	}
	if budgetRes.err != nil {
		return nil, budgetRes.err
	}
	if purchaseRes.err != nil {
		return nil, purchaseRes.err
	}
	if requestRes.err != nil {
		return nil, requestRes.err
	}

	out := &dto.DashboardResponse{
		StockByUnit:       make([]dto.UnitStockSummaryDTO, 0, len(stockRes.rows)),
		BudgetConsumption: make([]dto.BudgetConsumptionDTO, 0, len(budgetRes.rows)),
		PurchasesByStatus: make([]dto.StatusCountDTO, 0, len(purchaseRes.rows)),
		RequestsByStatus:  make([]dto.StatusCountDTO, 0, len(requestRes.rows)),
		GeneratedAt:       now,
	}
	for _, r := range stockRes.rows {
		out.StockByUnit = append(out.StockByUnit, dto.UnitStockSummaryDTO{
			UnitID:     r.UnitID,
			UnitName:   r.UnitName,
			ItemCount:  r.ItemCount,
			TotalUnits: r.TotalUnits,
		})
	}
	for _, r := range budgetRes.rows {
		out.BudgetConsumption = append(out.BudgetConsumption, dto.BudgetConsumptionDTO{
			UnitID:      r.UnitID,
			UnitName:    r.UnitName,
			BudgetID:    r.BudgetID,
			PeriodStart: r.PeriodStart,
			PeriodEnd:   r.PeriodEnd,
			Amount:      r.Amount,
			Used:        r.Used,
			Available:   r.Available,
		})
	}
	for _, r := range purchaseRes.rows {
		out.PurchasesByStatus = append(out.PurchasesByStatus, dto.StatusCountDTO{Status: r.Status, Count: r.Count})
	}
	for _, r := range requestRes.rows {
		out.RequestsByStatus = append(out.RequestsByStatus, dto.StatusCountDTO{Status: r.Status, Count: r.Count})
	}
	return out, nil
}
