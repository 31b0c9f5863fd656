package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetStockByUnit totaliza el stock agregado por unidad.
func (r *AnalyticsRepo) GetStockByUnit(ctx context.Context) ([]repository.UnitStockSummary, error) {
	const query = `
	SELECT
	    u.id                          AS unit_id,
	    u.name                        AS unit_name,
	    COUNT(s.item_id)              AS item_count,
	    COALESCE(SUM(s.quantity), 0)  AS total_units
	FROM units u
	LEFT JOIN stock s ON s.unit_id = u.id AND s.quantity > 0
	WHERE u.active
	GROUP BY u.id, u.name
	ORDER BY u.name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetStockByUnit: %w", err)
	}
	defer rows.Close()

	var results []repository.UnitStockSummary
	for rows.Next() {
		var row repository.UnitStockSummary
		if err := rows.Scan(&row.UnitID, &row.UnitName, &row.ItemCount, &row.TotalUnits); err != nil {
			return nil, fmt.Errorf("analytics.GetStockByUnit scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetBudgetConsumption devuelve, por unidad, el presupuesto cuyo período cubre la fecha.
// El disponible se deriva en la consulta (amount - used), nunca se lee de una columna.
func (r *AnalyticsRepo) GetBudgetConsumption(ctx context.Context, date time.Time) ([]repository.BudgetConsumption, error) {
	const query = `
	SELECT
	    u.id               AS unit_id,
	    u.name             AS unit_name,
	    b.id               AS budget_id,
	    b.period_start,
	    b.period_end,
	    b.amount,
	    b.used,
	    b.amount - b.used  AS available
	FROM unit_budgets b
	JOIN units u ON u.id = b.unit_id
	WHERE b.period_start <= $1::date AND b.period_end >= $1::date
	ORDER BY u.name`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetBudgetConsumption: %w", err)
	}
	defer rows.Close()

	var results []repository.BudgetConsumption
	for rows.Next() {
		var row repository.BudgetConsumption
		if err := rows.Scan(
			&row.UnitID,
			&row.UnitName,
			&row.BudgetID,
			&row.PeriodStart,
			&row.PeriodEnd,
			&row.Amount,
			&row.Used,
			&row.Available,
		); err != nil {
			return nil, fmt.Errorf("analytics.GetBudgetConsumption scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountPurchasesByStatus cuenta compras por estado; unitID vacío = todas las unidades.
func (r *AnalyticsRepo) CountPurchasesByStatus(ctx context.Context, unitID string) ([]repository.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*) AS count
	FROM purchases
	WHERE ($1 = '' OR unit_id = $1)
	GROUP BY status
	ORDER BY count DESC`
	return r.countByStatus(ctx, query, unitID, "CountPurchasesByStatus")
}

// CountRequestsByStatus cuenta solicitudes por estado; cdUnitID vacío = todos los CD.
func (r *AnalyticsRepo) CountRequestsByStatus(ctx context.Context, cdUnitID string) ([]repository.StatusCount, error) {
	const query = `
	SELECT status, COUNT(*) AS count
	FROM requests
	WHERE ($1 = '' OR cd_unit_id = $1)
	GROUP BY status
	ORDER BY count DESC`
	return r.countByStatus(ctx, query, cdUnitID, "CountRequestsByStatus")
}

func (r *AnalyticsRepo) countByStatus(ctx context.Context, query, unitID, op string) ([]repository.StatusCount, error) {
	rows, err := r.pool.Query(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("analytics.%s: %w", op, err)
	}
	defer rows.Close()

	var results []repository.StatusCount
	for rows.Next() {
		var row repository.StatusCount
		if err := rows.Scan(&row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics.%s scan: %w", op, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
