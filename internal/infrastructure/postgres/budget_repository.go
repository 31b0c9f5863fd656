package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ repository.BudgetRepository = (*BudgetRepo)(nil)

// BudgetRepo implementación del puerto BudgetRepository sobre PostgreSQL.
type BudgetRepo struct {
	q Querier
}

// NewBudgetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBudgetRepository(q Querier) *BudgetRepo {
	return &BudgetRepo{q: q}
}

const budgetColumns = `id, unit_id, period_start, period_end, amount, used, created_at, updated_at`

// LockUnit toma un advisory lock transaccional por unidad. SELECT FOR UPDATE no
// sirve aquí porque la fila que causaría el solape puede no existir todavía; el
// lock se libera solo al terminar la transacción.
func (r *BudgetRepo) LockUnit(unitID string) error {
	query := `SELECT pg_advisory_xact_lock(hashtext($1)::bigint)`
	if _, err := r.q.Exec(context.Background(), query, unitID); err != nil {
		return fmt.Errorf("lock unidad %s: %w", unitID, err)
	}
	return nil
}

// Create persiste un presupuesto nuevo.
func (r *BudgetRepo) Create(budget *entity.Budget) error {
	query := `
		INSERT INTO unit_budgets (id, unit_id, period_start, period_end, amount, used, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		budget.ID, budget.UnitID, budget.PeriodStart, budget.PeriodEnd,
		budget.Amount, budget.Used, budget.CreatedAt, budget.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

// GetByID obtiene un presupuesto por ID.
func (r *BudgetRepo) GetByID(id string) (*entity.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM unit_budgets WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForPeriod devuelve el presupuesto de la unidad cuyo período contiene la fecha, o nil.
func (r *BudgetRepo) GetForPeriod(unitID string, date time.Time) (*entity.Budget, error) {
	query := `
		SELECT ` + budgetColumns + ` FROM unit_budgets
		WHERE unit_id = $1 AND period_start <= $2::date AND period_end >= $2::date`
	return r.scanOne(r.q.QueryRow(context.Background(), query, unitID, date))
}

// GetForPeriodForUpdate igual que GetForPeriod pero bloquea la fila (SELECT FOR UPDATE).
func (r *BudgetRepo) GetForPeriodForUpdate(unitID string, date time.Time) (*entity.Budget, error) {
	query := `
		SELECT ` + budgetColumns + ` FROM unit_budgets
		WHERE unit_id = $1 AND period_start <= $2::date AND period_end >= $2::date
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, unitID, date))
}

// HasOverlapping indica si la unidad tiene un presupuesto que se solape con [start, end].
func (r *BudgetRepo) HasOverlapping(unitID string, start, end time.Time, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM unit_budgets
			WHERE unit_id = $1 AND period_start <= $3::date AND period_end >= $2::date
			  AND ($4 = '' OR id <> $4)
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, unitID, start, end, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check budget overlap: %w", err)
	}
	return exists, nil
}

// ListByUnit lista presupuestos de una unidad, del más reciente al más antiguo.
func (r *BudgetRepo) ListByUnit(unitID string, limit, offset int) ([]*entity.Budget, error) {
	query := `
		SELECT ` + budgetColumns + ` FROM unit_budgets
		WHERE unit_id = $1 ORDER BY period_start DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, unitID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()
	var list []*entity.Budget
	for rows.Next() {
		var b entity.Budget
		if err := rows.Scan(&b.ID, &b.UnitID, &b.PeriodStart, &b.PeriodEnd,
			&b.Amount, &b.Used, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update actualiza amount/used de un presupuesto.
func (r *BudgetRepo) Update(budget *entity.Budget) error {
	query := `
		UPDATE unit_budgets SET amount = $2, used = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		budget.ID, budget.Amount, budget.Used, budget.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

func (r *BudgetRepo) scanOne(row pgx.Row) (*entity.Budget, error) {
	var b entity.Budget
	err := row.Scan(&b.ID, &b.UnitID, &b.PeriodStart, &b.PeriodEnd,
		&b.Amount, &b.Used, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return &b, nil
}
