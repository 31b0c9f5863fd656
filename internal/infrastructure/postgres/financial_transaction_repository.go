package postgres

import (
	"context"
	"fmt"

	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ repository.FinancialTransactionRepository = (*FinancialTransactionRepo)(nil)

// FinancialTransactionRepo implementación sobre PostgreSQL. Solo INSERT y SELECT:
// las transacciones financieras son inmutables.
type FinancialTransactionRepo struct {
	q Querier
}

// NewFinancialTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFinancialTransactionRepository(q Querier) *FinancialTransactionRepo {
	return &FinancialTransactionRepo{q: q}
}

// Create persiste una transacción financiera.
func (r *FinancialTransactionRepo) Create(tx *entity.FinancialTransaction) error {
	query := `
		INSERT INTO financial_transactions (id, unit_id, budget_id, type, amount, reference, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.UnitID, tx.BudgetID, tx.Type, tx.Amount, tx.Reference, tx.Notes,
		tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert financial transaction: %w", err)
	}
	return nil
}

// ListByUnit lista las transacciones de una unidad, de la más reciente a la más antigua.
func (r *FinancialTransactionRepo) ListByUnit(unitID string, limit, offset int) ([]*entity.FinancialTransaction, error) {
	query := `
		SELECT id, unit_id, budget_id, type, amount, reference, notes, created_at, created_by
		FROM financial_transactions WHERE unit_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, unitID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list financial transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.FinancialTransaction
	for rows.Next() {
		var tx entity.FinancialTransaction
		if err := rows.Scan(&tx.ID, &tx.UnitID, &tx.BudgetID, &tx.Type, &tx.Amount,
			&tx.Reference, &tx.Notes, &tx.CreatedAt, &tx.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan financial transaction: %w", err)
		}
		list = append(list, &tx)
	}
	return list, rows.Err()
}
