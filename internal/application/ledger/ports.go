package ledger

import (
	"context"

	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// StockTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios de stock atados a esa tx. Garantiza que débito y crédito de un
// traslado se apliquen como unidad atómica.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// BudgetTxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios de presupuesto atados a esa tx.
type BudgetTxRunner interface {
	RunBudget(ctx context.Context, fn func(
		budgetRepo repository.BudgetRepository,
		finRepo repository.FinancialTransactionRepository,
	) error) error
}
