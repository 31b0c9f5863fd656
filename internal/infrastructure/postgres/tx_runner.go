package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jcsalazar/abasto-api/internal/application/inventory"
	"github.com/jcsalazar/abasto-api/internal/application/ledger"
	"github.com/jcsalazar/abasto-api/internal/application/purchase"
	"github.com/jcsalazar/abasto-api/internal/application/request"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ ledger.StockTxRunner = (*TxRunner)(nil)
var _ ledger.BudgetTxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ purchase.TxRunner = (*TxRunner)(nil)
var _ request.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, construyendo
// repositorios atados a la tx. Cada método cubre una operación de escritura
// multi-tabla que debe aplicarse como unidad atómica.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) inTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock transacción para movimientos de stock (entrada, salida, ajuste, traslado).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewStockRepository(q), NewStockMovementRepository(q))
	})
}

// RunBudget transacción para operaciones presupuestales.
func (r *TxRunner) RunBudget(ctx context.Context, fn func(
	budgetRepo repository.BudgetRepository,
	finRepo repository.FinancialTransactionRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewBudgetRepository(q), NewFinancialTransactionRepository(q))
	})
}

// RunInventory transacción para individualización y retorno de inventario.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewInventoryRepository(q), NewStockRepository(q), NewStockMovementRepository(q))
	})
}

// RunFinalize transacción para la finalización de una compra: débito de
// presupuesto, créditos de stock, transacción financiera y auditoría.
func (r *TxRunner) RunFinalize(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	budgetRepo repository.BudgetRepository,
	finRepo repository.FinancialTransactionRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(
			NewPurchaseRepository(q),
			NewStockRepository(q),
			NewStockMovementRepository(q),
			NewBudgetRepository(q),
			NewFinancialTransactionRepository(q),
			NewAuditLogRepository(q),
		)
	})
}

// RunSelection transacción para seleccionar/deseleccionar respuestas de cotización.
func (r *TxRunner) RunSelection(ctx context.Context, fn func(
	quotationRepo repository.QuotationRepository,
	purchaseRepo repository.PurchaseRepository,
	priceRepo repository.PriceHistoryRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewQuotationRepository(q), NewPurchaseRepository(q), NewPriceHistoryRepository(q))
	})
}

// RunSend transacción para el envío de una solicitud desde el CD.
func (r *TxRunner) RunSend(ctx context.Context, fn func(
	requestRepo repository.RequestRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
	transitRepo repository.InTransitRepository,
	purchaseRepo repository.PurchaseRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(
			NewRequestRepository(q),
			NewStockRepository(q),
			NewStockMovementRepository(q),
			NewInTransitRepository(q),
			NewPurchaseRepository(q),
			NewAuditLogRepository(q),
		)
	})
}

// RunReceive transacción para la recepción de una solicitud en la unidad destino.
func (r *TxRunner) RunReceive(ctx context.Context, fn func(
	requestRepo repository.RequestRepository,
	transitRepo repository.InTransitRepository,
	stockRepo repository.StockRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.inTx(ctx, func(q Querier) error {
		return fn(NewRequestRepository(q), NewInTransitRepository(q), NewStockRepository(q), NewStockMovementRepository(q))
	})
}
