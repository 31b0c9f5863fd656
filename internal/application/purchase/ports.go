package purchase

import (
	"context"

	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// TxRunner ejecuta funciones dentro de una transacción de BD, pasando
// repositorios atados a esa tx. RunFinalize cubre la finalización de compra
// (débito de presupuesto + créditos de stock + auditoría como unidad atómica);
// RunSelection cubre la selección de respuestas de cotización.
type TxRunner interface {
	RunFinalize(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		budgetRepo repository.BudgetRepository,
		finRepo repository.FinancialTransactionRepository,
		auditRepo repository.AuditLogRepository,
	) error) error

	RunSelection(ctx context.Context, fn func(
		quotationRepo repository.QuotationRepository,
		purchaseRepo repository.PurchaseRepository,
		priceRepo repository.PriceHistoryRepository,
	) error) error
}

// ItemForPDF línea de compra resuelta con los datos del catálogo, para la orden en PDF.
type ItemForPDF struct {
	Code          string
	Name          string
	UnitOfMeasure string
	Item          *entity.PurchaseItem
}

// OrderPDFGenerator genera la representación en PDF de una orden de compra.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, purchase *entity.Purchase, unit *entity.Unit, items []ItemForPDF) ([]byte, error)
}
