package request

import (
	"context"

	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// TxRunner ejecuta funciones dentro de una transacción de BD, pasando
// repositorios atados a esa tx. RunSend cubre el envío de la solicitud
// (débitos de stock del CD + registros en tránsito, o compra correctiva);
// RunReceive cubre la recepción en la unidad destino.
type TxRunner interface {
	RunSend(ctx context.Context, fn func(
		requestRepo repository.RequestRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		transitRepo repository.InTransitRepository,
		purchaseRepo repository.PurchaseRepository,
		auditRepo repository.AuditLogRepository,
	) error) error

	RunReceive(ctx context.Context, fn func(
		requestRepo repository.RequestRepository,
		transitRepo repository.InTransitRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
