package inventory

import (
	"context"

	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el par débito-de-stock /
// creación-de-registro (y su inverso) se apliquen como unidad atómica.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
