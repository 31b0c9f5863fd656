package repository

import (
	"time"

	"github.com/jcsalazar/abasto-api/internal/domain/entity"
)

// StockMovementRepository puerto para el registro inmutable de movimientos de stock.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByUnit(unitID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
