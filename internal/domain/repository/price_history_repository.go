package repository

import "github.com/jcsalazar/abasto-api/internal/domain/entity"

// PriceHistoryRepository puerto para el histórico de precios por ítem.
type PriceHistoryRepository interface {
	Create(record *entity.PriceHistory) error
	ListByItem(itemID string, limit, offset int) ([]*entity.PriceHistory, error)
}
