package postgres

import (
	"context"
	"fmt"

	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo implementación de PriceHistoryRepository sobre PostgreSQL.
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Create persiste un registro de precio.
func (r *PriceHistoryRepo) Create(rec *entity.PriceHistory) error {
	query := `
		INSERT INTO price_history (id, item_id, supplier, unit_price, quotation_id, purchase_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ItemID, rec.Supplier, rec.UnitPrice, rec.QuotationID, rec.PurchaseID, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price history: %w", err)
	}
	return nil
}

// ListByItem lista el histórico de precios de un ítem, del más reciente al más antiguo.
func (r *PriceHistoryRepo) ListByItem(itemID string, limit, offset int) ([]*entity.PriceHistory, error) {
	query := `
		SELECT id, item_id, supplier, unit_price, quotation_id, purchase_id, created_at
		FROM price_history WHERE item_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceHistory
	for rows.Next() {
		var rec entity.PriceHistory
		if err := rows.Scan(&rec.ID, &rec.ItemID, &rec.Supplier, &rec.UnitPrice,
			&rec.QuotationID, &rec.PurchaseID, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
