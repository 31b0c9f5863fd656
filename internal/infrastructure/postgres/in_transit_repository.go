package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ repository.InTransitRepository = (*InTransitRepo)(nil)

// InTransitRepo implementación de InTransitRepository sobre PostgreSQL.
type InTransitRepo struct {
	q Querier
}

// NewInTransitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInTransitRepository(q Querier) *InTransitRepo {
	return &InTransitRepo{q: q}
}

// Create persiste un registro en tránsito.
func (r *InTransitRepo) Create(rec *entity.InTransit) error {
	query := `
		INSERT INTO in_transit (id, request_id, item_id, from_unit_id, to_unit_id, quantity, status, created_at, delivered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.RequestID, rec.ItemID, rec.FromUnitID, rec.ToUnitID,
		rec.Quantity, rec.Status, rec.CreatedAt, rec.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("insert in_transit: %w", err)
	}
	return nil
}

// ListByRequest lista los registros en tránsito de una solicitud.
func (r *InTransitRepo) ListByRequest(requestID string) ([]*entity.InTransit, error) {
	query := `
		SELECT id, request_id, item_id, from_unit_id, to_unit_id, quantity, status, created_at, delivered_at
		FROM in_transit WHERE request_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list in_transit: %w", err)
	}
	defer rows.Close()
	var list []*entity.InTransit
	for rows.Next() {
		var rec entity.InTransit
		if err := rows.Scan(&rec.ID, &rec.RequestID, &rec.ItemID, &rec.FromUnitID, &rec.ToUnitID,
			&rec.Quantity, &rec.Status, &rec.CreatedAt, &rec.DeliveredAt); err != nil {
			return nil, fmt.Errorf("scan in_transit: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// MarkDelivered cambia el registro a entregado con la fecha dada.
func (r *InTransitRepo) MarkDelivered(id string, at time.Time) error {
	query := `UPDATE in_transit SET status = $2, delivered_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, entity.InTransitStatusEntregado, at)
	if err != nil {
		return fmt.Errorf("mark in_transit delivered: %w", err)
	}
	return nil
}
