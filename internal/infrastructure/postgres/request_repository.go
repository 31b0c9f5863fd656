package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo implementación de RequestRepository sobre PostgreSQL.
// GetByID y GetByIDForUpdate devuelven la solicitud con sus líneas cargadas.
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

const requestColumns = `id, requesting_unit_id, cd_unit_id, status, total_estimated_cost, notes, created_at, updated_at, created_by`

// Create persiste una solicitud y sus líneas.
func (r *RequestRepo) Create(req *entity.Request) error {
	ctx := context.Background()
	query := `
		INSERT INTO requests (id, requesting_unit_id, cd_unit_id, status, total_estimated_cost, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.RequestingUnitID, req.CDUnitID, req.Status, req.TotalEstimatedCost,
		req.Notes, req.CreatedAt, req.UpdatedAt, req.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	for _, it := range req.Items {
		itemQuery := `
			INSERT INTO request_items (id, request_id, item_id, quantity_requested, quantity_approved, quantity_sent, estimated_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.RequestID, it.ItemID, it.QuantityRequested, it.QuantityApproved,
			it.QuantitySent, it.EstimatedPrice,
		)
		if err != nil {
			return fmt.Errorf("insert request item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una solicitud por ID con sus líneas.
func (r *RequestRepo) GetByID(id string) (*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate obtiene la solicitud bloqueando la fila (SELECT FOR UPDATE) y carga las líneas.
func (r *RequestRepo) GetByIDForUpdate(id string) (*entity.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *RequestRepo) getOne(query, id string) (*entity.Request, error) {
	ctx := context.Background()
	req, err := scanRequest(r.q.QueryRow(ctx, query, id))
	if err != nil || req == nil {
		return req, err
	}
	items, err := r.listItems(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	req.Items = items
	return req, nil
}

func (r *RequestRepo) listItems(ctx context.Context, requestID string) ([]*entity.RequestItem, error) {
	query := `
		SELECT id, request_id, item_id, quantity_requested, quantity_approved, quantity_sent, estimated_price
		FROM request_items WHERE request_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("list request items: %w", err)
	}
	defer rows.Close()
	var list []*entity.RequestItem
	for rows.Next() {
		var it entity.RequestItem
		if err := rows.Scan(&it.ID, &it.RequestID, &it.ItemID, &it.QuantityRequested,
			&it.QuantityApproved, &it.QuantitySent, &it.EstimatedPrice); err != nil {
			return nil, fmt.Errorf("scan request item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una solicitud.
func (r *RequestRepo) Update(req *entity.Request) error {
	query := `
		UPDATE requests SET status = $2, total_estimated_cost = $3, notes = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.Status, req.TotalEstimatedCost, req.Notes, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	return nil
}

// UpdateItem actualiza las cantidades de una línea.
func (r *RequestRepo) UpdateItem(it *entity.RequestItem) error {
	query := `
		UPDATE request_items SET quantity_approved = $2, quantity_sent = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, it.ID, it.QuantityApproved, it.QuantitySent)
	if err != nil {
		return fmt.Errorf("update request item: %w", err)
	}
	return nil
}

// ListByUnit lista solicitudes creadas por una unidad solicitante.
func (r *RequestRepo) ListByUnit(unitID, status string, limit, offset int) ([]*entity.Request, error) {
	return r.list(`requesting_unit_id`, unitID, status, limit, offset)
}

// ListByCD lista solicitudes dirigidas a un CD.
func (r *RequestRepo) ListByCD(cdUnitID, status string, limit, offset int) ([]*entity.Request, error) {
	return r.list(`cd_unit_id`, cdUnitID, status, limit, offset)
}

func (r *RequestRepo) list(column, unitID, status string, limit, offset int) ([]*entity.Request, error) {
	query := `
		SELECT ` + requestColumns + ` FROM requests
		WHERE ` + column + ` = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, unitID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, req)
	}
	return list, rows.Err()
}

func scanRequest(row pgx.Row) (*entity.Request, error) {
	var req entity.Request
	err := row.Scan(&req.ID, &req.RequestingUnitID, &req.CDUnitID, &req.Status,
		&req.TotalEstimatedCost, &req.Notes, &req.CreatedAt, &req.UpdatedAt, &req.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan request: %w", err)
	}
	return &req, nil
}
