package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
// GetByID y GetByIDForUpdate devuelven la compra con sus líneas cargadas.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, unit_id, supplier, status, total_value, notes, request_id, created_at, updated_at, created_by, finalized_at`

// Create persiste una compra y sus líneas.
func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchases (id, unit_id, supplier, status, total_value, notes, request_id, created_at, updated_at, created_by, finalized_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UnitID, p.Supplier, p.Status, p.TotalValue, p.Notes, p.RequestID,
		p.CreatedAt, p.UpdatedAt, p.CreatedBy, p.FinalizedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	for _, it := range p.Items {
		if err := r.insertItem(ctx, it); err != nil {
			return err
		}
	}
	return nil
}

func (r *PurchaseRepo) insertItem(ctx context.Context, it *entity.PurchaseItem) error {
	query := `
		INSERT INTO purchase_items (id, purchase_id, item_id, quantity, unit_price, supplier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.PurchaseID, it.ItemID, it.Quantity, it.UnitPrice, it.Supplier,
		it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID con sus líneas.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	return r.getOne(query, id)
}

// GetByIDForUpdate obtiene la compra bloqueando la fila (SELECT FOR UPDATE) y carga las líneas.
func (r *PurchaseRepo) GetByIDForUpdate(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1 FOR UPDATE`
	return r.getOne(query, id)
}

func (r *PurchaseRepo) getOne(query, id string) (*entity.Purchase, error) {
	ctx := context.Background()
	p, err := scanPurchase(r.q.QueryRow(ctx, query, id))
	if err != nil || p == nil {
		return p, err
	}
	items, err := r.listItems(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Items = items
	return p, nil
}

func (r *PurchaseRepo) listItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	query := `
		SELECT id, purchase_id, item_id, quantity, unit_price, supplier, created_at, updated_at
		FROM purchase_items WHERE purchase_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ItemID, &it.Quantity,
			&it.UnitPrice, &it.Supplier, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Update actualiza la cabecera de una compra.
func (r *PurchaseRepo) Update(p *entity.Purchase) error {
	query := `
		UPDATE purchases SET supplier = $2, status = $3, total_value = $4, notes = $5, updated_at = $6, finalized_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Supplier, p.Status, p.TotalValue, p.Notes, p.UpdatedAt, p.FinalizedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	return nil
}

// UpdateItem actualiza precio y proveedor de una línea.
func (r *PurchaseRepo) UpdateItem(it *entity.PurchaseItem) error {
	query := `
		UPDATE purchase_items SET quantity = $2, unit_price = $3, supplier = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.Quantity, it.UnitPrice, it.Supplier, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase item: %w", err)
	}
	return nil
}

// ListByUnit lista compras de una unidad, opcionalmente filtradas por estado.
// Las cabeceras se devuelven sin líneas.
func (r *PurchaseRepo) ListByUnit(unitID, status string, limit, offset int) ([]*entity.Purchase, error) {
	query := `
		SELECT ` + purchaseColumns + ` FROM purchases
		WHERE unit_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, unitID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	var requestID *string
	err := row.Scan(&p.ID, &p.UnitID, &p.Supplier, &p.Status, &p.TotalValue, &p.Notes,
		&requestID, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.FinalizedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan purchase: %w", err)
	}
	if requestID != nil {
		p.RequestID = *requestID
	}
	return &p, nil
}
