package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación de QuotationRepository sobre PostgreSQL.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// Create persiste una cotización.
func (r *QuotationRepo) Create(quo *entity.Quotation) error {
	query := `
		INSERT INTO quotations (id, purchase_id, status, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		quo.ID, quo.PurchaseID, quo.Status, quo.Notes, quo.CreatedAt, quo.UpdatedAt, quo.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID.
func (r *QuotationRepo) GetByID(id string) (*entity.Quotation, error) {
	query := `
		SELECT id, purchase_id, status, notes, created_at, updated_at, created_by
		FROM quotations WHERE id = $1`
	var quo entity.Quotation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&quo.ID, &quo.PurchaseID, &quo.Status, &quo.Notes, &quo.CreatedAt, &quo.UpdatedAt, &quo.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	return &quo, nil
}

// ListByPurchase lista las cotizaciones de una compra.
func (r *QuotationRepo) ListByPurchase(purchaseID string) ([]*entity.Quotation, error) {
	query := `
		SELECT id, purchase_id, status, notes, created_at, updated_at, created_by
		FROM quotations WHERE purchase_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		var quo entity.Quotation
		if err := rows.Scan(&quo.ID, &quo.PurchaseID, &quo.Status, &quo.Notes,
			&quo.CreatedAt, &quo.UpdatedAt, &quo.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, &quo)
	}
	return list, rows.Err()
}

// Update actualiza estado y notas de una cotización.
func (r *QuotationRepo) Update(quo *entity.Quotation) error {
	query := `UPDATE quotations SET status = $2, notes = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, quo.ID, quo.Status, quo.Notes, quo.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	return nil
}

const responseColumns = `id, quotation_id, item_id, supplier, unit_price, delivery_days, is_selected, created_at, updated_at`

// CreateResponse persiste la respuesta de un proveedor.
func (r *QuotationRepo) CreateResponse(resp *entity.QuotationResponse) error {
	query := `
		INSERT INTO quotation_responses (id, quotation_id, item_id, supplier, unit_price, delivery_days, is_selected, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		resp.ID, resp.QuotationID, resp.ItemID, resp.Supplier, resp.UnitPrice,
		resp.DeliveryDays, resp.IsSelected, resp.CreatedAt, resp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quotation response: %w", err)
	}
	return nil
}

// GetResponse obtiene una respuesta por ID.
func (r *QuotationRepo) GetResponse(id string) (*entity.QuotationResponse, error) {
	query := `SELECT ` + responseColumns + ` FROM quotation_responses WHERE id = $1`
	var resp entity.QuotationResponse
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&resp.ID, &resp.QuotationID, &resp.ItemID, &resp.Supplier, &resp.UnitPrice,
		&resp.DeliveryDays, &resp.IsSelected, &resp.CreatedAt, &resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation response: %w", err)
	}
	return &resp, nil
}

// ListResponses lista las respuestas de una cotización.
func (r *QuotationRepo) ListResponses(quotationID string) ([]*entity.QuotationResponse, error) {
	query := `
		SELECT ` + responseColumns + ` FROM quotation_responses
		WHERE quotation_id = $1 ORDER BY item_id, unit_price`
	rows, err := r.q.Query(context.Background(), query, quotationID)
	if err != nil {
		return nil, fmt.Errorf("list quotation responses: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuotationResponse
	for rows.Next() {
		var resp entity.QuotationResponse
		if err := rows.Scan(&resp.ID, &resp.QuotationID, &resp.ItemID, &resp.Supplier,
			&resp.UnitPrice, &resp.DeliveryDays, &resp.IsSelected, &resp.CreatedAt, &resp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan quotation response: %w", err)
		}
		list = append(list, &resp)
	}
	return list, rows.Err()
}

// UpdateResponse actualiza una respuesta (en particular is_selected).
func (r *QuotationRepo) UpdateResponse(resp *entity.QuotationResponse) error {
	query := `
		UPDATE quotation_responses SET supplier = $2, unit_price = $3, delivery_days = $4, is_selected = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		resp.ID, resp.Supplier, resp.UnitPrice, resp.DeliveryDays, resp.IsSelected, resp.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation response: %w", err)
	}
	return nil
}

// ClearSelection desmarca cualquier respuesta seleccionada del par (cotización, ítem).
func (r *QuotationRepo) ClearSelection(quotationID, itemID string) error {
	query := `
		UPDATE quotation_responses SET is_selected = false, updated_at = now()
		WHERE quotation_id = $1 AND item_id = $2 AND is_selected`
	_, err := r.q.Exec(context.Background(), query, quotationID, itemID)
	if err != nil {
		return fmt.Errorf("clear quotation selection: %w", err)
	}
	return nil
}
