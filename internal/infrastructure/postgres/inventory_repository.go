package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, item_id, unit_id, quantity, location, status, created_at, updated_at, created_by`

// Create persiste un registro de inventario individualizado.
func (r *InventoryRepo) Create(rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory (id, item_id, unit_id, quantity, location, status, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.ItemID, rec.UnitID, rec.Quantity, rec.Location, rec.Status,
		rec.CreatedAt, rec.UpdatedAt, rec.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *InventoryRepo) GetByID(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtiene un registro bloqueando la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetByIDForUpdate(id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza cantidad, ubicación y estado de un registro.
func (r *InventoryRepo) Update(rec *entity.InventoryRecord) error {
	query := `
		UPDATE inventory SET quantity = $2, location = $3, status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.Quantity, rec.Location, rec.Status, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update inventory record: %w", err)
	}
	return nil
}

// ListByUnit lista registros de inventario de una unidad.
func (r *InventoryRepo) ListByUnit(unitID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + ` FROM inventory
		WHERE unit_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, unitID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.ID, &rec.ItemID, &rec.UnitID, &rec.Quantity, &rec.Location,
			&rec.Status, &rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// CreateEvent persiste un evento de ciclo de vida.
func (r *InventoryRepo) CreateEvent(ev *entity.InventoryEvent) error {
	query := `
		INSERT INTO inventory_events (id, inventory_id, type, notes, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		ev.ID, ev.InventoryID, ev.Type, ev.Notes, ev.CreatedAt, ev.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert inventory event: %w", err)
	}
	return nil
}

// ListEvents lista los eventos de un registro, del más reciente al más antiguo.
func (r *InventoryRepo) ListEvents(inventoryID string) ([]*entity.InventoryEvent, error) {
	query := `
		SELECT id, inventory_id, type, notes, created_at, created_by
		FROM inventory_events WHERE inventory_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("list inventory events: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryEvent
	for rows.Next() {
		var ev entity.InventoryEvent
		if err := rows.Scan(&ev.ID, &ev.InventoryID, &ev.Type, &ev.Notes, &ev.CreatedAt, &ev.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan inventory event: %w", err)
		}
		list = append(list, &ev)
	}
	return list, rows.Err()
}

func (r *InventoryRepo) scanOne(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(&rec.ID, &rec.ItemID, &rec.UnitID, &rec.Quantity, &rec.Location,
		&rec.Status, &rec.CreatedAt, &rec.UpdatedAt, &rec.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return &rec, nil
}
