package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un ítem en una unidad. Fila ausente = saldo cero.
func (r *StockRepo) Get(itemID, unitID string) (*entity.Stock, error) {
	query := `
		SELECT item_id, unit_id, quantity, updated_at
		FROM stock WHERE item_id = $1 AND unit_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, unitID).Scan(
		&s.ItemID, &s.UnitID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ItemID: itemID, UnitID: unitID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE). Si la
// fila no existe la materializa en cero y la vuelve a leer bajo bloqueo: dos
// primeras acreditaciones concurrentes sobre el mismo (ítem, unidad) quedan
// serializadas en el índice único en vez de pisarse la cantidad.
func (r *StockRepo) GetForUpdate(itemID, unitID string) (*entity.Stock, error) {
	query := `
		SELECT item_id, unit_id, quantity, updated_at
		FROM stock WHERE item_id = $1 AND unit_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, itemID, unitID).Scan(
		&s.ItemID, &s.UnitID, &s.Quantity, &s.UpdatedAt,
	)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	// ON CONFLICT DO NOTHING espera a la transacción que insertó primero; la
	// relectura (snapshot nuevo bajo READ COMMITTED) ve y bloquea su fila.
	insert := `
		INSERT INTO stock (item_id, unit_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (item_id, unit_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, itemID, unitID); err != nil {
		return nil, fmt.Errorf("materializar fila de stock: %w", err)
	}
	err = r.q.QueryRow(context.Background(), query, itemID, unitID).Scan(
		&s.ItemID, &s.UnitID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad en stock (por ítem y unidad).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (item_id, unit_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (item_id, unit_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ItemID, stock.UnitID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByUnit lista los saldos de stock de una unidad.
func (r *StockRepo) ListByUnit(unitID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT item_id, unit_id, quantity, updated_at
		FROM stock WHERE unit_id = $1 ORDER BY item_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, unitID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ItemID, &s.UnitID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
