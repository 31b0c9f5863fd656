package repository

import "github.com/jcsalazar/abasto-api/internal/domain/entity"

// StockRepository puerto para consultar/actualizar stock por ítem+unidad.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve el saldo; fila ausente equivale a saldo cero.
	Get(itemID, unitID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE), materializándola en cero
	// si no existe: el caller siempre sale con la fila bloqueada.
	GetForUpdate(itemID, unitID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByUnit(unitID string, limit, offset int) ([]*entity.Stock, error)
}
