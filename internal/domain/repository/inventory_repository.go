package repository

import "github.com/jcsalazar/abasto-api/internal/domain/entity"

// InventoryRepository puerto para registros de inventario individualizado y sus eventos.
type InventoryRepository interface {
	Create(record *entity.InventoryRecord) error
	GetByID(id string) (*entity.InventoryRecord, error)
	// GetByIDForUpdate bloquea la fila del registro (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.InventoryRecord, error)
	Update(record *entity.InventoryRecord) error
	ListByUnit(unitID string, limit, offset int) ([]*entity.InventoryRecord, error)

	CreateEvent(event *entity.InventoryEvent) error
	ListEvents(inventoryID string) ([]*entity.InventoryEvent, error)
}
