package repository

import "github.com/jcsalazar/abasto-api/internal/domain/entity"

// PurchaseRepository puerto de persistencia para compras y sus líneas.
// GetByID y GetByIDForUpdate devuelven la compra con Items cargados.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	GetByID(id string) (*entity.Purchase, error)
	// GetByIDForUpdate bloquea la fila de la compra (SELECT FOR UPDATE) y carga las líneas.
	GetByIDForUpdate(id string) (*entity.Purchase, error)
	Update(purchase *entity.Purchase) error
	UpdateItem(item *entity.PurchaseItem) error
	ListByUnit(unitID, status string, limit, offset int) ([]*entity.Purchase, error)
}
