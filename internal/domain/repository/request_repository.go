package repository

import "github.com/jcsalazar/abasto-api/internal/domain/entity"

// RequestRepository puerto de persistencia para solicitudes internas y sus líneas.
// GetByID y GetByIDForUpdate devuelven la solicitud con Items cargados.
type RequestRepository interface {
	Create(request *entity.Request) error
	GetByID(id string) (*entity.Request, error)
	// GetByIDForUpdate bloquea la fila de la solicitud (SELECT FOR UPDATE) y carga las líneas.
	GetByIDForUpdate(id string) (*entity.Request, error)
	Update(request *entity.Request) error
	UpdateItem(item *entity.RequestItem) error
	ListByUnit(unitID, status string, limit, offset int) ([]*entity.Request, error)
	ListByCD(cdUnitID, status string, limit, offset int) ([]*entity.Request, error)
}
