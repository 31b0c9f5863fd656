package repository

import "github.com/jcsalazar/abasto-api/internal/domain/entity"

// UnitRepository puerto de persistencia para unidades organizacionales.
type UnitRepository interface {
	Create(unit *entity.Unit) error
	GetByID(id string) (*entity.Unit, error)
	List(limit, offset int) ([]*entity.Unit, error)
	ListDistributionCenters() ([]*entity.Unit, error)
	Update(unit *entity.Unit) error
}
