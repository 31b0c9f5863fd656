package repository

import "github.com/jcsalazar/abasto-api/internal/domain/entity"

// ItemRepository puerto de persistencia para el catálogo de ítems.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByCode(code string) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	Update(item *entity.Item) error
}
