package repository

import (
	"time"

	"github.com/jcsalazar/abasto-api/internal/domain/entity"
)

// BudgetRepository puerto de persistencia para presupuestos por unidad y período.
// Usado dentro de transacciones para garantizar que el débito verifique y aplique
// como un solo paso (GetForPeriodForUpdate bloquea la fila).
type BudgetRepository interface {
	// LockUnit serializa, dentro de la transacción, la creación de presupuestos
	// de la unidad: dos creaciones concurrentes no pueden pasar ambas la
	// verificación de solape.
	LockUnit(unitID string) error
	Create(budget *entity.Budget) error
	GetByID(id string) (*entity.Budget, error)
	// GetForPeriod devuelve el presupuesto de la unidad cuyo período contiene la fecha,
	// o nil si no existe.
	GetForPeriod(unitID string, date time.Time) (*entity.Budget, error)
	// GetForPeriodForUpdate igual que GetForPeriod pero bloquea la fila (SELECT FOR UPDATE).
	GetForPeriodForUpdate(unitID string, date time.Time) (*entity.Budget, error)
	// HasOverlapping indica si la unidad ya tiene un presupuesto que se solape con
	// [start, end], excluyendo excludeID (vacío = no excluir).
	HasOverlapping(unitID string, start, end time.Time, excludeID string) (bool, error)
	ListByUnit(unitID string, limit, offset int) ([]*entity.Budget, error)
	Update(budget *entity.Budget) error
}
