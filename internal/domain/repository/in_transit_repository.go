package repository

import (
	"time"

	"github.com/jcsalazar/abasto-api/internal/domain/entity"
)

// InTransitRepository puerto para registros de stock en tránsito entre unidades.
type InTransitRepository interface {
	Create(record *entity.InTransit) error
	ListByRequest(requestID string) ([]*entity.InTransit, error)
	// MarkDelivered cambia el registro a entregado con la fecha dada.
	MarkDelivered(id string, at time.Time) error
}
