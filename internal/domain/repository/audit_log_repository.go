package repository

import "github.com/jcsalazar/abasto-api/internal/domain/entity"

// AuditLogRepository puerto para el registro de auditoría.
type AuditLogRepository interface {
	Create(entry *entity.AuditLog) error
	ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.AuditLog, error)
}
