package postgres

import (
	"context"
	"fmt"

	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de AuditLogRepository sobre PostgreSQL.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *AuditLogRepo) Create(entry *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, user_id, unit_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.UserID, entry.UnitID, entry.Action, entry.EntityType,
		entry.EntityID, entry.Detail, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByEntity lista las entradas de auditoría de una entidad.
func (r *AuditLogRepo) ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, user_id, unit_id, action, entity_type, entity_id, detail, created_at
		FROM audit_logs WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, entityType, entityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.AuditLog
	for rows.Next() {
		var entry entity.AuditLog
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.UnitID, &entry.Action,
			&entry.EntityType, &entry.EntityID, &entry.Detail, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &entry)
	}
	return list, rows.Err()
}
