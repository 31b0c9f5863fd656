package entity

import "time"

// AuditLog entrada de auditoría para operaciones que afectan ledgers o workflows.
type AuditLog struct {
	ID         string
	UserID     string
	UnitID     string
	Action     string // ej. "purchase.finalize", "request.send"
	EntityType string
	EntityID   string
	Detail     string
	CreatedAt  time.Time
}
