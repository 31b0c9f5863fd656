package entity

import "time"

// Roles válidos para User. La autorización por acción se resuelve en la tabla
// de capacidades del middleware HTTP, no comparando nombres de rol en handlers.
const (
	RoleAdmin       = "admin"
	RoleComprador   = "comprador"
	RoleAlmacenista = "almacenista"
	RoleSolicitante = "solicitante"
)

// User representa un usuario del sistema (pertenece a una Unit).
type User struct {
	ID           string
	UnitID       string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, comprador, almacenista, solicitante
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
