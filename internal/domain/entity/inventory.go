package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un registro de inventario individualizado.
const (
	InventoryStatusActivo        = "activo"
	InventoryStatusMantenimiento = "mantenimiento"
	InventoryStatusReparacion    = "reparacion"
	InventoryStatusBaja          = "baja"
)

// Tipos de evento sobre un registro de inventario con ciclo de vida.
const (
	InventoryEventMantenimiento = "mantenimiento"
	InventoryEventReparacion    = "reparacion"
	InventoryEventBaja          = "baja"
	InventoryEventReactivacion  = "reactivacion"
)

// InventoryRecord registro individualizado de inventario, creado debitando Stock.
// Para ítems con ciclo de vida (Item.HasLifecycle) Quantity queda fijada en 1 y los
// eventos posteriores (mantenimiento, reparación) se asocian a este único registro.
type InventoryRecord struct {
	ID        string
	ItemID    string
	UnitID    string
	Quantity  decimal.Decimal
	Location  string // ubicación física dentro de la unidad (sala, piso, responsable)
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}

// InventoryEvent evento del ciclo de vida de un registro individualizado.
type InventoryEvent struct {
	ID          string
	InventoryID string
	Type        string
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string
}
