package entity

import "time"

// Item representa un artículo del catálogo. La identidad (código) es inmutable;
// Stock, Inventory y las líneas de compra/solicitud lo referencian.
// HasLifecycle indica que cada unidad física se rastrea individualmente en Inventory
// (cantidad fijada en 1) en lugar de como cantidad agregada en Stock.
type Item struct {
	ID            string
	Code          string
	Name          string
	UnitOfMeasure string // und, kg, lt, caja, ...
	Category      string
	HasLifecycle  bool
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
