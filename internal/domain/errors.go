package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInsufficientBudget  = errors.New("presupuesto insuficiente")
	ErrNoBudgetForPeriod   = errors.New("no hay presupuesto para el período")
	ErrInvalidTransition   = errors.New("transición de estado no permitida")
	ErrDuplicateSelection  = errors.New("ya existe una respuesta seleccionada")
	ErrBudgetOverlap       = errors.New("la unidad ya tiene un presupuesto que cubre el período")
)

// StockShortfallError faltante de stock para un ítem en una unidad.
// Requested/Available permiten al caller decidir la acción correctiva.
type StockShortfallError struct {
	ItemID    string
	UnitID    string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *StockShortfallError) Error() string {
	return fmt.Sprintf("stock insuficiente: item=%s unidad=%s solicitado=%s disponible=%s",
		e.ItemID, e.UnitID, e.Requested, e.Available)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *StockShortfallError) Unwrap() error { return ErrInsufficientStock }

// Missing devuelve la cantidad faltante (solicitado - disponible).
func (e *StockShortfallError) Missing() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// BudgetShortfallError faltante de presupuesto para una unidad.
type BudgetShortfallError struct {
	UnitID    string
	BudgetID  string
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *BudgetShortfallError) Error() string {
	return fmt.Sprintf("presupuesto insuficiente: unidad=%s requerido=%s disponible=%s",
		e.UnitID, e.Required, e.Available)
}

func (e *BudgetShortfallError) Unwrap() error { return ErrInsufficientBudget }

// Missing devuelve el monto faltante.
func (e *BudgetShortfallError) Missing() decimal.Decimal {
	return e.Required.Sub(e.Available)
}

// TransitionError transición ilegal en un workflow de estado.
type TransitionError struct {
	Entity string // "purchase" | "request" | "quotation"
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transición no permitida en %s: %s -> %s", e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// RequestShortfall faltante de un ítem al intentar enviar una solicitud.
type RequestShortfall struct {
	ItemID    string
	Requested decimal.Decimal
	Available decimal.Decimal
	Missing   decimal.Decimal
}

// RequestShortfallError agrupa los faltantes de todos los ítems de la solicitud;
// el envío no muta nada cuando al menos un ítem no alcanza.
type RequestShortfallError struct {
	RequestID  string
	CDUnitID   string
	Shortfalls []RequestShortfall
}

func (e *RequestShortfallError) Error() string {
	return fmt.Sprintf("stock insuficiente en CD %s para enviar la solicitud %s (%d ítems con faltante)",
		e.CDUnitID, e.RequestID, len(e.Shortfalls))
}

func (e *RequestShortfallError) Unwrap() error { return ErrInsufficientStock }
