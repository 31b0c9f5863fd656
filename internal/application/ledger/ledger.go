// Package ledger centraliza las primitivas de débito/crédito sobre los ledgers
// de stock y presupuesto. Las funciones operan sobre repositorios ya atados a
// una transacción del caller: verificación y aplicación ocurren como un solo
// paso bajo bloqueo de fila, cerrando la carrera check-then-act entre clientes
// concurrentes.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// DebitStock resta cantidad del stock (ítem, unidad) bajo bloqueo de fila.
// Falla con StockShortfallError sin mutar nada si la cantidad supera el disponible.
func DebitStock(stockRepo repository.StockRepository, itemID, unitID string, qty decimal.Decimal, now time.Time) (*entity.Stock, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(itemID, unitID)
	if err != nil {
		return nil, err
	}
	if stock.Quantity.LessThan(qty) {
		return nil, &domain.StockShortfallError{
			ItemID:    itemID,
			UnitID:    unitID,
			Requested: qty,
			Available: stock.Quantity,
		}
	}
	stock.Quantity = stock.Quantity.Sub(qty)
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// CreditStock suma cantidad al stock (ítem, unidad); crea la fila en cero si no existe.
func CreditStock(stockRepo repository.StockRepository, itemID, unitID string, qty decimal.Decimal, now time.Time) (*entity.Stock, error) {
	if !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	stock, err := stockRepo.GetForUpdate(itemID, unitID)
	if err != nil {
		return nil, err
	}
	stock.Quantity = stock.Quantity.Add(qty)
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, err
	}
	return stock, nil
}

// DebitBudget debita el presupuesto de la unidad cuyo período contiene la fecha.
// Disponible = Amount - Used, siempre recalculado. Falla con ErrNoBudgetForPeriod
// si no hay presupuesto, o con BudgetShortfallError si el monto supera el disponible.
// Devuelve el presupuesto actualizado (el nuevo disponible sale de Available()).
func DebitBudget(budgetRepo repository.BudgetRepository, unitID string, date time.Time, amount decimal.Decimal, now time.Time) (*entity.Budget, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	budget, err := budgetRepo.GetForPeriodForUpdate(unitID, date)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, fmt.Errorf("%w: unidad=%s fecha=%s", domain.ErrNoBudgetForPeriod, unitID, date.Format("2006-01-02"))
	}
	if budget.Available().LessThan(amount) {
		return nil, &domain.BudgetShortfallError{
			UnitID:    unitID,
			BudgetID:  budget.ID,
			Required:  amount,
			Available: budget.Available(),
		}
	}
	budget.Used = budget.Used.Add(amount)
	budget.UpdatedAt = now
	if err := budgetRepo.Update(budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// CreditBudget devuelve monto consumido al presupuesto (reduce Used). Se usa al
// revertir débitos; el ingreso de recursos nuevos aumenta Amount vía BudgetUseCase.
func CreditBudget(budgetRepo repository.BudgetRepository, unitID string, date time.Time, amount decimal.Decimal, now time.Time) (*entity.Budget, error) {
	if !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	budget, err := budgetRepo.GetForPeriodForUpdate(unitID, date)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, fmt.Errorf("%w: unidad=%s fecha=%s", domain.ErrNoBudgetForPeriod, unitID, date.Format("2006-01-02"))
	}
	budget.Used = budget.Used.Sub(amount)
	budget.UpdatedAt = now
	if err := budgetRepo.Update(budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// TransferInput parámetros de un traslado de stock entre unidades.
type TransferInput struct {
	ItemID     string
	FromUnitID string
	ToUnitID   string
	Quantity   decimal.Decimal
	Reason     string
	Reference  string
	UserID     string
	TxID       string // agrupa movimientos de una misma operación; se genera si viene vacío
	Now        time.Time
}

// Transfer mueve cantidad entre dos unidades como par débito/crédito dentro de la
// transacción del caller y registra el movimiento inmutable. Si el débito falla
// no se acredita nada: el rollback de la tx garantiza que no quede estado parcial.
func Transfer(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository, in TransferInput) (*entity.StockMovement, error) {
	if in.ItemID == "" || in.FromUnitID == "" || in.ToUnitID == "" || in.FromUnitID == in.ToUnitID {
		return nil, domain.ErrInvalidInput
	}
	if _, err := DebitStock(stockRepo, in.ItemID, in.FromUnitID, in.Quantity, in.Now); err != nil {
		return nil, err
	}
	if _, err := CreditStock(stockRepo, in.ItemID, in.ToUnitID, in.Quantity, in.Now); err != nil {
		return nil, err
	}
	txID := in.TxID
	if txID == "" {
		txID = uuid.New().String()
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		ItemID:        in.ItemID,
		FromUnitID:    in.FromUnitID,
		ToUnitID:      in.ToUnitID,
		Quantity:      in.Quantity,
		Reason:        in.Reason,
		Reference:     in.Reference,
		CreatedAt:     in.Now,
		CreatedBy:     in.UserID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
