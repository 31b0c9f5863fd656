package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// BudgetUseCase administra presupuestos por unidad y período: creación con
// verificación de solape, registro de ingresos y consulta de disponible.
// Los débitos por compra los ejecuta el caso de uso de finalización dentro de
// su propia transacción, vía DebitBudget.
type BudgetUseCase struct {
	txRunner   BudgetTxRunner
	budgetRepo repository.BudgetRepository
	unitRepo   repository.UnitRepository
}

// NewBudgetUseCase construye el caso de uso.
func NewBudgetUseCase(txRunner BudgetTxRunner, budgetRepo repository.BudgetRepository, unitRepo repository.UnitRepository) *BudgetUseCase {
	return &BudgetUseCase{txRunner: txRunner, budgetRepo: budgetRepo, unitRepo: unitRepo}
}

// CreateInput datos para crear un presupuesto.
type CreateInput struct {
	UnitID      string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Amount      decimal.Decimal
	UserID      string
}

// Create crea el presupuesto de una unidad para un período. Los períodos
// solapados por unidad se rechazan con ErrBudgetOverlap: a lo sumo un
// presupuesto cubre cualquier fecha.
func (uc *BudgetUseCase) Create(ctx context.Context, in CreateInput) (*entity.Budget, error) {
	if in.UnitID == "" || in.PeriodEnd.Before(in.PeriodStart) || in.Amount.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	unit, err := uc.unitRepo.GetByID(in.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	budget := &entity.Budget{
		ID:          uuid.New().String(),
		UnitID:      in.UnitID,
		PeriodStart: in.PeriodStart,
		PeriodEnd:   in.PeriodEnd,
		Amount:      in.Amount,
		Used:        decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.RunBudget(ctx, func(budgetRepo repository.BudgetRepository, finRepo repository.FinancialTransactionRepository) error {
		// Serializa creaciones por unidad: sin esto, dos transacciones pueden
		// pasar la verificación de solape y ambas insertar.
		if err := budgetRepo.LockUnit(in.UnitID); err != nil {
			return err
		}
		overlap, err := budgetRepo.HasOverlapping(in.UnitID, in.PeriodStart, in.PeriodEnd, "")
		if err != nil {
			return err
		}
		if overlap {
			return domain.ErrBudgetOverlap
		}
		if err := budgetRepo.Create(budget); err != nil {
			return err
		}
		if budget.Amount.GreaterThan(decimal.Zero) {
			return finRepo.Create(&entity.FinancialTransaction{
				ID:        uuid.New().String(),
				UnitID:    in.UnitID,
				BudgetID:  budget.ID,
				Type:      entity.FinancialTypeIngreso,
				Amount:    budget.Amount,
				Notes:     "asignación inicial de presupuesto",
				CreatedAt: now,
				CreatedBy: in.UserID,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

// RecordIncome registra un ingreso para la unidad en la fecha dada: aumenta el
// Amount del presupuesto que cubre la fecha. Si no existe presupuesto para el
// período, se crea uno implícito que cubre el mes calendario de la fecha.
func (uc *BudgetUseCase) RecordIncome(ctx context.Context, unitID string, date time.Time, amount decimal.Decimal, notes, userID string) (*entity.Budget, error) {
	if unitID == "" || !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	var result *entity.Budget
	err := uc.txRunner.RunBudget(ctx, func(budgetRepo repository.BudgetRepository, finRepo repository.FinancialTransactionRepository) error {
		// El lock cubre la creación implícita: dos ingresos concurrentes sobre un
		// mes sin presupuesto deben producir un solo presupuesto con la suma.
		if err := budgetRepo.LockUnit(unitID); err != nil {
			return err
		}
		budget, err := budgetRepo.GetForPeriodForUpdate(unitID, date)
		if err != nil {
			return err
		}
		if budget == nil {
			// Creación implícita: el mes calendario de la fecha.
			start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
			end := start.AddDate(0, 1, -1)
			budget = &entity.Budget{
				ID:          uuid.New().String(),
				UnitID:      unitID,
				PeriodStart: start,
				PeriodEnd:   end,
				Amount:      amount,
				Used:        decimal.Zero,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := budgetRepo.Create(budget); err != nil {
				return err
			}
		} else {
			budget.Amount = budget.Amount.Add(amount)
			budget.UpdatedAt = now
			if err := budgetRepo.Update(budget); err != nil {
				return err
			}
		}
		result = budget
		return finRepo.Create(&entity.FinancialTransaction{
			ID:        uuid.New().String(),
			UnitID:    unitID,
			BudgetID:  budget.ID,
			Type:      entity.FinancialTypeIngreso,
			Amount:    amount,
			Notes:     notes,
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ManualDebit aplica un débito manual de ajuste (no ligado a una compra).
func (uc *BudgetUseCase) ManualDebit(ctx context.Context, unitID string, date time.Time, amount decimal.Decimal, notes, userID string) (*entity.Budget, error) {
	now := time.Now()
	var result *entity.Budget
	err := uc.txRunner.RunBudget(ctx, func(budgetRepo repository.BudgetRepository, finRepo repository.FinancialTransactionRepository) error {
		budget, err := DebitBudget(budgetRepo, unitID, date, amount, now)
		if err != nil {
			return err
		}
		result = budget
		return finRepo.Create(&entity.FinancialTransaction{
			ID:        uuid.New().String(),
			UnitID:    unitID,
			BudgetID:  budget.ID,
			Type:      entity.FinancialTypeAjuste,
			Amount:    amount.Neg(),
			Notes:     notes,
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Available devuelve el presupuesto vigente de la unidad en la fecha (lectura directa).
func (uc *BudgetUseCase) Available(unitID string, date time.Time) (*entity.Budget, error) {
	budget, err := uc.budgetRepo.GetForPeriod(unitID, date)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, domain.ErrNoBudgetForPeriod
	}
	return budget, nil
}

// ListByUnit lista los presupuestos de una unidad.
func (uc *BudgetUseCase) ListByUnit(unitID string, limit, offset int) ([]*entity.Budget, error) {
	return uc.budgetRepo.ListByUnit(unitID, limit, offset)
}
