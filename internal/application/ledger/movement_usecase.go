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

// Tipos de movimiento aceptados por el API de stock.
const (
	MovementEntrada  = "entrada"
	MovementSalida   = "salida"
	MovementAjuste   = "ajuste"
	MovementTraslado = "traslado"
)

// MovementUseCase registra movimientos de stock de forma transaccional
// (entrada, salida, ajuste, traslado) con bloqueo de fila y Commit/Rollback.
type MovementUseCase struct {
	txRunner StockTxRunner
	itemRepo repository.ItemRepository
	unitRepo repository.UnitRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner StockTxRunner, itemRepo repository.ItemRepository, unitRepo repository.UnitRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, itemRepo: itemRepo, unitRepo: unitRepo}
}

// MovementInput entrada para registrar un movimiento de stock.
// Para entrada/salida/ajuste: ItemID, UnitID, Type, Quantity.
// Para traslado: ItemID, FromUnitID, ToUnitID, Type=traslado, Quantity.
type MovementInput struct {
	UserID     string
	ItemID     string
	UnitID     string
	FromUnitID string
	ToUnitID   string
	Type       string
	Quantity   decimal.Decimal
	Reference  string
}

// RegisterMovement valida, inicia una transacción y aplica el movimiento.
func (uc *MovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) error {
	switch input.Type {
	case MovementEntrada, MovementSalida:
		if input.ItemID == "" || input.UnitID == "" || !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case MovementAjuste:
		if input.ItemID == "" || input.UnitID == "" || input.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
	case MovementTraslado:
		if input.ItemID == "" || input.FromUnitID == "" || input.ToUnitID == "" {
			return domain.ErrInvalidInput
		}
		if input.FromUnitID == input.ToUnitID || !input.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}

	// Validar que el ítem y la(s) unidad(es) existan
	item, err := uc.itemRepo.GetByID(input.ItemID)
	if err != nil || item == nil {
		return domain.ErrNotFound
	}
	if input.Type == MovementTraslado {
		from, _ := uc.unitRepo.GetByID(input.FromUnitID)
		to, _ := uc.unitRepo.GetByID(input.ToUnitID)
		if from == nil || to == nil {
			return domain.ErrNotFound
		}
	} else {
		unit, _ := uc.unitRepo.GetByID(input.UnitID)
		if unit == nil {
			return domain.ErrNotFound
		}
	}

	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.RunStock(ctx, func(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) error {
		switch input.Type {
		case MovementEntrada:
			return uc.doEntrada(stockRepo, movRepo, input, now, txID)
		case MovementSalida:
			return uc.doSalida(stockRepo, movRepo, input, now, txID)
		case MovementAjuste:
			// Ajuste positivo entra, negativo sale.
			if input.Quantity.GreaterThan(decimal.Zero) {
				return uc.doEntrada(stockRepo, movRepo, input, now, txID)
			}
			neg := input
			neg.Quantity = input.Quantity.Neg()
			return uc.doSalida(stockRepo, movRepo, neg, now, txID)
		case MovementTraslado:
			_, err := Transfer(stockRepo, movRepo, TransferInput{
				ItemID:     input.ItemID,
				FromUnitID: input.FromUnitID,
				ToUnitID:   input.ToUnitID,
				Quantity:   input.Quantity,
				Reason:     entity.MovementReasonTraslado,
				Reference:  input.Reference,
				UserID:     input.UserID,
				TxID:       txID,
				Now:        now,
			})
			return err
		}
		return domain.ErrInvalidInput
	})
}

func (uc *MovementUseCase) doEntrada(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository, input MovementInput, now time.Time, txID string) error {
	if _, err := CreditStock(stockRepo, input.ItemID, input.UnitID, input.Quantity, now); err != nil {
		return err
	}
	reason := entity.MovementReasonEntrada
	if input.Type == MovementAjuste {
		reason = entity.MovementReasonAjuste
	}
	return movRepo.Create(&entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		ItemID:        input.ItemID,
		ToUnitID:      input.UnitID,
		Quantity:      input.Quantity,
		Reason:        reason,
		Reference:     input.Reference,
		CreatedAt:     now,
		CreatedBy:     input.UserID,
	})
}

func (uc *MovementUseCase) doSalida(stockRepo repository.StockRepository, movRepo repository.StockMovementRepository, input MovementInput, now time.Time, txID string) error {
	if _, err := DebitStock(stockRepo, input.ItemID, input.UnitID, input.Quantity, now); err != nil {
		return err
	}
	reason := entity.MovementReasonSalida
	if input.Type == MovementAjuste {
		reason = entity.MovementReasonAjuste
	}
	return movRepo.Create(&entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: txID,
		ItemID:        input.ItemID,
		FromUnitID:    input.UnitID,
		Quantity:      input.Quantity,
		Reason:        reason,
		Reference:     input.Reference,
		CreatedAt:     now,
		CreatedBy:     input.UserID,
	})
}
