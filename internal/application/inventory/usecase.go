package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcsalazar/abasto-api/internal/application/ledger"
	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// UseCase individualización de inventario: mover cantidad del stock de una
// unidad a registros de inventario rastreados (y el camino inverso). Para ítems
// con ciclo de vida cada unidad física queda en su propio registro de cantidad 1.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	invRepo  repository.InventoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, itemRepo repository.ItemRepository, invRepo repository.InventoryRepository) *UseCase {
	return &UseCase{txRunner: txRunner, itemRepo: itemRepo, invRepo: invRepo}
}

// MoveInput parámetros para individualizar stock.
type MoveInput struct {
	ItemID   string
	UnitID   string
	Quantity decimal.Decimal
	Location string
	UserID   string
}

// MoveToInventory debita el stock de la unidad y crea registros de inventario.
// Ítems con ciclo de vida: la cantidad debe ser entera y se crea un registro de
// cantidad 1 por cada unidad física; el resto de ítems quedan en un solo registro.
func (uc *UseCase) MoveToInventory(ctx context.Context, in MoveInput) ([]*entity.InventoryRecord, error) {
	if in.ItemID == "" || in.UnitID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if item.HasLifecycle && !in.Quantity.IsInteger() {
		return nil, fmt.Errorf("%w: los ítems con ciclo de vida se individualizan en cantidades enteras", domain.ErrInvalidInput)
	}

	now := time.Now()
	txID := uuid.New().String()
	var records []*entity.InventoryRecord

	err = uc.txRunner.RunInventory(ctx, func(invRepo repository.InventoryRepository, stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) error {
		if _, err := ledger.DebitStock(stockRepo, in.ItemID, in.UnitID, in.Quantity, now); err != nil {
			return err
		}
		if item.HasLifecycle {
			// Un registro de cantidad 1 por unidad física.
			count := in.Quantity.IntPart()
			for i := int64(0); i < count; i++ {
				rec := &entity.InventoryRecord{
					ID:        uuid.New().String(),
					ItemID:    in.ItemID,
					UnitID:    in.UnitID,
					Quantity:  decimal.NewFromInt(1),
					Location:  in.Location,
					Status:    entity.InventoryStatusActivo,
					CreatedAt: now,
					UpdatedAt: now,
					CreatedBy: in.UserID,
				}
				if err := invRepo.Create(rec); err != nil {
					return err
				}
				records = append(records, rec)
			}
		} else {
			rec := &entity.InventoryRecord{
				ID:        uuid.New().String(),
				ItemID:    in.ItemID,
				UnitID:    in.UnitID,
				Quantity:  in.Quantity,
				Location:  in.Location,
				Status:    entity.InventoryStatusActivo,
				CreatedAt: now,
				UpdatedAt: now,
				CreatedBy: in.UserID,
			}
			if err := invRepo.Create(rec); err != nil {
				return err
			}
			records = append(records, rec)
		}
		return movRepo.Create(&entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: txID,
			ItemID:        in.ItemID,
			FromUnitID:    in.UnitID,
			Quantity:      in.Quantity,
			Reason:        entity.MovementReasonIndividualizar,
			CreatedAt:     now,
			CreatedBy:     in.UserID,
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ReturnToStock devuelve cantidad de un registro de inventario al stock de su
// unidad. El registro que llega a cero queda en baja.
func (uc *UseCase) ReturnToStock(ctx context.Context, recordID string, qty decimal.Decimal, userID string) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	return uc.txRunner.RunInventory(ctx, func(invRepo repository.InventoryRepository, stockRepo repository.StockRepository, movRepo repository.StockMovementRepository) error {
		rec, err := invRepo.GetByIDForUpdate(recordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if rec.Status == entity.InventoryStatusBaja {
			return domain.ErrConflict
		}
		if rec.Quantity.LessThan(qty) {
			return fmt.Errorf("%w: el registro tiene %s y se pidió devolver %s", domain.ErrInvalidInput, rec.Quantity, qty)
		}
		rec.Quantity = rec.Quantity.Sub(qty)
		rec.UpdatedAt = now
		if rec.Quantity.IsZero() {
			rec.Status = entity.InventoryStatusBaja
		}
		if err := invRepo.Update(rec); err != nil {
			return err
		}
		if _, err := ledger.CreditStock(stockRepo, rec.ItemID, rec.UnitID, qty, now); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ID:            uuid.New().String(),
			TransactionID: uuid.New().String(),
			ItemID:        rec.ItemID,
			ToUnitID:      rec.UnitID,
			Quantity:      qty,
			Reason:        entity.MovementReasonRetornoInventario,
			Reference:     rec.ID,
			CreatedAt:     now,
			CreatedBy:     userID,
		})
	})
}

// RegisterEvent registra un evento de ciclo de vida (mantenimiento, reparación,
// baja, reactivación) sobre un registro individualizado. Solo ítems con ciclo
// de vida aceptan eventos; el estado del registro sigue al evento.
func (uc *UseCase) RegisterEvent(recordID, eventType, notes, userID string) (*entity.InventoryEvent, error) {
	rec, err := uc.invRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(rec.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.HasLifecycle {
		return nil, fmt.Errorf("%w: el ítem no tiene ciclo de vida individualizado", domain.ErrInvalidInput)
	}

	var newStatus string
	switch eventType {
	case entity.InventoryEventMantenimiento:
		newStatus = entity.InventoryStatusMantenimiento
	case entity.InventoryEventReparacion:
		newStatus = entity.InventoryStatusReparacion
	case entity.InventoryEventBaja:
		newStatus = entity.InventoryStatusBaja
	case entity.InventoryEventReactivacion:
		newStatus = entity.InventoryStatusActivo
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	event := &entity.InventoryEvent{
		ID:          uuid.New().String(),
		InventoryID: rec.ID,
		Type:        eventType,
		Notes:       notes,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	if err := uc.invRepo.CreateEvent(event); err != nil {
		return nil, err
	}
	rec.Status = newStatus
	rec.UpdatedAt = now
	if err := uc.invRepo.Update(rec); err != nil {
		return nil, err
	}
	return event, nil
}

// ListByUnit lista los registros de inventario de una unidad.
func (uc *UseCase) ListByUnit(unitID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	return uc.invRepo.ListByUnit(unitID, limit, offset)
}

// ListEvents lista los eventos de un registro.
func (uc *UseCase) ListEvents(recordID string) ([]*entity.InventoryEvent, error) {
	return uc.invRepo.ListEvents(recordID)
}
