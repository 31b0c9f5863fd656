package purchase

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
	"github.com/jcsalazar/abasto-api/internal/domain/workflow"
)

// UseCase casos de uso de compras: creación, avance de estado y finalización.
// Finalizar es la única vía de entrada al estado terminal: acredita stock por
// cada línea, debita el presupuesto de la unidad por el total y deja rastro de
// auditoría, todo en una transacción.
type UseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	unitRepo     repository.UnitRepository
	itemRepo     repository.ItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, purchaseRepo repository.PurchaseRepository, unitRepo repository.UnitRepository, itemRepo repository.ItemRepository) *UseCase {
	return &UseCase{txRunner: txRunner, purchaseRepo: purchaseRepo, unitRepo: unitRepo, itemRepo: itemRepo}
}

// CreateItemInput línea de la compra a crear.
type CreateItemInput struct {
	ItemID    string
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
	Supplier  *string
}

// CreateInput datos para crear una compra en estado inicial.
type CreateInput struct {
	UnitID   string
	Supplier string
	Notes    string
	UserID   string
	Items    []CreateItemInput
}

// Create crea la compra en estado pedido-realizado con sus líneas.
func (uc *UseCase) Create(in CreateInput) (*entity.Purchase, error) {
	if in.UnitID == "" || len(in.Items) == 0 {
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
	p := &entity.Purchase{
		ID:        uuid.New().String(),
		UnitID:    in.UnitID,
		Supplier:  in.Supplier,
		Status:    entity.PurchaseStatusPedidoRealizado,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: in.UserID,
	}
	for _, li := range in.Items {
		if li.ItemID == "" || !li.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(li.ItemID)
		if err != nil || item == nil {
			return nil, domain.ErrNotFound
		}
		if li.UnitPrice != nil && li.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		p.Items = append(p.Items, &entity.PurchaseItem{
			ID:         uuid.New().String(),
			PurchaseID: p.ID,
			ItemID:     li.ItemID,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice,
			Supplier:   li.Supplier,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	p.RecomputeTotal()
	if err := uc.purchaseRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID obtiene la compra con sus líneas.
func (uc *UseCase) GetByID(id string) (*entity.Purchase, error) {
	p, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ListByUnit lista compras de una unidad, opcionalmente filtradas por estado.
func (uc *UseCase) ListByUnit(unitID, status string, limit, offset int) ([]*entity.Purchase, error) {
	return uc.purchaseRepo.ListByUnit(unitID, status, limit, offset)
}

// ChangeStatus avanza el workflow de la compra. El estado finalizado no se
// alcanza por aquí: solo Finalize puede entrar al terminal, porque arrastra
// los efectos de ledger.
func (uc *UseCase) ChangeStatus(ctx context.Context, id, newStatus, userID string) error {
	if newStatus == entity.PurchaseStatusFinalizado {
		return &domain.TransitionError{Entity: "purchase", From: "", To: newStatus}
	}
	return uc.txRunner.RunFinalize(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		_ repository.StockRepository,
		_ repository.StockMovementRepository,
		_ repository.BudgetRepository,
		_ repository.FinancialTransactionRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		p, err := purchaseRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if err := workflow.CanPurchaseTransition(p.Status, newStatus); err != nil {
			return err
		}
		prev := p.Status
		p.Status = newStatus
		p.UpdatedAt = time.Now()
		if err := purchaseRepo.Update(p); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			UserID:     userID,
			UnitID:     p.UnitID,
			Action:     "purchase.status",
			EntityType: "purchase",
			EntityID:   p.ID,
			Detail:     fmt.Sprintf("%s -> %s", prev, newStatus),
			CreatedAt:  time.Now(),
		})
	})
}

// SetItemPrice fija precio y proveedor de una línea manualmente (compras sin
// cotización). Rechazado si la compra ya está finalizada.
func (uc *UseCase) SetItemPrice(ctx context.Context, purchaseID, purchaseItemID string, price decimal.Decimal, supplier string) error {
	if !price.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunFinalize(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		_ repository.StockRepository,
		_ repository.StockMovementRepository,
		_ repository.BudgetRepository,
		_ repository.FinancialTransactionRepository,
		_ repository.AuditLogRepository,
	) error {
		p, err := purchaseRepo.GetByIDForUpdate(purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.IsFinalized() {
			return &domain.TransitionError{Entity: "purchase", From: p.Status, To: p.Status}
		}
		var target *entity.PurchaseItem
		for _, it := range p.Items {
			if it.ID == purchaseItemID {
				target = it
				break
			}
		}
		if target == nil {
			return domain.ErrNotFound
		}
		target.UnitPrice = &price
		target.Supplier = &supplier
		target.UpdatedAt = time.Now()
		if err := purchaseRepo.UpdateItem(target); err != nil {
			return err
		}
		p.RecomputeTotal()
		p.UpdatedAt = time.Now()
		return purchaseRepo.Update(p)
	})
}

// Finalize lleva la compra al estado terminal: exige precio unitario > 0 en
// todas las líneas, debita el presupuesto de la unidad por el total y acredita
// el stock de cada ítem, como una sola transacción. Re-finalizar se rechaza
// sin mutación.
func (uc *UseCase) Finalize(ctx context.Context, id, userID string) (*entity.Purchase, error) {
	now := time.Now()
	var finalized *entity.Purchase
	err := uc.txRunner.RunFinalize(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		budgetRepo repository.BudgetRepository,
		finRepo repository.FinancialTransactionRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		p, err := purchaseRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.IsFinalized() {
			return &domain.TransitionError{Entity: "purchase", From: p.Status, To: entity.PurchaseStatusFinalizado}
		}
		if err := workflow.CanPurchaseTransition(p.Status, entity.PurchaseStatusFinalizado); err != nil {
			return err
		}
		if len(p.Items) == 0 {
			return fmt.Errorf("%w: la compra no tiene líneas", domain.ErrInvalidInput)
		}
		for _, it := range p.Items {
			if it.UnitPrice == nil || !it.UnitPrice.GreaterThan(decimal.Zero) {
				return fmt.Errorf("%w: la línea %s no tiene precio unitario", domain.ErrInvalidInput, it.ItemID)
			}
		}
		p.RecomputeTotal()

		// Débito presupuestal por el total: verifica y aplica bajo bloqueo de fila.
		budget, err := ledger.DebitBudget(budgetRepo, p.UnitID, now, p.TotalValue, now)
		if err != nil {
			return err
		}

		// Crédito de stock por cada línea, con su movimiento.
		txID := uuid.New().String()
		for _, it := range p.Items {
			if _, err := ledger.CreditStock(stockRepo, it.ItemID, p.UnitID, it.Quantity, now); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				TransactionID: txID,
				ItemID:        it.ItemID,
				ToUnitID:      p.UnitID,
				Quantity:      it.Quantity,
				Reason:        entity.MovementReasonCompra,
				Reference:     p.ID,
				CreatedAt:     now,
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
		}

		if err := finRepo.Create(&entity.FinancialTransaction{
			ID:        uuid.New().String(),
			UnitID:    p.UnitID,
			BudgetID:  budget.ID,
			Type:      entity.FinancialTypeCompra,
			Amount:    p.TotalValue.Neg(),
			Reference: p.ID,
			CreatedAt: now,
			CreatedBy: userID,
		}); err != nil {
			return err
		}

		p.Status = entity.PurchaseStatusFinalizado
		p.FinalizedAt = &now
		p.UpdatedAt = now
		if err := purchaseRepo.Update(p); err != nil {
			return err
		}
		finalized = p
		return auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			UserID:     userID,
			UnitID:     p.UnitID,
			Action:     "purchase.finalize",
			EntityType: "purchase",
			EntityID:   p.ID,
			Detail:     fmt.Sprintf("total=%s", p.TotalValue),
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return finalized, nil
}
