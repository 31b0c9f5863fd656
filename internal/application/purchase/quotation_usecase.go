package purchase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// QuotationUseCase administra cotizaciones y la selección de respuestas de
// proveedores. Seleccionar propaga precio y proveedor a la línea de compra y
// recalcula el total; no toca presupuesto ni stock (eso ocurre al finalizar).
type QuotationUseCase struct {
	txRunner      TxRunner
	quotationRepo repository.QuotationRepository
	purchaseRepo  repository.PurchaseRepository
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(txRunner TxRunner, quotationRepo repository.QuotationRepository, purchaseRepo repository.PurchaseRepository) *QuotationUseCase {
	return &QuotationUseCase{txRunner: txRunner, quotationRepo: quotationRepo, purchaseRepo: purchaseRepo}
}

// Create abre una cotización para una compra no finalizada.
func (uc *QuotationUseCase) Create(purchaseID, notes, userID string) (*entity.Quotation, error) {
	p, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if p.IsFinalized() {
		return nil, &domain.TransitionError{Entity: "purchase", From: p.Status, To: p.Status}
	}
	now := time.Now()
	q := &entity.Quotation{
		ID:         uuid.New().String(),
		PurchaseID: purchaseID,
		Status:     entity.QuotationStatusAbierta,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
		CreatedBy:  userID,
	}
	if err := uc.quotationRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

// AddResponse registra la respuesta de un proveedor para un ítem de la compra vinculada.
func (uc *QuotationUseCase) AddResponse(quotationID, itemID, supplier string, unitPrice decimal.Decimal, deliveryDays int) (*entity.QuotationResponse, error) {
	if supplier == "" || !unitPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	q, err := uc.quotationRepo.GetByID(quotationID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.purchaseRepo.GetByID(q.PurchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	found := false
	for _, it := range p.Items {
		if it.ItemID == itemID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	resp := &entity.QuotationResponse{
		ID:           uuid.New().String(),
		QuotationID:  quotationID,
		ItemID:       itemID,
		Supplier:     supplier,
		UnitPrice:    unitPrice,
		DeliveryDays: deliveryDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.quotationRepo.CreateResponse(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListResponses lista las respuestas de una cotización.
func (uc *QuotationUseCase) ListResponses(quotationID string) ([]*entity.QuotationResponse, error) {
	return uc.quotationRepo.ListResponses(quotationID)
}

// Select marca la respuesta como seleccionada para su (cotización, ítem):
// desmarca cualquier selección previa del par, escribe precio y proveedor en la
// línea de compra, recalcula el total y agrega el histórico de precio. Todo en
// una transacción; rechazado si la compra ya está finalizada o si la respuesta
// ya estaba seleccionada (ErrDuplicateSelection).
func (uc *QuotationUseCase) Select(ctx context.Context, responseID string) error {
	now := time.Now()
	return uc.txRunner.RunSelection(ctx, func(
		quotationRepo repository.QuotationRepository,
		purchaseRepo repository.PurchaseRepository,
		priceRepo repository.PriceHistoryRepository,
	) error {
		resp, err := quotationRepo.GetResponse(responseID)
		if err != nil {
			return err
		}
		if resp == nil {
			return domain.ErrNotFound
		}
		q, err := quotationRepo.GetByID(resp.QuotationID)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		p, err := purchaseRepo.GetByIDForUpdate(q.PurchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.IsFinalized() {
			return &domain.TransitionError{Entity: "purchase", From: p.Status, To: p.Status}
		}
		if resp.IsSelected {
			return domain.ErrDuplicateSelection
		}

		// A lo sumo una respuesta seleccionada por (cotización, ítem).
		if err := quotationRepo.ClearSelection(resp.QuotationID, resp.ItemID); err != nil {
			return err
		}
		resp.IsSelected = true
		resp.UpdatedAt = now
		if err := quotationRepo.UpdateResponse(resp); err != nil {
			return err
		}

		var target *entity.PurchaseItem
		for _, it := range p.Items {
			if it.ItemID == resp.ItemID {
				target = it
				break
			}
		}
		if target == nil {
			return domain.ErrNotFound
		}
		price := resp.UnitPrice
		supplier := resp.Supplier
		target.UnitPrice = &price
		target.Supplier = &supplier
		target.UpdatedAt = now
		if err := purchaseRepo.UpdateItem(target); err != nil {
			return err
		}
		p.RecomputeTotal()
		p.UpdatedAt = now
		if err := purchaseRepo.Update(p); err != nil {
			return err
		}

		return priceRepo.Create(&entity.PriceHistory{
			ID:          uuid.New().String(),
			ItemID:      resp.ItemID,
			Supplier:    resp.Supplier,
			UnitPrice:   resp.UnitPrice,
			QuotationID: resp.QuotationID,
			PurchaseID:  p.ID,
			CreatedAt:   now,
		})
	})
}

// Deselect revierte la selección: anula precio y proveedor de la línea de
// compra y recalcula el total.
func (uc *QuotationUseCase) Deselect(ctx context.Context, responseID string) error {
	now := time.Now()
	return uc.txRunner.RunSelection(ctx, func(
		quotationRepo repository.QuotationRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.PriceHistoryRepository,
	) error {
		resp, err := quotationRepo.GetResponse(responseID)
		if err != nil {
			return err
		}
		if resp == nil {
			return domain.ErrNotFound
		}
		if !resp.IsSelected {
			return domain.ErrConflict
		}
		q, err := quotationRepo.GetByID(resp.QuotationID)
		if err != nil {
			return err
		}
		if q == nil {
			return domain.ErrNotFound
		}
		p, err := purchaseRepo.GetByIDForUpdate(q.PurchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.IsFinalized() {
			return &domain.TransitionError{Entity: "purchase", From: p.Status, To: p.Status}
		}

		resp.IsSelected = false
		resp.UpdatedAt = now
		if err := quotationRepo.UpdateResponse(resp); err != nil {
			return err
		}
		for _, it := range p.Items {
			if it.ItemID == resp.ItemID {
				it.UnitPrice = nil
				it.Supplier = nil
				it.UpdatedAt = now
				if err := purchaseRepo.UpdateItem(it); err != nil {
					return err
				}
				break
			}
		}
		p.RecomputeTotal()
		p.UpdatedAt = now
		return purchaseRepo.Update(p)
	})
}
