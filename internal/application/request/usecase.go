package request

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

// UseCase casos de uso de solicitudes internas de abastecimiento: una unidad
// pide ítems a un centro de distribución; el envío debita el stock del CD y
// crea registros en tránsito, todo bajo una transacción.
type UseCase struct {
	txRunner    TxRunner
	requestRepo repository.RequestRepository
	unitRepo    repository.UnitRepository
	itemRepo    repository.ItemRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, requestRepo repository.RequestRepository, unitRepo repository.UnitRepository, itemRepo repository.ItemRepository) *UseCase {
	return &UseCase{txRunner: txRunner, requestRepo: requestRepo, unitRepo: unitRepo, itemRepo: itemRepo}
}

// CreateItemInput línea de la solicitud a crear.
type CreateItemInput struct {
	ItemID            string
	QuantityRequested decimal.Decimal
	EstimatedPrice    decimal.Decimal
}

// CreateInput datos para crear una solicitud.
type CreateInput struct {
	RequestingUnitID string
	CDUnitID         string
	Notes            string
	UserID           string
	Items            []CreateItemInput
}

// Create crea la solicitud en estado solicitado. El destino debe ser un CD y
// distinto de la unidad solicitante.
func (uc *UseCase) Create(in CreateInput) (*entity.Request, error) {
	if in.RequestingUnitID == "" || in.CDUnitID == "" || in.RequestingUnitID == in.CDUnitID || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	cd, err := uc.unitRepo.GetByID(in.CDUnitID)
	if err != nil {
		return nil, err
	}
	if cd == nil {
		return nil, domain.ErrNotFound
	}
	if !cd.IsDistributionCenter {
		return nil, fmt.Errorf("%w: la unidad destino no es centro de distribución", domain.ErrInvalidInput)
	}
	requesting, err := uc.unitRepo.GetByID(in.RequestingUnitID)
	if err != nil {
		return nil, err
	}
	if requesting == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	r := &entity.Request{
		ID:               uuid.New().String(),
		RequestingUnitID: in.RequestingUnitID,
		CDUnitID:         in.CDUnitID,
		Status:           entity.RequestStatusSolicitado,
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
		CreatedBy:        in.UserID,
	}
	total := decimal.Zero
	for _, li := range in.Items {
		if li.ItemID == "" || !li.QuantityRequested.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(li.ItemID)
		if err != nil || item == nil {
			return nil, domain.ErrNotFound
		}
		r.Items = append(r.Items, &entity.RequestItem{
			ID:                uuid.New().String(),
			RequestID:         r.ID,
			ItemID:            li.ItemID,
			QuantityRequested: li.QuantityRequested,
			EstimatedPrice:    li.EstimatedPrice,
		})
		total = total.Add(li.QuantityRequested.Mul(li.EstimatedPrice))
	}
	r.TotalEstimatedCost = total
	if err := uc.requestRepo.Create(r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetByID obtiene la solicitud con sus líneas.
func (uc *UseCase) GetByID(id string) (*entity.Request, error) {
	r, err := uc.requestRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// ListByUnit lista solicitudes hechas por una unidad.
func (uc *UseCase) ListByUnit(unitID, status string, limit, offset int) ([]*entity.Request, error) {
	return uc.requestRepo.ListByUnit(unitID, status, limit, offset)
}

// ListByCD lista solicitudes dirigidas a un CD.
func (uc *UseCase) ListByCD(cdUnitID, status string, limit, offset int) ([]*entity.Request, error) {
	return uc.requestRepo.ListByCD(cdUnitID, status, limit, offset)
}

// ChangeStatus avanza el workflow. Enviado y recibido no se alcanzan por aquí:
// Send y Receive son las únicas vías, porque arrastran efectos de ledger.
func (uc *UseCase) ChangeStatus(ctx context.Context, id, newStatus, userID string) error {
	if newStatus == entity.RequestStatusEnviado || newStatus == entity.RequestStatusRecibido {
		return &domain.TransitionError{Entity: "request", From: "", To: newStatus}
	}
	return uc.txRunner.RunSend(ctx, func(
		requestRepo repository.RequestRepository,
		_ repository.StockRepository,
		_ repository.StockMovementRepository,
		_ repository.InTransitRepository,
		_ repository.PurchaseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		r, err := requestRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if err := workflow.CanRequestTransition(r.Status, newStatus); err != nil {
			return err
		}
		prev := r.Status
		r.Status = newStatus
		r.UpdatedAt = time.Now()
		if err := requestRepo.Update(r); err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			UserID:     userID,
			UnitID:     r.CDUnitID,
			Action:     "request.status",
			EntityType: "request",
			EntityID:   r.ID,
			Detail:     fmt.Sprintf("%s -> %s", prev, newStatus),
			CreatedAt:  time.Now(),
		})
	})
}

// Approve aprueba la solicitud fijando cantidades aprobadas por ítem (las no
// incluidas conservan la solicitada) y congela TotalEstimatedCost: después del
// envío ese total se preserva sin recalcular, aunque los precios cambien.
func (uc *UseCase) Approve(ctx context.Context, id string, approved map[string]decimal.Decimal, userID string) (*entity.Request, error) {
	var result *entity.Request
	err := uc.txRunner.RunSend(ctx, func(
		requestRepo repository.RequestRepository,
		_ repository.StockRepository,
		_ repository.StockMovementRepository,
		_ repository.InTransitRepository,
		_ repository.PurchaseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		r, err := requestRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if err := workflow.CanRequestTransition(r.Status, entity.RequestStatusAprobado); err != nil {
			return err
		}
		now := time.Now()
		total := decimal.Zero
		for _, it := range r.Items {
			if qty, ok := approved[it.ItemID]; ok {
				if qty.LessThan(decimal.Zero) || qty.GreaterThan(it.QuantityRequested) {
					return fmt.Errorf("%w: cantidad aprobada inválida para el ítem %s", domain.ErrInvalidInput, it.ItemID)
				}
				q := qty
				it.QuantityApproved = &q
			}
			if err := requestRepo.UpdateItem(it); err != nil {
				return err
			}
			total = total.Add(it.QuantityToSend().Mul(it.EstimatedPrice))
		}
		r.Status = entity.RequestStatusAprobado
		r.TotalEstimatedCost = total
		r.UpdatedAt = now
		if err := requestRepo.Update(r); err != nil {
			return err
		}
		result = r
		return auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			UserID:     userID,
			UnitID:     r.CDUnitID,
			Action:     "request.approve",
			EntityType: "request",
			EntityID:   r.ID,
			Detail:     fmt.Sprintf("total-estimado=%s", total),
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SendInput parámetros del envío.
type SendInput struct {
	RequestID string
	UserID    string
	// CreateCorrectivePurchase: ante faltante de stock en el CD, crear una
	// compra correctiva por exactamente lo faltante por ítem y dejar la
	// solicitud en aprobado-pendiente-compra, en lugar de abortar.
	CreateCorrectivePurchase bool
}

// SendResult resultado del envío.
type SendResult struct {
	Request            *entity.Request
	CorrectivePurchase *entity.Purchase // no nil solo en el camino de compra correctiva
}

// Send despacha la solicitud. Verifica el stock del CD para cada línea bajo
// bloqueo de fila antes de mutar nada. Con faltante: o retorna el detalle por
// ítem sin mutación, o (si el caller lo pidió) crea la compra correctiva. Sin
// faltante: debita el CD, crea los registros en tránsito y los movimientos, y
// deja la solicitud en enviado con TotalEstimatedCost intacto.
func (uc *UseCase) Send(ctx context.Context, in SendInput) (*SendResult, error) {
	now := time.Now()
	result := &SendResult{}
	err := uc.txRunner.RunSend(ctx, func(
		requestRepo repository.RequestRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
		transitRepo repository.InTransitRepository,
		purchaseRepo repository.PurchaseRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		r, err := requestRepo.GetByIDForUpdate(in.RequestID)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if err := workflow.CanSendRequest(r.Status); err != nil {
			return err
		}
		if len(r.Items) == 0 {
			return fmt.Errorf("%w: la solicitud no tiene líneas", domain.ErrInvalidInput)
		}

		// Primera pasada: bloquear las filas de stock del CD y calcular faltantes
		// completos antes de cualquier mutación.
		var shortfalls []domain.RequestShortfall
		for _, it := range r.Items {
			qty := it.QuantityToSend()
			stock, err := stockRepo.GetForUpdate(it.ItemID, r.CDUnitID)
			if err != nil {
				return err
			}
			if stock.Quantity.LessThan(qty) {
				shortfalls = append(shortfalls, domain.RequestShortfall{
					ItemID:    it.ItemID,
					Requested: qty,
					Available: stock.Quantity,
					Missing:   qty.Sub(stock.Quantity),
				})
			}
		}

		if len(shortfalls) > 0 {
			if !in.CreateCorrectivePurchase {
				// Rollback de la tx: ni stock ni tránsito quedan tocados.
				return &domain.RequestShortfallError{
					RequestID:  r.ID,
					CDUnitID:   r.CDUnitID,
					Shortfalls: shortfalls,
				}
			}
			// Compra correctiva por exactamente lo faltante de cada ítem.
			p := &entity.Purchase{
				ID:        uuid.New().String(),
				UnitID:    r.CDUnitID,
				Status:    entity.PurchaseStatusPedidoRealizado,
				Notes:     fmt.Sprintf("compra correctiva para la solicitud %s", r.ID),
				RequestID: r.ID,
				CreatedAt: now,
				UpdatedAt: now,
				CreatedBy: in.UserID,
			}
			for _, s := range shortfalls {
				p.Items = append(p.Items, &entity.PurchaseItem{
					ID:         uuid.New().String(),
					PurchaseID: p.ID,
					ItemID:     s.ItemID,
					Quantity:   s.Missing,
					CreatedAt:  now,
					UpdatedAt:  now,
				})
			}
			if err := purchaseRepo.Create(p); err != nil {
				return err
			}
			if err := workflow.CanRequestTransition(r.Status, entity.RequestStatusAprobadoPendiente); err != nil {
				return err
			}
			r.Status = entity.RequestStatusAprobadoPendiente
			r.UpdatedAt = now
			if err := requestRepo.Update(r); err != nil {
				return err
			}
			result.Request = r
			result.CorrectivePurchase = p
			return auditRepo.Create(&entity.AuditLog{
				ID:         uuid.New().String(),
				UserID:     in.UserID,
				UnitID:     r.CDUnitID,
				Action:     "request.corrective-purchase",
				EntityType: "request",
				EntityID:   r.ID,
				Detail:     fmt.Sprintf("compra=%s items=%d", p.ID, len(p.Items)),
				CreatedAt:  now,
			})
		}

		// Sin faltantes: débito del CD + registro en tránsito por cada línea.
		txID := uuid.New().String()
		for _, it := range r.Items {
			qty := it.QuantityToSend()
			if _, err := ledger.DebitStock(stockRepo, it.ItemID, r.CDUnitID, qty, now); err != nil {
				return err
			}
			if err := transitRepo.Create(&entity.InTransit{
				ID:         uuid.New().String(),
				RequestID:  r.ID,
				ItemID:     it.ItemID,
				FromUnitID: r.CDUnitID,
				ToUnitID:   r.RequestingUnitID,
				Quantity:   qty,
				Status:     entity.InTransitStatusEnRuta,
				CreatedAt:  now,
			}); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				TransactionID: txID,
				ItemID:        it.ItemID,
				FromUnitID:    r.CDUnitID,
				Quantity:      qty,
				Reason:        entity.MovementReasonEnvioSolicitud,
				Reference:     r.ID,
				CreatedAt:     now,
				CreatedBy:     in.UserID,
			}); err != nil {
				return err
			}
			it.QuantitySent = qty
			if err := requestRepo.UpdateItem(it); err != nil {
				return err
			}
		}
		// TotalEstimatedCost se preserva sin recalcular.
		r.Status = entity.RequestStatusEnviado
		r.UpdatedAt = now
		if err := requestRepo.Update(r); err != nil {
			return err
		}
		result.Request = r
		return auditRepo.Create(&entity.AuditLog{
			ID:         uuid.New().String(),
			UserID:     in.UserID,
			UnitID:     r.CDUnitID,
			Action:     "request.send",
			EntityType: "request",
			EntityID:   r.ID,
			Detail:     fmt.Sprintf("items=%d", len(r.Items)),
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Receive registra la llegada a la unidad destino: acredita el stock de la
// unidad por cada registro en tránsito y los marca entregados, en una transacción.
func (uc *UseCase) Receive(ctx context.Context, id, userID string) (*entity.Request, error) {
	now := time.Now()
	var result *entity.Request
	err := uc.txRunner.RunReceive(ctx, func(
		requestRepo repository.RequestRepository,
		transitRepo repository.InTransitRepository,
		stockRepo repository.StockRepository,
		movRepo repository.StockMovementRepository,
	) error {
		r, err := requestRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if err := workflow.CanRequestTransition(r.Status, entity.RequestStatusRecibido); err != nil {
			return err
		}
		transits, err := transitRepo.ListByRequest(r.ID)
		if err != nil {
			return err
		}
		txID := uuid.New().String()
		for _, t := range transits {
			if t.Status != entity.InTransitStatusEnRuta {
				continue
			}
			if _, err := ledger.CreditStock(stockRepo, t.ItemID, t.ToUnitID, t.Quantity, now); err != nil {
				return err
			}
			if err := transitRepo.MarkDelivered(t.ID, now); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:            uuid.New().String(),
				TransactionID: txID,
				ItemID:        t.ItemID,
				ToUnitID:      t.ToUnitID,
				Quantity:      t.Quantity,
				Reason:        entity.MovementReasonRecepcion,
				Reference:     r.ID,
				CreatedAt:     now,
				CreatedBy:     userID,
			}); err != nil {
				return err
			}
		}
		r.Status = entity.RequestStatusRecibido
		r.UpdatedAt = now
		if err := requestRepo.Update(r); err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
