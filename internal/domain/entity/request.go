package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del workflow de Solicitud (pedido interno de una unidad no-CD a un CD).
const (
	RequestStatusSolicitado        = "solicitado"
	RequestStatusEnAnalisis        = "en-analisis"
	RequestStatusAprobado          = "aprobado"
	RequestStatusAprobadoPendiente = "aprobado-pendiente-compra"
	RequestStatusRechazado         = "rechazado"
	RequestStatusEnPreparacion     = "en-preparacion"
	RequestStatusEnviado           = "enviado"
	RequestStatusRecibido          = "recibido"
	RequestStatusAprobadoUnidad    = "aprobado-unidad"
	RequestStatusError             = "error"
	RequestStatusCancelado         = "cancelado"
)

// Request solicitud interna de abastecimiento: una unidad pide ítems a un CD.
// TotalEstimatedCost se fija al aprobar y se preserva sin recalcular después del
// envío, aunque los precios de stock cambien.
type Request struct {
	ID                 string
	RequestingUnitID   string
	CDUnitID           string
	Status             string
	TotalEstimatedCost decimal.Decimal
	Notes              string
	Items              []*RequestItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
	CreatedBy          string
}

// RequestItem línea de solicitud con cantidades pedida, aprobada y enviada.
type RequestItem struct {
	ID                string
	RequestID         string
	ItemID            string
	QuantityRequested decimal.Decimal
	QuantityApproved  *decimal.Decimal
	QuantitySent      decimal.Decimal
	EstimatedPrice    decimal.Decimal
}

// QuantityToSend devuelve la cantidad a despachar: la aprobada si fue fijada,
// si no la solicitada.
func (i *RequestItem) QuantityToSend() decimal.Decimal {
	if i.QuantityApproved != nil {
		return *i.QuantityApproved
	}
	return i.QuantityRequested
}
