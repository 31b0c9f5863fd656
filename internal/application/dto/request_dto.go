package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRequestRequest datos para crear una solicitud interna a un CD.
type CreateRequestRequest struct {
	RequestingUnitID string                     `json:"requesting_unit_id"`
	CDUnitID         string                     `json:"cd_unit_id"`
	Notes            string                     `json:"notes,omitempty"`
	Items            []CreateRequestItemRequest `json:"items"`
}

// CreateRequestItemRequest línea de la solicitud a crear.
type CreateRequestItemRequest struct {
	ItemID         string          `json:"item_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	EstimatedPrice decimal.Decimal `json:"estimated_price"`
}

// ChangeRequestStatusRequest transición de estado solicitada.
type ChangeRequestStatusRequest struct {
	Status string `json:"status"`
}

// ApproveRequestRequest aprobación con cantidades ajustadas opcionales.
type ApproveRequestRequest struct {
	Items []ApproveRequestItem `json:"items,omitempty"`
}

// ApproveRequestItem cantidad aprobada para una línea.
type ApproveRequestItem struct {
	ItemID           string          `json:"item_id"`
	QuantityApproved decimal.Decimal `json:"quantity_approved"`
}

// SendRequestRequest opciones del envío desde el CD.
type SendRequestRequest struct {
	CreateCorrectivePurchase bool `json:"create_corrective_purchase"`
}

// RequestResponse representación de una solicitud con sus líneas.
type RequestResponse struct {
	ID                 string                `json:"id"`
	RequestingUnitID   string                `json:"requesting_unit_id"`
	CDUnitID           string                `json:"cd_unit_id"`
	Status             string                `json:"status"`
	TotalEstimatedCost decimal.Decimal       `json:"total_estimated_cost"`
	Notes              string                `json:"notes,omitempty"`
	Items              []RequestItemResponse `json:"items"`
	CreatedAt          time.Time             `json:"created_at"`
}

// RequestItemResponse línea de solicitud.
type RequestItemResponse struct {
	ID                string           `json:"id"`
	ItemID            string           `json:"item_id"`
	QuantityRequested decimal.Decimal  `json:"quantity_requested"`
	QuantityApproved  *decimal.Decimal `json:"quantity_approved,omitempty"`
	QuantitySent      decimal.Decimal  `json:"quantity_sent"`
	EstimatedPrice    decimal.Decimal  `json:"estimated_price"`
}

// ShortfallDetail faltante de stock de una línea al intentar enviar.
type ShortfallDetail struct {
	ItemID    string          `json:"item_id"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
	Missing   decimal.Decimal `json:"missing"`
}

// SendRequestResponse resultado del envío; la compra correctiva solo se
// incluye cuando hubo faltantes y se pidió crearla.
type SendRequestResponse struct {
	Request            RequestResponse   `json:"request"`
	CorrectivePurchase *PurchaseResponse `json:"corrective_purchase,omitempty"`
}
