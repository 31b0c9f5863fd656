package repository

import "github.com/jcsalazar/abasto-api/internal/domain/entity"

// QuotationRepository puerto de persistencia para cotizaciones y respuestas de proveedores.
type QuotationRepository interface {
	Create(quotation *entity.Quotation) error
	GetByID(id string) (*entity.Quotation, error)
	ListByPurchase(purchaseID string) ([]*entity.Quotation, error)
	Update(quotation *entity.Quotation) error

	CreateResponse(response *entity.QuotationResponse) error
	GetResponse(id string) (*entity.QuotationResponse, error)
	ListResponses(quotationID string) ([]*entity.QuotationResponse, error)
	UpdateResponse(response *entity.QuotationResponse) error
	// ClearSelection desmarca cualquier respuesta seleccionada del par (cotización, ítem).
	ClearSelection(quotationID, itemID string) error
}
