package purchase

import (
	"context"

	"github.com/jcsalazar/abasto-api/internal/domain"
	"github.com/jcsalazar/abasto-api/internal/domain/repository"
)

// PDFUseCase genera la orden de compra en PDF resolviendo los datos del catálogo.
type PDFUseCase struct {
	purchaseRepo repository.PurchaseRepository
	unitRepo     repository.UnitRepository
	itemRepo     repository.ItemRepository
	generator    OrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(purchaseRepo repository.PurchaseRepository, unitRepo repository.UnitRepository, itemRepo repository.ItemRepository, generator OrderPDFGenerator) *PDFUseCase {
	return &PDFUseCase{purchaseRepo: purchaseRepo, unitRepo: unitRepo, itemRepo: itemRepo, generator: generator}
}

// GenerateOrderPDF genera el PDF de la orden de compra.
func (uc *PDFUseCase) GenerateOrderPDF(ctx context.Context, purchaseID string) ([]byte, error) {
	p, err := uc.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	unit, err := uc.unitRepo.GetByID(p.UnitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	items := make([]ItemForPDF, 0, len(p.Items))
	for _, it := range p.Items {
		catalog, err := uc.itemRepo.GetByID(it.ItemID)
		if err != nil {
			return nil, err
		}
		row := ItemForPDF{Item: it}
		if catalog != nil {
			row.Code = catalog.Code
			row.Name = catalog.Name
			row.UnitOfMeasure = catalog.UnitOfMeasure
		}
		items = append(items, row)
	}
	return uc.generator.GenerateOrderPDF(ctx, p, unit, items)
}
