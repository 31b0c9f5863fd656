package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/application/purchase"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
)

// PurchaseHandler maneja el ciclo de vida de compras.
type PurchaseHandler struct {
	uc    *purchase.UseCase
	pdfUC *purchase.PDFUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchase.UseCase, pdfUC *purchase.PDFUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, pdfUC: pdfUC}
}

// Create godoc
// @Summary      Crear compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "unit_id, supplier, items"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]purchase.CreateItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, purchase.CreateItemInput{ItemID: it.ItemID, Quantity: it.Quantity})
	}
	p, err := h.uc.Create(purchase.CreateInput{
		UnitID:   in.UnitID,
		Supplier: in.Supplier,
		Notes:    in.Notes,
		UserID:   GetUserID(c),
		Items:    items,
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPurchaseResponse(p))
}

// GetByID godoc
// @Summary      Obtener compra por ID
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(toPurchaseResponse(p))
}

// ListByUnit godoc
// @Summary      Listar compras de una unidad
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID de la unidad"
// @Param        status   query  string  false  "filtrar por estado"
// @Param        limit    query  int     false  "máximo de resultados"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /api/purchases/unit/{unit_id} [get]
func (h *PurchaseHandler) ListByUnit(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.uc.ListByUnit(c.Params("unit_id"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p))
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de una compra
// @Description  Avance unidireccional del workflow; "finalizado" solo vía el endpoint de finalización.
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID de la compra"
// @Param        body  body  dto.ChangePurchaseStatusRequest  true  "status destino"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/status [put]
func (h *PurchaseHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangePurchaseStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ChangeStatus(c.Context(), c.Params("id"), in.Status, GetUserID(c)); err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}

// SetItemPrice godoc
// @Summary      Fijar precio manual de una línea
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string                   true  "ID de la compra"
// @Param        item_id  path  string                   true  "ID de la línea"
// @Param        body     body  dto.SetItemPriceRequest  true  "unit_price, supplier"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/items/{item_id}/price [put]
func (h *PurchaseHandler) SetItemPrice(c *fiber.Ctx) error {
	var in dto.SetItemPriceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetItemPrice(c.Context(), c.Params("id"), c.Params("item_id"), in.UnitPrice, in.Supplier); err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "precio actualizado"})
}

// Finalize godoc
// @Summary      Finalizar compra
// @Description  Debita el presupuesto por el total y acredita el stock de cada línea, como unidad atómica. Estado terminal.
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/finalize [post]
func (h *PurchaseHandler) Finalize(c *fiber.Ctx) error {
	p, err := h.uc.Finalize(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(toPurchaseResponse(p))
}

// GetOrderPDF godoc
// @Summary      Orden de compra en PDF
// @Tags         purchases
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/pdf [get]
func (h *PurchaseHandler) GetOrderPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.pdfUC.GenerateOrderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orden-compra.pdf"`)
	return c.Send(pdfBytes)
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	items := make([]dto.PurchaseItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, dto.PurchaseItemResponse{
			ID:        it.ID,
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Supplier:  it.Supplier,
			Total:     it.Total(),
		})
	}
	return dto.PurchaseResponse{
		ID:          p.ID,
		UnitID:      p.UnitID,
		Supplier:    p.Supplier,
		Status:      p.Status,
		TotalValue:  p.TotalValue,
		Notes:       p.Notes,
		RequestID:   p.RequestID,
		Items:       items,
		CreatedAt:   p.CreatedAt,
		FinalizedAt: p.FinalizedAt,
	}
}
