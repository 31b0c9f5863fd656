package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/application/purchase"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
)

// QuotationHandler maneja cotizaciones y respuestas de proveedores.
type QuotationHandler struct {
	uc *purchase.QuotationUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *purchase.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cotización para una compra
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuotationRequest  true  "purchase_id, notes"
// @Success      201   {object}  dto.QuotationDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	quo, err := h.uc.Create(in.PurchaseID, in.Notes, GetUserID(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toQuotationDTO(quo))
}

// AddResponse godoc
// @Summary      Registrar respuesta de proveedor
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID de la cotización"
// @Param        body  body  dto.AddQuotationResponseRequest  true  "item_id, supplier, unit_price, delivery_days"
// @Success      201   {object}  dto.QuotationResponseDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/responses [post]
func (h *QuotationHandler) AddResponse(c *fiber.Ctx) error {
	var in dto.AddQuotationResponseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	resp, err := h.uc.AddResponse(c.Params("id"), in.ItemID, in.Supplier, in.UnitPrice, in.DeliveryDays)
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toQuotationResponseDTO(resp))
}

// ListResponses godoc
// @Summary      Respuestas de una cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {array}   dto.QuotationResponseDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/responses [get]
func (h *QuotationHandler) ListResponses(c *fiber.Ctx) error {
	list, err := h.uc.ListResponses(c.Params("id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.QuotationResponseDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toQuotationResponseDTO(r))
	}
	return c.JSON(out)
}

// Select godoc
// @Summary      Seleccionar respuesta de proveedor
// @Description  Reemplaza cualquier selección previa del par (cotización, ítem) y propaga precio y proveedor a la línea de compra.
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        response_id  path  string  true  "ID de la respuesta"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotations/responses/{response_id}/select [post]
func (h *QuotationHandler) Select(c *fiber.Ctx) error {
	if err := h.uc.Select(c.Context(), c.Params("response_id")); err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "respuesta seleccionada"})
}

// Deselect godoc
// @Summary      Quitar la selección de una respuesta
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        response_id  path  string  true  "ID de la respuesta"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/quotations/responses/{response_id}/deselect [post]
func (h *QuotationHandler) Deselect(c *fiber.Ctx) error {
	if err := h.uc.Deselect(c.Context(), c.Params("response_id")); err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "selección retirada"})
}

func toQuotationDTO(q *entity.Quotation) dto.QuotationDTO {
	return dto.QuotationDTO{
		ID:         q.ID,
		PurchaseID: q.PurchaseID,
		Status:     q.Status,
		Notes:      q.Notes,
		CreatedAt:  q.CreatedAt,
	}
}

func toQuotationResponseDTO(r *entity.QuotationResponse) dto.QuotationResponseDTO {
	return dto.QuotationResponseDTO{
		ID:           r.ID,
		QuotationID:  r.QuotationID,
		ItemID:       r.ItemID,
		Supplier:     r.Supplier,
		UnitPrice:    r.UnitPrice,
		DeliveryDays: r.DeliveryDays,
		IsSelected:   r.IsSelected,
	}
}
