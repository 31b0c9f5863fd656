package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcsalazar/abasto-api/internal/application/dto"
	"github.com/jcsalazar/abasto-api/internal/application/request"
	"github.com/jcsalazar/abasto-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RequestHandler maneja el ciclo de vida de solicitudes internas.
type RequestHandler struct {
	uc *request.UseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(uc *request.UseCase) *RequestHandler {
	return &RequestHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud interna
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRequestRequest  true  "requesting_unit_id, cd_unit_id, items"
// @Success      201   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]request.CreateItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, request.CreateItemInput{
			ItemID:            it.ItemID,
			QuantityRequested: it.Quantity,
			EstimatedPrice:    it.EstimatedPrice,
		})
	}
	req, err := h.uc.Create(request.CreateInput{
		RequestingUnitID: in.RequestingUnitID,
		CDUnitID:         in.CDUnitID,
		Notes:            in.Notes,
		UserID:           GetUserID(c),
		Items:            items,
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRequestResponse(req))
}

// GetByID godoc
// @Summary      Obtener solicitud por ID
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(toRequestResponse(req))
}

// ListByUnit godoc
// @Summary      Listar solicitudes de una unidad solicitante
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID de la unidad"
// @Param        status   query  string  false  "filtrar por estado"
// @Param        limit    query  int     false  "máximo de resultados"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.RequestResponse
// @Router       /api/requests/unit/{unit_id} [get]
func (h *RequestHandler) ListByUnit(c *fiber.Ctx) error {
	return h.list(c, h.uc.ListByUnit)
}

// ListByCD godoc
// @Summary      Listar solicitudes dirigidas a un CD
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        unit_id  path   string  true   "ID del CD"
// @Param        status   query  string  false  "filtrar por estado"
// @Param        limit    query  int     false  "máximo de resultados"
// @Param        offset   query  int     false  "desplazamiento"
// @Success      200  {array}  dto.RequestResponse
// @Router       /api/requests/cd/{unit_id} [get]
func (h *RequestHandler) ListByCD(c *fiber.Ctx) error {
	return h.list(c, h.uc.ListByCD)
}

func (h *RequestHandler) list(c *fiber.Ctx, fn func(string, string, int, int) ([]*entity.Request, error)) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := fn(c.Params("unit_id"), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return handleDomainError(c, err)
	}
	out := make([]dto.RequestResponse, 0, len(list))
	for _, req := range list {
		out = append(out, toRequestResponse(req))
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de una solicitud
// @Description  Transiciones administrativas; enviado y recibido solo vía sus endpoints dedicados.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la solicitud"
// @Param        body  body  dto.ChangeRequestStatusRequest  true  "status destino"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/status [put]
func (h *RequestHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeRequestStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ChangeStatus(c.Context(), c.Params("id"), in.Status, GetUserID(c)); err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}

// Approve godoc
// @Summary      Aprobar solicitud
// @Description  Fija cantidades aprobadas por línea (opcional) y congela el costo total estimado.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la solicitud"
// @Param        body  body  dto.ApproveRequestRequest  true  "cantidades aprobadas por ítem"
// @Success      200   {object}  dto.RequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	approved := make(map[string]decimal.Decimal, len(in.Items))
	for _, it := range in.Items {
		approved[it.ItemID] = it.QuantityApproved
	}
	req, err := h.uc.Approve(c.Context(), c.Params("id"), approved, GetUserID(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(toRequestResponse(req))
}

// Send godoc
// @Summary      Enviar solicitud desde el CD
// @Description  Verifica el stock del CD bajo bloqueo antes de mutar. Con faltante devuelve 409 con
//	el detalle por ítem sin aplicar cambios, o crea una compra correctiva si
//	create_corrective_purchase es true.
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID de la solicitud"
// @Param        body  body  dto.SendRequestRequest  true  "create_corrective_purchase"
// @Success      200   {object}  dto.SendRequestResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/send [post]
func (h *RequestHandler) Send(c *fiber.Ctx) error {
	var in dto.SendRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Send(c.Context(), request.SendInput{
		RequestID:                c.Params("id"),
		UserID:                   GetUserID(c),
		CreateCorrectivePurchase: in.CreateCorrectivePurchase,
	})
	if err != nil {
		return handleDomainError(c, err)
	}
	out := dto.SendRequestResponse{Request: toRequestResponse(result.Request)}
	if result.CorrectivePurchase != nil {
		p := toPurchaseResponse(result.CorrectivePurchase)
		out.CorrectivePurchase = &p
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Recibir solicitud en la unidad destino
// @Description  Acredita el stock de la unidad solicitante por cada registro en tránsito y cierra la solicitud.
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/receive [post]
func (h *RequestHandler) Receive(c *fiber.Ctx) error {
	req, err := h.uc.Receive(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return handleDomainError(c, err)
	}
	return c.JSON(toRequestResponse(req))
}

func toRequestResponse(r *entity.Request) dto.RequestResponse {
	items := make([]dto.RequestItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.RequestItemResponse{
			ID:                it.ID,
			ItemID:            it.ItemID,
			QuantityRequested: it.QuantityRequested,
			QuantityApproved:  it.QuantityApproved,
			QuantitySent:      it.QuantitySent,
			EstimatedPrice:    it.EstimatedPrice,
		})
	}
	return dto.RequestResponse{
		ID:                 r.ID,
		RequestingUnitID:   r.RequestingUnitID,
		CDUnitID:           r.CDUnitID,
		Status:             r.Status,
		TotalEstimatedCost: r.TotalEstimatedCost,
		Notes:              r.Notes,
		Items:              items,
		CreatedAt:          r.CreatedAt,
	}
}
